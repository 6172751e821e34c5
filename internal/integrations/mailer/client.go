package mailer

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

const (
	defaultSubject = "Your Booking is Confirmed"
	otpDigits      = 6
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки почтового клиента
type Config struct {
	BaseURL string
	APIKey  string // пустой ключ - отправка только имитируется
	From    string
	Timeout time.Duration
}

// Client клиент почтового API (совместим с Resend: POST /emails с Bearer-ключом)
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	otp        func() (string, error)
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		from:    cfg.From,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		otp: GenerateOTP,
		log: log,
	}
}

// BookingConfirmed отправляет гражданину письмо с подтверждением и одноразовым кодом.
// Без email у бронирования отправка пропускается.
func (c *Client) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	if booking.Email == nil || strings.TrimSpace(*booking.Email) == "" {
		c.log.Info("Mailer: booking id=%s has no email, skipping notification", booking.ID)
		return nil
	}

	otp, err := c.otp()
	if err != nil {
		return fmt.Errorf("%w: failed to generate otp: %v", ErrInternal, err)
	}

	to := strings.TrimSpace(*booking.Email)

	if c.apiKey == "" {
		c.log.Info("Mailer: api key not set, simulating email to %s for booking id=%s", to, booking.ID)
		return nil
	}

	id, err := c.Send(ctx, &SendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: defaultSubject,
		Text:    renderText(booking, otp),
		HTML:    renderHTML(booking, otp),
	})
	if err != nil {
		return err
	}

	c.log.Info("Mailer: email sent for booking id=%s, message id=%s", booking.ID, id)
	return nil
}

// Send отправляет письмо и возвращает ID сообщения
func (c *Client) Send(ctx context.Context, msg *SendRequest) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Name, apiErr.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	// Парсим ответ
	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return sent.ID, nil
}

// GenerateOTP шестизначный код из криптографического источника
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func renderText(b *domain.Booking, otp string) string {
	return fmt.Sprintf("Your booking is confirmed.\n%s, %s on %s at %s.\nYour OTP is: %s\nPlease keep this code safe and do not share it.",
		b.ServiceType, b.Center, b.Date.Format(domain.DateFormat), b.Slot, otp)
}

func renderHTML(b *domain.Booking, otp string) string {
	return fmt.Sprintf(`<div style="font-family:system-ui,sans-serif;line-height:1.5">`+
		`<h2 style="margin:0 0 8px">Your booking is confirmed</h2>`+
		`<p style="margin:0 0 12px">%s, %s on %s at %s</p>`+
		`<p style="margin:0 0 12px">Your OTP: <strong style="font-size:18px">%s</strong></p>`+
		`<p style="margin:0 0 12px">Please keep this code safe and do not share it.</p></div>`,
		html.EscapeString(b.ServiceType), html.EscapeString(b.Center), b.Date.Format(domain.DateFormat), b.Slot, otp)
}
