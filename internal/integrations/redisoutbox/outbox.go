// Package redisoutbox publishes booking events to a Redis stream for an external dispatcher.
package redisoutbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// EventBookingConfirmed type of the event written after a successful allocation.
const EventBookingConfirmed = "booking.confirmed"

// DefaultStream is used when no stream name is configured.
const DefaultStream = "center-booking:events"

// ErrPublish is returned when XADD fails.
var ErrPublish = errors.New("redisoutbox: publish failed")

// Config connection and stream settings.
type Config struct {
	URL          string
	Stream       string
	MaxLen       int64 // approximate stream cap, 0 = unbounded
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

// BookingEvent payload stored in the "payload" field of a stream entry.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"bookingId"`
	District    string    `json:"district"`
	Taluk       string    `json:"taluk"`
	Center      string    `json:"center"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	ServiceType string    `json:"serviceType"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publisher writes booking events with XADD.
type Publisher struct {
	client *redis.Client
	stream string
	maxLen int64
	now    func() time.Time
}

// Connect parses the URL, applies timeouts and pings the server.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewPublisher creates a publisher on an existing client.
func NewPublisher(client *redis.Client, stream string, maxLen int64) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// BookingConfirmed appends a booking.confirmed event to the stream.
func (p *Publisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	event := BookingEvent{
		Type:        EventBookingConfirmed,
		BookingID:   booking.ID,
		District:    booking.District,
		Taluk:       booking.Taluk,
		Center:      booking.Center,
		Date:        booking.Date.Format(domain.DateFormat),
		Slot:        booking.Slot,
		ServiceType: booking.ServiceType,
		Name:        booking.Name,
		Phone:       booking.Phone,
		Email:       booking.Email,
		OccurredAt:  p.now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode event: %v", ErrPublish, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":       EventBookingConfirmed,
			"booking_id": booking.ID,
			"payload":    string(payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("%w: XADD %s: %v", ErrPublish, p.stream, err)
	}
	return nil
}
