package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр списка бронирований администратора.
// Все поля опциональны.
type ListBookingsRequest struct {
	District    *string    `json:"district,omitempty"`
	Taluk       *string    `json:"taluk,omitempty"`
	Center      *string    `json:"center,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	ServiceType *string    `json:"serviceType,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр. Пустые строки не фильтруют.
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	filter := domain.BookingsFilter{
		District:    nonEmpty(r.District),
		Taluk:       nonEmpty(r.Taluk),
		Center:      nonEmpty(r.Center),
		ServiceType: nonEmpty(r.ServiceType),
	}
	if r.Date != nil {
		d := domain.TruncateDay(*r.Date)
		filter.Date = &d
	}
	return filter
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	Address     *string   `json:"address,omitempty"`
	ServiceType string    `json:"serviceType"`
	District    string    `json:"district"`
	Taluk       string    `json:"taluk"`
	Center      string    `json:"center"`
	Date        string    `json:"date"` // "2025-10-15"
	Slot        string    `json:"slot"` // "09:30 AM"
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	Date      string         `json:"date"`
	Total     int            `json:"total"`
	OnDate    int            `json:"onDate"`
	ByService map[string]int `json:"byService"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Phone:       b.Phone,
		Email:       b.Email,
		Address:     b.Address,
		ServiceType: b.ServiceType,
		District:    b.District,
		Taluk:       b.Taluk,
		Center:      b.Center,
		Date:        b.Date.Format(domain.DateFormat),
		Slot:        b.Slot,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(date time.Time, s *domain.BookingStats) *StatsResponse {
	byService := make(map[string]int, len(s.ByService))
	for k, v := range s.ByService {
		byService[k] = v
	}
	return &StatsResponse{
		Date:      date.Format(domain.DateFormat),
		Total:     s.Total,
		OnDate:    s.OnDate,
		ByService: byService,
	}
}
