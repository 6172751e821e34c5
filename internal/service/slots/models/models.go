package models

import (
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// Request модели

// SetEnabledRequest включение или выключение одного слота.
// Пустой Center - весь талук, пустые Taluk и Center - весь район.
type SetEnabledRequest struct {
	District string    `json:"district"`
	Taluk    string    `json:"taluk,omitempty"`
	Center   string    `json:"center,omitempty"`
	Date     time.Time `json:"date"`
	Slot     string    `json:"slot"`
	Enabled  bool      `json:"enabled"`
}

// Key ключ записи
func (r *SetEnabledRequest) Key() domain.EnablementKey {
	return domain.EnablementKey{District: r.District, Taluk: r.Taluk, Center: r.Center}.Normalize()
}

// RecurringRequest включение набора слотов по правилу повторения (RFC 5545 RRULE)
type RecurringRequest struct {
	District string    `json:"district"`
	Taluk    string    `json:"taluk,omitempty"`
	Center   string    `json:"center,omitempty"`
	RRule    string    `json:"rrule"` // "FREQ=WEEKLY;BYDAY=MO,WE,FR"
	Slots    []string  `json:"slots"`
	From     time.Time `json:"from"`  // нулевое значение - сегодня
	Until    time.Time `json:"until"` // нулевое значение - до горизонта
}

// Key ключ записи
func (r *RecurringRequest) Key() domain.EnablementKey {
	return domain.EnablementKey{District: r.District, Taluk: r.Taluk, Center: r.Center}.Normalize()
}

// Response модели

// EnablementResponse включенные слоты для точного ключа и даты
type EnablementResponse struct {
	District    string   `json:"district"`
	Taluk       string   `json:"taluk,omitempty"`
	Center      string   `json:"center,omitempty"`
	Granularity string   `json:"granularity"`
	Date        string   `json:"date"`
	Slots       []string `json:"slots"`
	Configured  bool     `json:"configured"`
}

// RecurringResponse даты, на которые были включены слоты
type RecurringResponse struct {
	Dates []string `json:"dates"`
	Slots []string `json:"slots"`
}

// BoardRow строка сетки слотов администратора
type BoardRow struct {
	Slot      string `json:"slot"`
	Enabled   bool   `json:"enabled"`
	Booked    bool   `json:"booked"`
	Available bool   `json:"available"`
}

// BoardResponse сетка всех слотов каталога для центра на дату
type BoardResponse struct {
	District    string     `json:"district"`
	Taluk       string     `json:"taluk"`
	Center      string     `json:"center"`
	Date        string     `json:"date"`
	Capacity    int        `json:"capacity"`
	BookedCount int        `json:"bookedCount"`
	Configured  bool       `json:"configured"`
	Granularity string     `json:"granularity,omitempty"`
	Rows        []BoardRow `json:"rows"`
}

// Методы конвертации

// FromDomainEnablement конвертирует запись в DTO
func FromDomainEnablement(key domain.EnablementKey, date time.Time, slots []string, configured bool) *EnablementResponse {
	if slots == nil {
		slots = []string{}
	}
	return &EnablementResponse{
		District:    key.District,
		Taluk:       key.Taluk,
		Center:      key.Center,
		Granularity: string(key.Granularity()),
		Date:        date.Format(domain.DateFormat),
		Slots:       slots,
		Configured:  configured,
	}
}
