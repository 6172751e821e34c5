package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Name        string    `validate:"required,max=200"`
	Phone       string    `validate:"required,max=32"`
	Email       *string   `validate:"omitempty,email"`
	Address     *string   `validate:"omitempty,max=500"`
	ServiceType string    `validate:"required,max=200"`
	District    string    `validate:"required"`
	Taluk       string    `validate:"required"`
	Center      string    `validate:"required"`
	Date        time.Time `validate:"required"` // Дата бронирования (без времени)
	Slot        string    `validate:"required,slot"`
}

// Location возвращает центр из запроса
func (r *Request) Location() domain.Location {
	return domain.Location{District: r.District, Taluk: r.Taluk, Center: r.Center}.Normalize()
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	Name        string
	Phone       string
	Email       *string
	Address     *string
	ServiceType string
	Location    domain.Location
	Date        time.Time
	Slot        string
	Status      string
	CreatedAt   time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		Name:        b.Name,
		Phone:       b.Phone,
		Email:       b.Email,
		Address:     b.Address,
		ServiceType: b.ServiceType,
		Location:    b.Location,
		Date:        b.Date,
		Slot:        b.Slot,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
}
