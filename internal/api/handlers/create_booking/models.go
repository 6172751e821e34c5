package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CenterBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	ServiceType string  `json:"serviceType"`
	District    string  `json:"district"`
	Taluk       string  `json:"taluk"`
	Center      string  `json:"center"`
	Date        string  `json:"date"` // "2025-10-15"
	Slot        string  `json:"slot"` // "09:30 AM"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	ServiceType string  `json:"serviceType"`
	District    string  `json:"district"`
	Taluk       string  `json:"taluk"`
	Center      string  `json:"center"`
	Date        string  `json:"date"`
	Slot        string  `json:"slot"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
		ServiceType: r.ServiceType,
		District:    r.District,
		Taluk:       r.Taluk,
		Center:      r.Center,
		Date:        date,
		Slot:        r.Slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Name:        resp.Name,
		Phone:       resp.Phone,
		Email:       resp.Email,
		Address:     resp.Address,
		ServiceType: resp.ServiceType,
		District:    resp.Location.District,
		Taluk:       resp.Location.Taluk,
		Center:      resp.Location.Center,
		Date:        resp.Date.Format(domain.DateFormat),
		Slot:        resp.Slot,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
