package rank_centers

import (
	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

// Request модель запроса ранжирования
type Request struct {
	Point    geo.Point // Координата заявителя
	District string
	Taluk    string // Пустой - весь район
}

// Response центры по возрастанию расстояния, без координат - в конце
type Response struct {
	Results []domain.DistanceResult
}
