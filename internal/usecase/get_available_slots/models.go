package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Location domain.Location
	Date     time.Time // Дата (без времени); прошедшие даты допустимы
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Location    domain.Location
	Date        time.Time
	Slots       []string // Доступные слоты в порядке каталога
	Capacity    int      // Дневная вместимость центра
	BookedCount int      // Уже занято
	// Configured false - администратор еще не включал слоты для этого места и даты.
	// true с пустым Slots - включал, но все выключил или все занято.
	Configured  bool
	Granularity domain.Granularity // Уровень, с которого взята запись; пусто, если Configured=false
}
