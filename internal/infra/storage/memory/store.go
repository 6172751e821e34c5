// Package memory is the in-process implementation of the booking store.
// Its maps are guarded by one RWMutex; read-then-write sequences that must be
// atomic are serialized by the caller through pkg/keylock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
)

type enablementID struct {
	key  domain.EnablementKey
	date string
}

// Store хранит бронирования и включенные слоты в памяти процесса
type Store struct {
	mu          sync.RWMutex
	bookings    map[string]*domain.Booking
	daySlots    map[string]map[string]string // dayKey -> slot -> booking id
	enablements map[enablementID]*domain.SlotEnablement
}

func NewStore() *Store {
	return &Store{
		bookings:    make(map[string]*domain.Booking),
		daySlots:    make(map[string]map[string]string),
		enablements: make(map[enablementID]*domain.SlotEnablement),
	}
}

func dayKey(loc domain.Location, date time.Time) string {
	return loc.String() + "|" + date.Format(domain.DateFormat)
}

// Create сохраняет бронирование.
// Повтор ID дает storage.ErrDuplicateID, повтор (центр, дата, слот) - storage.ErrSlotTaken.
func (s *Store) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[booking.ID]; exists {
		return nil, fmt.Errorf("%w: Create - id=%s", storage.ErrDuplicateID, booking.ID)
	}

	dk := dayKey(booking.Location, booking.Date)
	slots := s.daySlots[dk]
	if _, taken := slots[booking.Slot]; taken {
		return nil, fmt.Errorf("%w: Create - %s %s", storage.ErrSlotTaken, dk, booking.Slot)
	}
	if slots == nil {
		slots = make(map[string]string)
		s.daySlots[dk] = slots
	}

	stored := cloneBooking(booking)
	s.bookings[stored.ID] = stored
	slots[stored.Slot] = stored.ID

	return cloneBooking(stored), nil
}

func (s *Store) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%s", storage.ErrBookingNotFound, id)
	}
	return cloneBooking(b), nil
}

// GetByDay бронирования центра на дату
func (s *Store) GetByDay(_ context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := s.daySlots[dayKey(loc, date)]
	out := make([]*domain.Booking, 0, len(slots))
	for _, id := range slots {
		out = append(out, cloneBooking(s.bookings[id]))
	}
	return out, nil
}

// List бронирования по фильтру, новые первыми
func (s *Store) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.Matches(b) {
			out = append(out, cloneBooking(b))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return fmt.Errorf("%w: Delete - id=%s", storage.ErrBookingNotFound, id)
	}

	dk := dayKey(b.Location, b.Date)
	delete(s.daySlots[dk], b.Slot)
	if len(s.daySlots[dk]) == 0 {
		delete(s.daySlots, dk)
	}
	delete(s.bookings, id)
	return nil
}

// Stats считает общее число бронирований, число на дату и разбивку по услугам
func (s *Store) Stats(_ context.Context, date time.Time) (*domain.BookingStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.BookingStats{ByService: make(map[string]int)}
	day := domain.TruncateDay(date)
	for _, b := range s.bookings {
		stats.Total++
		if b.Date.Equal(day) {
			stats.OnDate++
		}
		stats.ByService[b.ServiceType]++
	}
	return stats, nil
}

// GetEnablement запись о включенных слотах для точного ключа
func (s *Store) GetEnablement(_ context.Context, key domain.EnablementKey, date time.Time) (*domain.SlotEnablement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enablements[enablementID{key: key, date: date.Format(domain.DateFormat)}]
	if !ok {
		return nil, fmt.Errorf("%w: GetEnablement - %+v %s", storage.ErrEnablementNotFound, key, date.Format(domain.DateFormat))
	}
	return cloneEnablement(e), nil
}

// ResolveEnablement ищет запись от самого точного ключа к самому общему: центр, талук, район
func (s *Store) ResolveEnablement(_ context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := date.Format(domain.DateFormat)
	for _, key := range domain.KeysFor(loc) {
		if e, ok := s.enablements[enablementID{key: key, date: d}]; ok {
			return cloneEnablement(e), nil
		}
	}
	return nil, fmt.Errorf("%w: ResolveEnablement - %s %s", storage.ErrEnablementNotFound, loc, d)
}

// SaveEnablement создает или заменяет запись
func (s *Store) SaveEnablement(_ context.Context, e *domain.SlotEnablement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enablements[enablementID{key: e.Key, date: e.Date.Format(domain.DateFormat)}] = cloneEnablement(e)
	return nil
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	cp := *b
	if b.Email != nil {
		email := *b.Email
		cp.Email = &email
	}
	if b.Address != nil {
		addr := *b.Address
		cp.Address = &addr
	}
	return &cp
}

func cloneEnablement(e *domain.SlotEnablement) *domain.SlotEnablement {
	cp := *e
	cp.Slots = append([]string{}, e.Slots...)
	return &cp
}
