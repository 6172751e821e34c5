// Package storagetest holds the behaviour suite every booking store must pass.
package storagetest

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage"
)

// Store is the union of booking and enablement repositories.
type Store interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByDay(ctx context.Context, loc domain.Location, date time.Time) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, date time.Time) (*domain.BookingStats, error)

	GetEnablement(ctx context.Context, key domain.EnablementKey, date time.Time) (*domain.SlotEnablement, error)
	ResolveEnablement(ctx context.Context, loc domain.Location, date time.Time) (*domain.SlotEnablement, error)
	SaveEnablement(ctx context.Context, e *domain.SlotEnablement) error
}

// StoreSuite runs against whatever NewStore returns; NewStore is called before every test.
type StoreSuite struct {
	suite.Suite
	NewStore func() Store

	store Store
	ctx   context.Context
}

var (
	Day      = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	GPO      = domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"}
	Ambattur = domain.Location{District: "Chennai", Taluk: "Ambattur", Center: "Ambattur Post Office"}
)

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *StoreSuite) booking(id string, loc domain.Location, slot string, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		Name:        "Kavya",
		Phone:       "+919800000000",
		ServiceType: "Aadhaar Update",
		Location:    loc,
		Date:        Day,
		Slot:        slot,
		Status:      domain.StatusConfirmed,
		CreatedAt:   createdAt,
	}
}

func (s *StoreSuite) TestCreateAndGet() {
	email := "kavya@example.com"
	b := s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day.Add(time.Hour))
	b.Email = &email

	created, err := s.store.Create(s.ctx, b)
	s.Require().NoError(err)
	s.Equal(b.ID, created.ID)

	got, err := s.store.GetByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(GPO, got.Location)
	s.Equal("09:00 AM", got.Slot)
	s.Equal(domain.StatusConfirmed, got.Status)
	s.Require().NotNil(got.Email)
	s.Equal(email, *got.Email)
	s.Nil(got.Address)
	s.True(got.Date.Equal(Day))
}

func (s *StoreSuite) TestGetByID_NotFound() {
	_, err := s.store.GetByID(s.ctx, "0192a000-0000-7000-8000-00000000ffff")
	s.ErrorIs(err, storage.ErrBookingNotFound)
}

func (s *StoreSuite) TestCreate_DuplicateID() {
	b := s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day)
	_, err := s.store.Create(s.ctx, b)
	s.Require().NoError(err)

	again := s.booking(b.ID, GPO, "09:30 AM", Day)
	_, err = s.store.Create(s.ctx, again)
	s.ErrorIs(err, storage.ErrDuplicateID)
}

func (s *StoreSuite) TestCreate_SlotTaken() {
	_, err := s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day))
	s.Require().NoError(err)

	_, err = s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000002", GPO, "09:00 AM", Day))
	s.ErrorIs(err, storage.ErrSlotTaken)

	// тот же слот в другом центре свободен
	_, err = s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000003", Ambattur, "09:00 AM", Day))
	s.NoError(err)
}

func (s *StoreSuite) TestGetByDay() {
	for i, slot := range []string{"09:00 AM", "09:30 AM", "10:00 AM"} {
		_, err := s.store.Create(s.ctx, s.booking(fmt.Sprintf("0192a000-0000-7000-8000-00000000000%d", i), GPO, slot, Day))
		s.Require().NoError(err)
	}
	_, err := s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000009", Ambattur, "09:00 AM", Day))
	s.Require().NoError(err)

	got, err := s.store.GetByDay(s.ctx, GPO, Day)
	s.Require().NoError(err)
	s.Len(got, 3)

	none, err := s.store.GetByDay(s.ctx, GPO, Day.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestList_NewestFirstWithFilter() {
	_, err := s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day.Add(1*time.Hour)))
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000002", GPO, "09:30 AM", Day.Add(3*time.Hour)))
	s.Require().NoError(err)
	_, err = s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000003", Ambattur, "09:00 AM", Day.Add(2*time.Hour)))
	s.Require().NoError(err)

	all, err := s.store.List(s.ctx, domain.BookingsFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("0192a000-0000-7000-8000-000000000002", all[0].ID)
	s.Equal("0192a000-0000-7000-8000-000000000003", all[1].ID)
	s.Equal("0192a000-0000-7000-8000-000000000001", all[2].ID)

	center := GPO.Center
	onlyGPO, err := s.store.List(s.ctx, domain.BookingsFilter{Center: &center})
	s.Require().NoError(err)
	s.Len(onlyGPO, 2)

	tomorrow := Day.AddDate(0, 0, 1)
	none, err := s.store.List(s.ctx, domain.BookingsFilter{Date: &tomorrow})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestDelete_FreesSlot() {
	b := s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day)
	_, err := s.store.Create(s.ctx, b)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(s.ctx, b.ID))

	_, err = s.store.GetByID(s.ctx, b.ID)
	s.ErrorIs(err, storage.ErrBookingNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, b.ID), storage.ErrBookingNotFound)

	_, err = s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000002", GPO, "09:00 AM", Day))
	s.NoError(err)
}

func (s *StoreSuite) TestStats() {
	_, err := s.store.Create(s.ctx, s.booking("0192a000-0000-7000-8000-000000000001", GPO, "09:00 AM", Day))
	s.Require().NoError(err)
	other := s.booking("0192a000-0000-7000-8000-000000000002", GPO, "09:00 AM", Day)
	other.Date = Day.AddDate(0, 0, 1)
	other.ServiceType = "Birth Certificate"
	_, err = s.store.Create(s.ctx, other)
	s.Require().NoError(err)

	stats, err := s.store.Stats(s.ctx, Day)
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(1, stats.OnDate)
	s.Equal(map[string]int{"Aadhaar Update": 1, "Birth Certificate": 1}, stats.ByService)
}

func (s *StoreSuite) TestEnablement_SaveAndGet() {
	key := domain.EnablementKey{District: "Chennai"}
	_, err := s.store.GetEnablement(s.ctx, key, Day)
	s.ErrorIs(err, storage.ErrEnablementNotFound)

	s.Require().NoError(s.store.SaveEnablement(s.ctx, &domain.SlotEnablement{
		Key: key, Date: Day, Slots: []string{"09:00 AM", "09:30 AM"}, UpdatedAt: Day,
	}))
	got, err := s.store.GetEnablement(s.ctx, key, Day)
	s.Require().NoError(err)
	s.Equal([]string{"09:00 AM", "09:30 AM"}, got.Slots)

	// пустой набор остается записью
	s.Require().NoError(s.store.SaveEnablement(s.ctx, &domain.SlotEnablement{Key: key, Date: Day, Slots: []string{}, UpdatedAt: Day}))
	got, err = s.store.GetEnablement(s.ctx, key, Day)
	s.Require().NoError(err)
	s.Empty(got.Slots)
}

func (s *StoreSuite) TestResolveEnablement_MostSpecificWins() {
	district := domain.EnablementKey{District: "Chennai"}
	center := domain.EnablementKey{District: GPO.District, Taluk: GPO.Taluk, Center: GPO.Center}

	s.Require().NoError(s.store.SaveEnablement(s.ctx, &domain.SlotEnablement{Key: district, Date: Day, Slots: []string{"09:00 AM"}}))

	got, err := s.store.ResolveEnablement(s.ctx, GPO, Day)
	s.Require().NoError(err)
	s.Equal(district, got.Key)

	s.Require().NoError(s.store.SaveEnablement(s.ctx, &domain.SlotEnablement{Key: center, Date: Day, Slots: []string{"10:00 AM"}}))

	got, err = s.store.ResolveEnablement(s.ctx, GPO, Day)
	s.Require().NoError(err)
	s.Equal(center, got.Key)
	s.Equal([]string{"10:00 AM"}, got.Slots)

	// другой центр района по-прежнему видит районную запись
	got, err = s.store.ResolveEnablement(s.ctx, Ambattur, Day)
	s.Require().NoError(err)
	s.Equal(district, got.Key)

	_, err = s.store.ResolveEnablement(s.ctx, GPO, Day.AddDate(0, 0, 1))
	s.ErrorIs(err, storage.ErrEnablementNotFound)
}
