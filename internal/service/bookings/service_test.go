package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CenterBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
	"github.com/m04kA/SMC-CenterBooking/pkg/ptr"
)

var (
	day      = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	gpo      = domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"}
	ambattur = domain.Location{District: "Chennai", Taluk: "Ambattur", Center: "Ambattur Post Office"}
)

type fixedCapacity int

func (c fixedCapacity) Capacity(domain.Location) int { return int(c) }

func seed(t *testing.T, store *memory.Store, loc domain.Location, date time.Time, slot, service string, n int) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), &domain.Booking{
		ID:          fmt.Sprintf("booking-%02d", n),
		Name:        "Citizen",
		Phone:       "9840012345",
		ServiceType: service,
		Location:    loc,
		Date:        date,
		Slot:        slot,
		Status:      domain.StatusConfirmed,
		CreatedAt:   day.Add(time.Duration(n) * time.Minute),
	})
	require.NoError(t, err)
	return b
}

func TestGetByID(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, logger.NewNop())
	seed(t, store, gpo, day, "09:00 AM", "Aadhaar Update", 1)

	resp, err := svc.GetByID(context.Background(), "booking-01")
	require.NoError(t, err)
	assert.Equal(t, "Chennai GPO", resp.Center)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "09:00 AM", resp.Slot)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_NewestFirstWithFilter(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, logger.NewNop())
	seed(t, store, gpo, day, "09:00 AM", "Aadhaar Update", 1)
	seed(t, store, ambattur, day, "09:00 AM", "Income Certificate", 2)
	seed(t, store, gpo, day.AddDate(0, 0, 1), "09:30 AM", "Aadhaar Update", 3)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 3)
	assert.Equal(t, []string{"booking-03", "booking-02", "booking-01"},
		[]string{resp.Bookings[0].ID, resp.Bookings[1].ID, resp.Bookings[2].ID})

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{
		District: ptr.Ptr("Chennai"),
		Taluk:    ptr.Ptr("Egmore"),
		Center:   ptr.Ptr("Chennai GPO"),
		Date:     ptr.Ptr(day.Add(10 * time.Hour)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "booking-01", resp.Bookings[0].ID)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{
		ServiceType: ptr.Ptr("Income Certificate"),
		Taluk:       ptr.Ptr(""),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "booking-02", resp.Bookings[0].ID)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewService(memory.NewStore(), logger.NewNop())

	resp, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestCancel_FreesSlot(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, logger.NewNop())
	resolver := get_available_slots.NewUseCase(store, store, fixedCapacity(25), domain.DefaultCatalog, logger.NewNop())

	require.NoError(t, store.SaveEnablement(context.Background(), &domain.SlotEnablement{
		Key: domain.EnablementKey{District: gpo.District}, Date: day, Slots: []string{"09:00 AM", "09:30 AM"},
	}))
	seed(t, store, gpo, day, "09:00 AM", "Aadhaar Update", 1)

	before, err := resolver.Available(context.Background(), gpo, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30 AM"}, before)

	require.NoError(t, svc.Cancel(context.Background(), "booking-01"))

	after, err := resolver.Available(context.Background(), gpo, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "09:30 AM"}, after)

	_, err = svc.GetByID(context.Background(), "booking-01")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_UnknownLeavesAvailabilityUnchanged(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, logger.NewNop())
	resolver := get_available_slots.NewUseCase(store, store, fixedCapacity(25), domain.DefaultCatalog, logger.NewNop())

	require.NoError(t, store.SaveEnablement(context.Background(), &domain.SlotEnablement{
		Key: domain.EnablementKey{District: gpo.District}, Date: day, Slots: []string{"09:00 AM", "09:30 AM"},
	}))
	seed(t, store, gpo, day, "09:00 AM", "Aadhaar Update", 1)

	before, err := resolver.Available(context.Background(), gpo, day)
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	after, err := resolver.Available(context.Background(), gpo, day)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStats(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, logger.NewNop())
	seed(t, store, gpo, day, "09:00 AM", "Aadhaar Update", 1)
	seed(t, store, gpo, day, "09:30 AM", "Aadhaar Update", 2)
	seed(t, store, ambattur, day.AddDate(0, 0, 1), "09:00 AM", "Income Certificate", 3)

	resp, err := svc.Stats(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.OnDate)
	assert.Equal(t, map[string]int{"Aadhaar Update": 2, "Income Certificate": 1}, resp.ByService)

	_, err = svc.Stats(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
