package set_slot_enablement

import (
	"testing"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots"
	getAvailableSlots "github.com/m04kA/SMC-CenterBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CenterBooking/pkg/keylock"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

type fixedCapacity int

func (c fixedCapacity) Capacity(domain.Location) int { return int(c) }

func newService(t *testing.T, store *memory.Store) *slots.Service {
	t.Helper()
	log := logger.NewNop()
	availability := getAvailableSlots.NewUseCase(store, store, fixedCapacity(25), domain.DefaultCatalog, log)
	return slots.NewService(store, store, availability, fixedCapacity(25), keylock.New(), domain.DefaultCatalog, log)
}
