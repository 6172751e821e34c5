package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func del(h *Handler, id string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	loc := domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"}
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	_, err := store.Create(context.Background(), &domain.Booking{
		ID: "b-1", Name: "Asha", Phone: "98", ServiceType: "s",
		Location: loc, Date: day, Slot: "09:00 AM", Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	h := NewHandler(bookings.NewService(store, logger.NewNop()), logger.NewNop())

	w := del(h, "b-1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	remaining, err := store.GetByDay(context.Background(), loc, day)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// повторная отмена
	assert.Equal(t, http.StatusNotFound, del(h, "b-1").Code)
	assert.Equal(t, http.StatusBadRequest, del(h, "").Code)
}
