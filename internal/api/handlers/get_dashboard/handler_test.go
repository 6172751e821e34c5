package get_dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings"
	"github.com/m04kA/SMC-CenterBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	loc := domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"}
	for i, slot := range []string{"09:00 AM", "09:30 AM"} {
		_, err := store.Create(context.Background(), &domain.Booking{
			ID: slot, Name: "n", Phone: "p", ServiceType: []string{"Aadhaar Update", "PAN Card"}[i],
			Location: loc, Date: time.Date(2025, 10, 15+i, 0, 0, 0, 0, time.UTC),
			Slot: slot, Status: domain.StatusConfirmed,
		})
		require.NoError(t, err)
	}

	h := NewHandler(bookings.NewService(store, logger.NewNop()), logger.NewNop())
	h.now = func() time.Time { return time.Date(2025, 10, 16, 11, 0, 0, 0, time.UTC) }

	t.Run("explicit date", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard?date=2025-10-15", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2025-10-15", resp.Date)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.OnDate)
		assert.Equal(t, map[string]int{"Aadhaar Update": 1, "PAN Card": 1}, resp.ByService)
	})

	t.Run("defaults to today", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2025-10-16", resp.Date)
		assert.Equal(t, 1, resp.OnDate)
	})

	t.Run("invalid date", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard?date=16.10.2025", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
