package list_bookings

import (
	"context"
	"encoding/json"
	"fmt"
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

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	rows := []struct {
		center  string
		date    time.Time
		service string
	}{
		{"Chennai GPO", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), "Aadhaar Update"},
		{"Chennai GPO", time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), "PAN Card"},
		{"Egmore E-Seva", time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), "Aadhaar Update"},
	}
	for i, row := range rows {
		_, err := store.Create(context.Background(), &domain.Booking{
			ID: fmt.Sprintf("b-%d", i), Name: "n", Phone: "p", ServiceType: row.service,
			Location:  domain.Location{District: "Chennai", Taluk: "Egmore", Center: row.center},
			Date:      row.date,
			Slot:      "09:00 AM",
			Status:    domain.StatusConfirmed,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func list(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings"+query, nil))
	return w
}

func ids(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp []models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	out := make([]string, 0, len(resp))
	for _, b := range resp {
		out = append(out, b.ID)
	}
	return out
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	h := NewHandler(bookings.NewService(store, logger.NewNop()), logger.NewNop())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all, newest first", query: "", want: []string{"b-2", "b-1", "b-0"}},
		{name: "by center", query: "?center=Chennai+GPO", want: []string{"b-1", "b-0"}},
		{name: "by date", query: "?date=2025-10-15", want: []string{"b-2", "b-0"}},
		{name: "by service", query: "?serviceType=PAN+Card", want: []string{"b-1"}},
		{name: "nothing matches", query: "?district=Madurai", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := list(h, tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, ids(t, w))
		})
	}
}

func TestHandle_InvalidDate(t *testing.T) {
	h := NewHandler(bookings.NewService(memory.NewStore(), logger.NewNop()), logger.NewNop())
	assert.Equal(t, http.StatusBadRequest, list(h, "?date=yesterday").Code)
}
