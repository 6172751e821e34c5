package get_slot_enablement

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
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func get(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/slots"+query, nil))
	return w
}

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.SaveEnablement(context.Background(), &domain.SlotEnablement{
		Key:   domain.EnablementKey{District: "Chennai", Taluk: "Egmore"},
		Date:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Slots: []string{"09:00 AM"},
	}))
	h := NewHandler(newService(t, store), logger.NewNop())

	t.Run("taluk record", func(t *testing.T) {
		w := get(h, "?district=Chennai&taluk=Egmore&date=2025-10-15")
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.EnablementResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Configured)
		assert.Equal(t, "taluk", resp.Granularity)
		assert.Equal(t, []string{"09:00 AM"}, resp.Slots)
	})

	t.Run("exact key only, center not configured", func(t *testing.T) {
		w := get(h, "?district=Chennai&taluk=Egmore&center=Chennai+GPO&date=2025-10-15")
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.EnablementResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Configured)
		assert.Empty(t, resp.Slots)
	})

	t.Run("center without taluk", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(h, "?district=Chennai&center=Chennai+GPO&date=2025-10-15").Code)
	})

	t.Run("missing date", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(h, "?district=Chennai").Code)
	})
}
