package enable_recurring_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CenterBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/slots/recurring", strings.NewReader(body)))
	return w
}

func TestHandle_WeeklyRule(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(newService(t, store), logger.NewNop())

	w := post(h, `{
		"district": "Chennai",
		"taluk": "Egmore",
		"rrule": "FREQ=WEEKLY;BYDAY=MO,WE",
		"slots": ["10:00 AM", "09:00 AM"],
		"from": "2025-10-15",
		"until": "2025-10-28"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RecurringResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-10-15", "2025-10-20", "2025-10-22", "2025-10-27"}, resp.Dates)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, resp.Slots)

	e, err := store.GetEnablement(context.Background(),
		domain.EnablementKey{District: "Chennai", Taluk: "Egmore"},
		time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, e.Slots)
}

func TestHandle_BadRequest(t *testing.T) {
	h := NewHandler(newService(t, memory.NewStore()), logger.NewNop())

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `[`},
		{name: "bad from", body: `{"district":"Chennai","rrule":"FREQ=DAILY","slots":["09:00 AM"],"from":"soon"}`},
		{name: "bad rule", body: `{"district":"Chennai","rrule":"FREQ=SOMETIMES","slots":["09:00 AM"],"from":"2025-10-15"}`},
		{name: "no slots", body: `{"district":"Chennai","rrule":"FREQ=DAILY","slots":[],"from":"2025-10-15"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, post(h, tt.body).Code)
		})
	}
}
