package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/config"
)

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Server.AdminToken = testAdminToken
	cfg.Logs.Level = "error"
	cfg.Metrics.Enabled = true
	require.NoError(t, config.Validate(cfg))

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, admin bool) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

const availabilityPath = "/api/v1/availability?district=Chennai&taluk=Egmore&center=Chennai+GPO&date=2025-10-15"

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t)

	// 1. Администратор включает два слота на весь талук
	status, _ := do(t, srv, http.MethodPost, "/api/v1/admin/slots/recurring", `{
		"district": "Chennai", "taluk": "Egmore",
		"rrule": "FREQ=DAILY;COUNT=1",
		"slots": ["09:00 AM", "09:30 AM"],
		"from": "2025-10-15", "until": "2025-10-15"
	}`, true)
	require.Equal(t, http.StatusOK, status)

	// 2. Гражданин видит оба слота
	status, body := do(t, srv, http.MethodGet, availabilityPath, "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slots":["09:00 AM","09:30 AM"]`)

	// 3. Бронирует один
	booking := `{"name":"Asha","phone":"9876543210","email":"asha@example.com","serviceType":"Aadhaar Update",
		"district":"Chennai","taluk":"Egmore","center":"Chennai GPO","date":"2025-10-15","slot":"09:00 AM"}`
	status, body = do(t, srv, http.MethodPost, "/api/v1/bookings", booking, false)
	require.Equal(t, http.StatusCreated, status, body)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ID)

	// 4. Повтор того же слота - конфликт
	status, _ = do(t, srv, http.MethodPost, "/api/v1/bookings", booking, false)
	assert.Equal(t, http.StatusConflict, status)

	status, body = do(t, srv, http.MethodGet, availabilityPath, "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slots":["09:30 AM"]`)

	status, body = do(t, srv, http.MethodGet, "/api/v1/bookings/"+created.ID, "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slot":"09:00 AM"`)

	// 5. Администратор видит бронирование и отменяет его
	status, body = do(t, srv, http.MethodGet, "/api/v1/admin/bookings?center=Chennai+GPO", "", true)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, created.ID)

	status, body = do(t, srv, http.MethodGet, "/api/v1/admin/dashboard?date=2025-10-15", "", true)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"onDate":1`)

	status, _ = do(t, srv, http.MethodDelete, "/api/v1/admin/bookings/"+created.ID, "", true)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, srv, http.MethodDelete, "/api/v1/admin/bookings/"+created.ID, "", true)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, srv, http.MethodGet, availabilityPath, "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slots":["09:00 AM","09:30 AM"]`)

	// 6. Счетчики видны в /metrics
	status, body = do(t, srv, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "bookings_allocated_total")
	assert.Contains(t, body, `booking_allocations_rejected_total{reason="slot_unavailable",service="center-booking"} 1`)
	assert.Contains(t, body, `route="/api/v1/bookings/{bookingId}"`)
}

func TestPaddedNamesResolveToSameCenter(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPut, "/api/v1/admin/slots",
		`{"district":"Chennai ","taluk":" Egmore","center":"Chennai GPO","date":"2025-10-15","slot":"10:00 AM"}`, true)
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, `"district":"Chennai"`)

	status, body = do(t, srv, http.MethodGet, availabilityPath, "", false)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"slots":["10:00 AM"]`)
	assert.Contains(t, body, `"configured":true`)

	booking := `{"name":"Asha","phone":"9876543210","serviceType":"Aadhaar Update",
		"district":" Chennai","taluk":"Egmore ","center":"Chennai GPO ","date":"2025-10-15","slot":"10:00 AM"}`
	status, body = do(t, srv, http.MethodPost, "/api/v1/bookings", booking, false)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Contains(t, body, `"district":"Chennai"`)
}

func TestCenterDistanceRoute(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet,
		"/api/v1/centers/distance?lat=13.0837&lng=80.2717&district=Chennai&taluk=Egmore&center=Chennai+GPO", "", false)
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, `"distance":"0.0 km"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodGet, "/api/v1/admin/bookings", "", false)
	assert.Equal(t, http.StatusUnauthorized, status)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/admin/dashboard", nil)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Token", "wrong-token")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// публичные маршруты без токена
	status, _ = do(t, srv, http.MethodGet, "/api/v1/centers?district=Chennai", "", false)
	assert.Equal(t, http.StatusOK, status)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, defaultConfigPath, flag.DefValue)

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
}

func TestMigrateRejectsMemoryStorage(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "--config", "../config.toml"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}
