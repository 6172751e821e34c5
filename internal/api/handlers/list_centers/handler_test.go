package list_centers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/infra/catalog"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

func list(t *testing.T, query string) []CenterResponse {
	t.Helper()
	dir, err := catalog.Load("", 25)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	NewHandler(dir, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/centers"+query, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp []CenterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandle_Taluk(t *testing.T) {
	resp := list(t, "?district=Chennai&taluk=Egmore")

	require.Len(t, resp, 2)
	assert.Equal(t, "Chennai GPO", resp[0].Center)
	assert.Equal(t, 20, resp[0].Capacity)
	require.NotNil(t, resp[0].Lat)
	assert.InDelta(t, 13.0837, *resp[0].Lat, 1e-9)
	assert.Equal(t, 25, resp[1].Capacity)
}

func TestHandle_CenterWithoutCoordinate(t *testing.T) {
	resp := list(t, "?district=Chennai&taluk=Ambattur")

	require.Len(t, resp, 3)
	assert.Equal(t, "Ambattur Taluk Office", resp[2].Center)
	assert.Nil(t, resp[2].Lat)
	assert.Nil(t, resp[2].Lng)
}

func TestHandle_UnknownDistrictIsEmpty(t *testing.T) {
	assert.Empty(t, list(t, "?district=Atlantis"))
}

func TestHandle_WholeCatalog(t *testing.T) {
	all := list(t, "")
	chennai := list(t, "?district=Chennai")

	assert.Greater(t, len(all), len(chennai))
	assert.Equal(t, chennai, all[:len(chennai)])
}
