package rank_centers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/internal/infra/catalog"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
	"github.com/m04kA/SMC-CenterBooking/pkg/logger"
)

var requester = geo.Point{Lat: 13.08, Lng: 80.27}

func center(name string, p *geo.Point) domain.Center {
	return domain.Center{
		Location:   domain.Location{District: "Chennai", Taluk: "Test", Center: name},
		Coordinate: p,
	}
}

func names(results []domain.DistanceResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Center.Center
	}
	return out
}

func TestRank_KnownBeforeUnknown(t *testing.T) {
	// 0.022483 и 0.142093 градуса широты дают 2.5 и 15.8 км к северу
	centers := []domain.Center{
		center("far", &geo.Point{Lat: 13.08 + 0.142093, Lng: 80.27}),
		center("unknown", nil),
		center("near", &geo.Point{Lat: 13.08 + 0.022483, Lng: 80.27}),
	}

	results := Rank(requester, centers)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"near", "far", "unknown"}, names(results))
	assert.InDelta(t, 2.5, *results[0].DistanceKm, 0.01)
	assert.InDelta(t, 15.8, *results[1].DistanceKm, 0.01)
	assert.Nil(t, results[2].DistanceKm)
	assert.Equal(t, []string{"2.5 km", "15.8 km", "N/A"},
		[]string{results[0].Label(), results[1].Label(), results[2].Label()})
}

func TestRank_StableForTiesAndUnknowns(t *testing.T) {
	same := geo.Point{Lat: 13.1, Lng: 80.27}
	centers := []domain.Center{
		center("u1", nil),
		center("a", &same),
		center("u2", nil),
		center("b", &same),
		center("u3", nil),
	}

	results := Rank(requester, centers)
	assert.Equal(t, []string{"a", "b", "u1", "u2", "u3"}, names(results))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(requester, nil))
}

func TestExecute_CatalogTaluk(t *testing.T) {
	dir, err := catalog.Load("", domain.DefaultCapacity)
	require.NoError(t, err)
	uc := NewUseCase(dir, logger.NewNop())

	resp, err := uc.Execute(&Request{Point: requester, District: "Chennai", Taluk: "Ambattur"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Ambattur Post Office",
		"Chennai E-Seva Center - Ambattur",
		"Ambattur Taluk Office",
	}, names(resp.Results))
	assert.Equal(t, "N/A", resp.Results[2].Label())
}

func TestExecute_WholeDistrict(t *testing.T) {
	dir, err := catalog.Load("", domain.DefaultCapacity)
	require.NoError(t, err)
	uc := NewUseCase(dir, logger.NewNop())

	resp, err := uc.Execute(&Request{Point: requester, District: "Chennai"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)

	assert.Equal(t, "Chennai GPO", resp.Results[0].Center.Center)
	last := resp.Results[len(resp.Results)-1]
	assert.Nil(t, last.DistanceKm)
}

func TestExecute_InvalidInput(t *testing.T) {
	dir, err := catalog.Load("", domain.DefaultCapacity)
	require.NoError(t, err)
	uc := NewUseCase(dir, logger.NewNop())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "nil", req: nil},
		{name: "latitude out of range", req: &Request{Point: geo.Point{Lat: 91, Lng: 0}, District: "Chennai"}},
		{name: "no district", req: &Request{Point: requester}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDistanceTo(t *testing.T) {
	dir, err := catalog.Load("", domain.DefaultCapacity)
	require.NoError(t, err)
	uc := NewUseCase(dir, logger.NewNop())

	res, err := uc.DistanceTo(requester, domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"})
	require.NoError(t, err)
	assert.Equal(t, "0.5 km", res.Label())

	res, err = uc.DistanceTo(requester, domain.Location{District: "Chennai", Taluk: "Ambattur", Center: "Ambattur Taluk Office"})
	require.NoError(t, err)
	assert.Equal(t, "N/A", res.Label())

	_, err = uc.DistanceTo(requester, domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Nowhere"})
	assert.ErrorIs(t, err, ErrCenterNotFound)
}
