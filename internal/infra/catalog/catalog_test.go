package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
)

func TestLoad_Embedded(t *testing.T) {
	d, err := Load("", 25)
	require.NoError(t, err)

	assert.Equal(t, []string{"Chennai", "Coimbatore", "Madurai", "Salem"}, d.Districts())
	assert.Equal(t, []string{"Ambattur", "Egmore", "Guindy"}, d.Taluks("Chennai"))
	assert.Nil(t, d.Taluks("Atlantis"))

	ambattur := d.Centers("Chennai", "Ambattur")
	require.Len(t, ambattur, 3)
	assert.Equal(t, "Chennai E-Seva Center - Ambattur", ambattur[0].Center)
	require.NotNil(t, ambattur[0].Coordinate)
	assert.InDelta(t, 13.1143, ambattur[0].Coordinate.Lat, 1e-9)
	assert.False(t, ambattur[2].HasCoordinate())
}

func TestDirectory_DefaultCentersForEmptyTaluk(t *testing.T) {
	d, err := Load("", 25)
	require.NoError(t, err)

	guindy := d.Centers("Chennai", "Guindy")
	require.Len(t, guindy, 2)
	assert.Equal(t, "District E-Center", guindy[0].Center)
	assert.Equal(t, "Guindy", guindy[0].Taluk)
}

func TestDirectory_CentersOfWholeDistrict(t *testing.T) {
	d, err := Load("", 25)
	require.NoError(t, err)

	// Ambattur(3) + Egmore(2) + Guindy(2 default)
	assert.Len(t, d.Centers("Chennai", ""), 7)
	assert.Empty(t, d.Centers("Atlantis", ""))
}

func TestDirectory_Capacity(t *testing.T) {
	d, err := Load("", 25)
	require.NoError(t, err)

	assert.Equal(t, 20, d.Capacity(domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"}))
	assert.Equal(t, 25, d.Capacity(domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Egmore E-Services Hub"}))
	assert.Equal(t, 25, d.Capacity(domain.Location{District: "Nowhere", Taluk: "x", Center: "y"}))
}

func TestDirectory_ReturnsCopies(t *testing.T) {
	d, err := Load("", 25)
	require.NoError(t, err)

	centers := d.Centers("Chennai", "Egmore")
	centers[0].Coordinate.Lat = 0

	again, ok := d.Center(domain.Location{District: "Chennai", Taluk: "Egmore", Center: "Chennai GPO"})
	require.True(t, ok)
	assert.InDelta(t, 13.0837, again.Coordinate.Lat, 1e-9)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "no districts", yaml: "districts: []"},
		{name: "district without taluks", yaml: "districts:\n  - name: Chennai\n"},
		{name: "duplicate center", yaml: `
districts:
  - name: Chennai
    taluks:
      - name: Egmore
        centers:
          - name: A
          - name: A
`},
		{name: "coordinate out of range", yaml: `
districts:
  - name: Chennai
    taluks:
      - name: Egmore
        centers:
          - name: A
            coordinate: { lat: 100, lng: 0 }
`},
		{name: "capacity above slot catalog", yaml: `
districts:
  - name: Chennai
    taluks:
      - name: Egmore
        centers:
          - name: A
            capacity: 40
`},
		{name: "broken yaml", yaml: "districts: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), 25)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
districts:
  - name: Salem
    taluks:
      - name: Attur
        centers:
          - name: Attur Post Office
            capacity: 10
`), 0o644))

	d, err := Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Capacity(domain.Location{District: "Salem", Taluk: "Attur", Center: "Attur Post Office"}))
	assert.Equal(t, domain.DefaultCapacity, d.Capacity(domain.Location{District: "Salem", Taluk: "Attur", Center: "Other"}))
}
