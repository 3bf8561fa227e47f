package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"

	"moonalyzer/internal/astro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeplerian(t *testing.T) *Geocentric {
	t.Helper()
	eph, err := New("")
	require.NoError(t, err)
	require.Equal(t, "keplerian", eph.Name())
	return eph
}

func TestSunAtEquinox(t *testing.T) {
	eph := newKeplerian(t)

	// March equinox 2024: 2024-03-20 03:06 UTC.
	lon, err := eph.Longitude(astro.Sun, time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 0, astro.Separation(lon, 0), 0.2)

	// December solstice 2024: 2024-12-21 09:21 UTC.
	lon, err = eph.Longitude(astro.Sun, time.Date(2024, 12, 21, 9, 21, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 270, lon, 0.2)
}

func TestMoonMatchesMeeus47a(t *testing.T) {
	eph := newKeplerian(t)

	// Astronomical Algorithms 47.a, apparent longitude 133.167°.
	lon, err := eph.Longitude(astro.Moon, time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 133.167, lon, 0.05)
}

func TestVenusMatchesMeeus33a(t *testing.T) {
	eph := newKeplerian(t)

	// Astronomical Algorithms 33.a, apparent longitude 313.081°.
	lon, err := eph.Longitude(astro.Venus, time.Date(1992, 12, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 313.081, lon, 0.15)
}

func TestKnownRetrogradePeriods(t *testing.T) {
	eph := newKeplerian(t)

	tests := []struct {
		body  astro.Body
		at    time.Time
		retro bool
	}{
		{astro.Mercury, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), true},
		{astro.Mercury, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), false},
		{astro.Venus, time.Date(2023, 8, 10, 0, 0, 0, 0, time.UTC), true},
		{astro.Venus, time.Date(2023, 10, 10, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		got, err := astro.Retrograde(eph, tt.body, tt.at)
		require.NoError(t, err)
		assert.Equal(t, tt.retro, got, "%s on %s", tt.body, tt.at.Format("2006-01-02"))
	}
}

func TestLongitudeRange(t *testing.T) {
	eph := newKeplerian(t)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 2000; d += 37 {
		at := start.AddDate(0, 0, d)
		for _, b := range astro.Bodies {
			lon, err := eph.Longitude(b, at)
			require.NoError(t, err)
			require.GreaterOrEqual(t, lon, 0.0)
			require.Less(t, lon, 360.0)
		}
	}
}

func TestUnsupportedBody(t *testing.T) {
	eph := newKeplerian(t)
	_, err := eph.Longitude(astro.Body(42), time.Now())
	assert.True(t, errors.Is(err, ErrUnsupportedBody))
}

func TestVSOP87MissingDirectory(t *testing.T) {
	_, err := New(t.TempDir())
	assert.Error(t, err)
}

func TestPlanetStations(t *testing.T) {
	eph := newKeplerian(t)

	tests := []struct {
		body astro.Body
		at   time.Time
		want float64
	}{
		{astro.Mercury, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 27.22},
		{astro.Jupiter, time.Date(2024, 10, 9, 0, 0, 0, 0, time.UTC), 81.33},
		{astro.Saturn, time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC), 349.42},
	}
	for _, tt := range tests {
		lon, err := eph.Longitude(tt.body, tt.at)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, lon, 0.15, "%s on %s", tt.body, tt.at.Format("2006-01-02"))
	}
}

func TestEarthOrbitIsInEcliptic(t *testing.T) {
	jde := 2460390.5
	x, y, z, err := keplerian{}.position(earth, jde)
	require.NoError(t, err)
	assert.Zero(t, z)
	assert.InDelta(t, 1.0, math.Hypot(x, y), 0.02)
}
