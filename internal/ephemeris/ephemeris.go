// Package ephemeris computes geocentric ecliptic longitudes for the chart bodies.
//
// Longitudes are referred to the true equinox of date: heliocentric positions of date are
// differenced against the Earth and corrected for nutation. Light-time and aberration
// are ignored; both stay well under a hundredth of a degree for the bodies in the chart.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
	"time"

	"moonalyzer/internal/astro"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/unit"
)

// ErrUnsupportedBody is returned for bodies the ephemeris has no theory for.
var ErrUnsupportedBody = errors.New("unsupported body")

// Ephemeris returns a body's geocentric ecliptic longitude in degrees [0, 360).
type Ephemeris interface {
	Longitude(body astro.Body, t time.Time) (float64, error)
}

type planet int

const (
	mercury planet = iota
	venus
	earth
	mars
	jupiter
	saturn
)

func (p planet) String() string {
	return [...]string{"mercury", "venus", "earth", "mars", "jupiter", "saturn"}[p]
}

// heliocentric gives rectangular ecliptic coordinates of date in AU.
type heliocentric interface {
	position(p planet, jde float64) (x, y, z float64, err error)
}

var bodyPlanet = map[astro.Body]planet{
	astro.Mercury: mercury,
	astro.Venus:   venus,
	astro.Mars:    mars,
	astro.Jupiter: jupiter,
	astro.Saturn:  saturn,
}

// Geocentric combines a heliocentric planetary theory with the meeus lunar theory.
type Geocentric struct {
	helio heliocentric
	name  string
}

// Name identifies the planetary theory in use.
func (g *Geocentric) Name() string { return g.name }

// Longitude implements Ephemeris.
func (g *Geocentric) Longitude(body astro.Body, t time.Time) (float64, error) {
	jde := julian.TimeToJD(t.UTC())
	Δψ, _ := nutation.Nutation(jde)

	if body == astro.Moon {
		λ, _, _ := moonposition.Position(jde)
		return astro.Normalize((λ + Δψ).Deg()), nil
	}

	ex, ey, _, err := g.helio.position(earth, jde)
	if err != nil {
		return 0, fmt.Errorf("earth position: %w", err)
	}

	var x, y float64
	switch body {
	case astro.Sun:
		x, y = -ex, -ey
	default:
		p, ok := bodyPlanet[body]
		if !ok {
			return 0, fmt.Errorf("%s: %w", body, ErrUnsupportedBody)
		}
		px, py, _, err := g.helio.position(p, jde)
		if err != nil {
			return 0, fmt.Errorf("%s position: %w", p, err)
		}
		x, y = px-ex, py-ey
	}

	lon := math.Atan2(y, x) * 180 / math.Pi
	return astro.Normalize(lon + Δψ.Deg()), nil
}

func sphericalToRect(L, B unit.Angle, R float64) (x, y, z float64) {
	sB, cB := B.Sincos()
	sL, cL := L.Sincos()
	return R * cB * cL, R * cB * sL, R * sB
}

// New returns the VSOP87 ephemeris when vsop87Dir is set, otherwise the built-in
// mean-element ephemeris.
func New(vsop87Dir string) (*Geocentric, error) {
	if vsop87Dir == "" {
		return &Geocentric{helio: keplerian{}, name: "keplerian"}, nil
	}
	v, err := loadVSOP87(vsop87Dir)
	if err != nil {
		return nil, err
	}
	return &Geocentric{helio: v, name: "vsop87"}, nil
}
