package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	pe "github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
)

var elementIndex = map[planet]int{
	mercury: pe.Mercury,
	venus:   pe.Venus,
	mars:    pe.Mars,
	jupiter: pe.Jupiter,
	saturn:  pe.Saturn,
}

// keplerian places planets on unperturbed orbits from the mean elements of
// Astronomical Algorithms table 31.A, referred to the mean equinox of date.
// The Earth comes from the low-precision solar theory of chapter 25, since the
// table carries no node for it.
type keplerian struct{}

func (keplerian) position(p planet, jde float64) (x, y, z float64, err error) {
	if p == earth {
		T := base.J2000Century(jde)
		s, _ := solar.True(T)
		x, y, z = sphericalToRect(s+math.Pi, 0, solar.Radius(T))
		return x, y, z, nil
	}

	idx, ok := elementIndex[p]
	if !ok {
		return 0, 0, 0, ErrUnsupportedBody
	}

	var el pe.Elements
	pe.Mean(idx, jde, &el)

	E := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	ν := kepler.True(E, el.Ecc)
	r := kepler.Radius(E, el.Ecc, el.Axis)

	// argument of latitude
	u := ν + el.Peri - el.Node
	su, cu := u.Sincos()
	sΩ, cΩ := el.Node.Sincos()
	sI, cI := el.Inc.Sincos()

	x = r * (cΩ*cu - sΩ*su*cI)
	y = r * (sΩ*cu + cΩ*su*cI)
	z = r * su * sI
	return x, y, z, nil
}
