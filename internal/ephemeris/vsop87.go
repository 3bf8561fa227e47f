package ephemeris

import (
	"fmt"

	pp "github.com/soniakeys/meeus/v3/planetposition"
)

var vsopIndex = map[planet]int{
	mercury: pp.Mercury,
	venus:   pp.Venus,
	earth:   pp.Earth,
	mars:    pp.Mars,
	jupiter: pp.Jupiter,
	saturn:  pp.Saturn,
}

// vsop87 evaluates the full VSOP87 series loaded from the data files in a directory.
type vsop87 struct {
	planets map[planet]*pp.V87Planet
}

func loadVSOP87(dir string) (*vsop87, error) {
	v := &vsop87{planets: make(map[planet]*pp.V87Planet, len(vsopIndex))}
	for p, idx := range vsopIndex {
		series, err := pp.LoadPlanetPath(idx, dir)
		if err != nil {
			return nil, fmt.Errorf("load VSOP87 %s from %s: %w", p, dir, err)
		}
		v.planets[p] = series
	}
	return v, nil
}

func (v *vsop87) position(p planet, jde float64) (x, y, z float64, err error) {
	series, ok := v.planets[p]
	if !ok {
		return 0, 0, 0, ErrUnsupportedBody
	}
	L, B, R := series.Position(jde)
	x, y, z = sphericalToRect(L, B, R)
	return x, y, z, nil
}
