package astro

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Observation is one body's position in a chart.
type Observation struct {
	Body      Body
	Longitude float64
	Sign      Sign
	// Retrograde is only evaluated for bodies where TracksRetrograde is true.
	Retrograde bool
}

// Describe renders the observation the way the digest lists it, e.g. "Mercury in Libra (retrograde)".
func (o Observation) Describe() string {
	s := fmt.Sprintf("%s in %s", o.Body, o.Sign)
	if o.Retrograde {
		s += " (retrograde)"
	}
	return s
}

// Chart is the set of observations and aspects for one instant.
type Chart struct {
	At           time.Time
	Observations []Observation
	Aspects      []AspectHit
}

// BuildChart observes bodies at t in the given order and finds their aspects.
func BuildChart(src LongitudeSource, t time.Time, bodies []Body) (*Chart, error) {
	obs := make([]Observation, 0, len(bodies))
	for _, b := range bodies {
		lon, err := src.Longitude(b, t)
		if err != nil {
			return nil, fmt.Errorf("observe %s: %w", b, err)
		}
		lon = Normalize(lon)
		o := Observation{Body: b, Longitude: lon, Sign: SignOf(lon)}
		if b.TracksRetrograde() {
			retro, err := Retrograde(src, b, t)
			if err != nil {
				return nil, err
			}
			o.Retrograde = retro
		}
		obs = append(obs, o)
	}
	return &Chart{At: t, Observations: obs, Aspects: FindAspects(obs)}, nil
}

// TightestAspects returns up to n aspects ordered by orb, ties kept in pair order.
func (c *Chart) TightestAspects(n int) []AspectHit {
	ranked := make([]AspectHit, len(c.Aspects))
	copy(ranked, c.Aspects)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Orb < ranked[j].Orb })
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Digest summarizes the chart for the forecast prompt: the first planets
// observations in body order, then the maxAspects tightest aspects.
func (c *Chart) Digest(planets, maxAspects int) string {
	obs := c.Observations
	if planets >= 0 && len(obs) > planets {
		obs = obs[:planets]
	}
	descs := make([]string, 0, len(obs))
	for _, o := range obs {
		descs = append(descs, o.Describe())
	}

	hits := c.TightestAspects(maxAspects)
	aspects := make([]string, 0, len(hits))
	for _, h := range hits {
		aspects = append(aspects, h.String())
	}

	return strings.Join(descs, ", ") + ". " + strings.Join(aspects, ", ")
}
