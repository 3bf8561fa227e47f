package astro

import (
	"fmt"
	"math"
)

// Orb is the tolerance in degrees around each canonical aspect angle.
const Orb = 6.0

// Aspect is a named angular relationship between two longitudes.
type Aspect struct {
	Name  string
	Angle float64
}

func (a Aspect) String() string { return a.Name }

var (
	Conjunction = Aspect{Name: "conjunction", Angle: 0}
	Sextile     = Aspect{Name: "sextile", Angle: 60}
	Square      = Aspect{Name: "square", Angle: 90}
	Trine       = Aspect{Name: "trine", Angle: 120}
	Opposition  = Aspect{Name: "opposition", Angle: 180}
)

// AspectTable is the classification priority. The first entry within Orb wins.
var AspectTable = []Aspect{Conjunction, Sextile, Square, Trine, Opposition}

// Separation returns the shortest angular distance between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Classify returns the aspect formed by two longitudes, if any.
func Classify(a, b float64) (Aspect, bool) {
	sep := Separation(a, b)
	for _, asp := range AspectTable {
		if math.Abs(sep-asp.Angle) < Orb {
			return asp, true
		}
	}
	return Aspect{}, false
}

// AspectHit is an aspect found between two observed bodies.
type AspectHit struct {
	A, B       Body
	Aspect     Aspect
	Separation float64
	// Orb is the distance from the exact aspect angle.
	Orb float64
}

func (h AspectHit) String() string {
	return fmt.Sprintf("%s %s %s", h.A, h.Aspect.Name, h.B)
}

// FindAspects checks every unordered pair of observations, in observation order.
func FindAspects(obs []Observation) []AspectHit {
	var hits []AspectHit
	for i := 0; i < len(obs); i++ {
		for j := i + 1; j < len(obs); j++ {
			asp, ok := Classify(obs[i].Longitude, obs[j].Longitude)
			if !ok {
				continue
			}
			sep := Separation(obs[i].Longitude, obs[j].Longitude)
			hits = append(hits, AspectHit{
				A:          obs[i].Body,
				B:          obs[j].Body,
				Aspect:     asp,
				Separation: sep,
				Orb:        math.Abs(sep - asp.Angle),
			})
		}
	}
	return hits
}
