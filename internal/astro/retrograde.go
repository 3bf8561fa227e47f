package astro

import (
	"fmt"
	"time"
)

// RetrogradeWindow is the sampling interval for apparent motion.
const RetrogradeWindow = 24 * time.Hour

// LongitudeSource returns the geocentric ecliptic longitude of a body at an instant.
type LongitudeSource interface {
	Longitude(body Body, t time.Time) (float64, error)
}

// IsRetrograde reports whether moving from lon0 to lon1 is apparent backward motion.
// The delta is taken modulo 360, so a prograde step across 0° Aries stays prograde.
func IsRetrograde(lon0, lon1 float64) bool {
	return Normalize(lon1-lon0) > 180
}

// Retrograde samples src at t and t+RetrogradeWindow.
func Retrograde(src LongitudeSource, body Body, t time.Time) (bool, error) {
	lon0, err := src.Longitude(body, t)
	if err != nil {
		return false, fmt.Errorf("longitude of %s at %s: %w", body, t.Format(time.RFC3339), err)
	}
	next := t.Add(RetrogradeWindow)
	lon1, err := src.Longitude(body, next)
	if err != nil {
		return false, fmt.Errorf("longitude of %s at %s: %w", body, next.Format(time.RFC3339), err)
	}
	return IsRetrograde(lon0, lon1), nil
}
