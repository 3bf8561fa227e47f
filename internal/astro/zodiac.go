package astro

import (
	"fmt"
	"math"
)

// Sign is one of the twelve 30-degree zodiac sectors, starting at Aries = 0.
type Sign int

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Normalize folds any longitude into [0, 360).
func Normalize(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if lon >= 360 {
		lon = 0
	}
	return lon
}

// SignOf maps an ecliptic longitude to its zodiac sign.
func SignOf(lon float64) Sign {
	return Sign(int(math.Floor(Normalize(lon)/30)) % 12)
}

// SignNames returns the twelve labels in sector order.
func SignNames() []string {
	out := make([]string, len(signNames))
	copy(out, signNames[:])
	return out
}
