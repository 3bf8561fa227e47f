package astro

import (
	"fmt"
	"strings"
)

// Body identifies a celestial body tracked by the chart.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

// Bodies is the fixed observation order. Pair iteration and digest order follow it.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// TracksRetrograde reports whether a one-day longitude delta is a usable retrograde
// signal for the body. Slow outer planets sit near their stations for days, so only
// Mercury and Venus qualify.
func (b Body) TracksRetrograde() bool {
	return b == Mercury || b == Venus
}

// ParseBody resolves a case-insensitive body name.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}
