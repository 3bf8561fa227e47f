package forecast

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of Forecast.Date.
const DateLayout = "2006-01-02"

// Signal is the call for one asset class.
type Signal struct {
	Direction string `json:"direction" validate:"required"`
	Emoji     string `json:"emoji" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
}

type Signals struct {
	BTC  Signal `json:"BTC"`
	ETH  Signal `json:"ETH"`
	ALTS Signal `json:"ALTS"`
}

// Forecast is the persisted daily market-mood document.
type Forecast struct {
	Date               string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	MarketMood         string  `json:"market_mood" validate:"required"`
	AstroJustification string  `json:"astro_justification" validate:"required"`
	Signals            Signals `json:"signals"`
	Quote              string  `json:"quote" validate:"required"`
}

var validate = validator.New()

// Validate checks the schema. Date may be empty before the writer stamps it.
func (f *Forecast) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid forecast: %w", err)
	}
	return nil
}

// Bias condenses the three signals into "bullish", "bearish" or "neutral" by counting
// up and down calls.
func (f *Forecast) Bias() string {
	up, down := 0, 0
	for _, s := range []Signal{f.Signals.BTC, f.Signals.ETH, f.Signals.ALTS} {
		switch direction(s.Direction) {
		case 1:
			up++
		case -1:
			down++
		}
	}

	if up > down {
		return "bullish"
	} else if down > up {
		return "bearish"
	}
	return "neutral"
}

func direction(d string) int {
	d = strings.ToLower(strings.TrimSpace(d))
	switch {
	case strings.Contains(d, "↑"), strings.HasPrefix(d, "up"), strings.Contains(d, "bull"):
		return 1
	case strings.Contains(d, "↓"), strings.HasPrefix(d, "down"), strings.Contains(d, "bear"):
		return -1
	}
	return 0
}
