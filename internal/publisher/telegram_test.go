package publisher

import (
	"context"
	"errors"
	"testing"

	"moonalyzer/internal/forecast"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	r.sent = append(r.sent, c)
	return tgbotapi.Message{}, r.err
}

func sampleForecast() *forecast.Forecast {
	return &forecast.Forecast{
		Date:               "2025-10-19",
		MarketMood:         "Mercury-fueled chop (again).",
		AstroJustification: "Sun square Mars: tempers + leverage = fireworks!",
		Signals: forecast.Signals{
			BTC:  forecast.Signal{Direction: "↑", Emoji: "🚀", Reason: "Jupiter backs the king."},
			ETH:  forecast.Signal{Direction: "↓", Emoji: "🌧️", Reason: "Gas_fees retrograde."},
			ALTS: forecast.Signal{Direction: "↑", Emoji: "🎲", Reason: "Moon in Leo."},
		},
		Quote: "Stay liquid, stay lunar.",
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "a\\_b\\*c\\.", escapeMarkdown("a_b*c."))
	assert.Equal(t, "\\\\n", escapeMarkdown("\\n"))
	assert.Equal(t, "2025\\-10\\-19", escapeMarkdown("2025-10-19"))
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(sampleForecast())

	assert.Contains(t, msg, "🟢 BULLISH")
	assert.Contains(t, msg, "2025\\-10\\-19")
	assert.Contains(t, msg, "Mercury\\-fueled chop \\(again\\)\\.")
	assert.Contains(t, msg, "tempers \\+ leverage \\= fireworks\\!")
	assert.Contains(t, msg, "*ETH* ↓ 🌧️ Gas\\_fees retrograde\\.")
	assert.Contains(t, msg, "_Stay liquid, stay lunar\\._")
}

func TestPublish(t *testing.T) {
	rec := &recordingSender{}
	tg := &Telegram{bot: rec, chatID: 42}

	require.NoError(t, tg.Publish(context.Background(), sampleForecast()))
	require.Len(t, rec.sent, 1)

	msg, ok := rec.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
}

func TestPublishErrors(t *testing.T) {
	rec := &recordingSender{err: errors.New("chat not found")}
	tg := &Telegram{bot: rec, chatID: 42}
	assert.ErrorContains(t, tg.Publish(context.Background(), sampleForecast()), "chat not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tg.Publish(ctx, sampleForecast()), context.Canceled)
}
