package publisher

import (
	"context"
	"fmt"
	"strings"

	"moonalyzer/internal/forecast"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Publisher broadcasts a saved forecast.
type Publisher interface {
	Publish(ctx context.Context, f *forecast.Forecast) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts forecasts to one chat.
type Telegram struct {
	bot    sender
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Publish(ctx context.Context, f *forecast.Forecast) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(f))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatMessage renders the forecast as a MarkdownV2 chat message.
func FormatMessage(f *forecast.Forecast) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌕 *Moonalyzer* \\| %s \\| %s %s\n\n",
		escapeMarkdown(f.Date),
		getBiasEmoji(f.Bias()),
		strings.ToUpper(f.Bias()))
	fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(f.MarketMood))
	fmt.Fprintf(&b, "🔭 %s\n\n", escapeMarkdown(f.AstroJustification))

	for _, row := range []struct {
		name string
		sig  forecast.Signal
	}{
		{"BTC", f.Signals.BTC},
		{"ETH", f.Signals.ETH},
		{"ALTS", f.Signals.ALTS},
	} {
		fmt.Fprintf(&b, "*%s* %s %s %s\n",
			row.name,
			escapeMarkdown(row.sig.Direction),
			escapeMarkdown(row.sig.Emoji),
			escapeMarkdown(row.sig.Reason))
	}

	if f.Quote != "" {
		fmt.Fprintf(&b, "\n_%s_", escapeMarkdown(f.Quote))
	}
	return b.String()
}

func getBiasEmoji(bias string) string {
	switch bias {
	case "bullish":
		return "🟢"
	case "bearish":
		return "🔴"
	default:
		return "🟡"
	}
}

var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"*", "\\*",
	"_", "\\_",
	"`", "\\`",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
