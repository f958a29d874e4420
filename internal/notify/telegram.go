// Package notify delivers alert summaries to a Telegram chat.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VigneshManiSenthilnathan/Unusual-Options-Activity/internal/model"
)

// Telegram sends interpretation summaries and alerts to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates the notifier. An empty token disables delivery
// and returns nil without error.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send pushes the summary and any alerts for one symbol. Delivery
// failures are reported to the caller but should never abort a run.
func (t *Telegram) Send(symbol string, in model.Interpretation) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n\n%s\n", symbol, in.Summary)
	if len(in.Alerts) > 0 {
		b.WriteString("\n")
		for _, alert := range in.Alerts {
			fmt.Fprintf(&b, "⚠️ %s\n", alert)
		}
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	t.logger.Debug().Str("symbol", symbol).Int("alerts", len(in.Alerts)).Msg("Alert message sent")
	return nil
}
