package incident

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts critical incidents to the ops Telegram channel.
// Outbound-only: the bot never reads updates.
type TelegramNotifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier authorizes the bot once at startup.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize incident bot: %w", err)
	}
	return &TelegramNotifier{Bot: bot, ChatID: chatID}, nil
}

// Notify sends one incident summary. A send failure requeues the incident,
// so delivery stays at-least-once.
func (n *TelegramNotifier) Notify(p Payload) error {
	text := fmt.Sprintf("🚨 *Critical report* `%s`\nCategory: %s\nReported actor: `%s`\nReporter: `%s`\nReason: %s",
		p.ReportID, p.Category, p.ReportedID, p.ReporterID, p.Reason)

	msg := tgbotapi.NewMessage(n.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.Bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
