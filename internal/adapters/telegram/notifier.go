package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"botboard/pkg/logger"
)

// Notifier pushes fire-and-forget operational notifications to an admin
// chat. Send failures are logged, never propagated; the initiating
// operation has already succeeded.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

// NewNotifier creates a Telegram notifier for the given admin chat
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Notifier{
		bot:    bot,
		chatID: chatID,
		log:    logger.Get().With("component", "telegram_notifier"),
	}, nil
}

// BotCreated announces a newly created trading bot
func (n *Notifier) BotCreated(name, symbol, strategy string) {
	n.send(fmt.Sprintf("🤖 Bot created: %s (%s, %s)", name, symbol, strategy))
}

// BotDeleted announces a deleted trading bot
func (n *Notifier) BotDeleted(name, symbol string) {
	n.send(fmt.Sprintf("🗑 Bot deleted: %s (%s)", name, symbol))
}

// BotToggled announces an activation state change
func (n *Notifier) BotToggled(name string, active bool) {
	state := "deactivated"
	if active {
		state = "activated"
	}
	n.send(fmt.Sprintf("🔁 Bot %s: %s", state, name))
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Warnw("Failed to send telegram notification", "error", err)
	}
}
