// Package notify pushes short admin notices to Telegram when submissions
// come in. Delivery is best effort: a failed notice is logged and dropped,
// never surfaced to the submitter.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

// New connects to the bot API. Returns nil without error when token or chat
// id are unset, so callers can treat notifications as optional.
func New(token string, chatID int64, log *slog.Logger) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, log: log}, nil
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Warn("telegram notify failed", "err", err)
	}
}

// JoinReceived fires on a new membership submission.
func (n *Notifier) JoinReceived(name string) {
	n.send(fmt.Sprintf("🏃 새 가입 신청: %s", name))
}

// ParticipationReceived fires on a race signup or cheering entry.
func (n *Notifier) ParticipationReceived(name, competition, class string) {
	n.send(fmt.Sprintf("📋 대회 신청: %s — %s (%s)", name, competition, class))
}

// RecordReceived fires on a new race-record submission.
func (n *Notifier) RecordReceived(name, competition, record string) {
	n.send(fmt.Sprintf("⏱ 기록 제출: %s — %s %s", name, competition, record))
}
