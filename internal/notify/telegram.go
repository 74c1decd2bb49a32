package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers study reminders to a linked Telegram chat
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier from a bot token
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{bot: bot}, nil
}

// SendReminder tells a user how many plan tasks are still open today
func (n *TelegramNotifier) SendReminder(chatID int64, name string, pendingTasks int) error {
	text := fmt.Sprintf(
		"📚 Chào %s! Bạn còn %d nhiệm vụ chưa hoàn thành trong lộ trình học tập. Cố lên nhé!",
		name, pendingTasks,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
