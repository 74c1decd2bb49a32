package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/duynd-cmd/ai-mentor/internal/progress"
	"github.com/duynd-cmd/ai-mentor/internal/storage"
)

// DefaultReminderHour is when daily study reminders go out (local time)
const DefaultReminderHour = 19

// Notifier interface for sending reminders
type Notifier interface {
	SendReminder(chatID int64, name string, pendingTasks int) error
}

// Scheduler runs the periodic reminder check over the local store.
// Every linked account with open plan tasks gets one nudge per day at
// the configured hour.
type Scheduler struct {
	scheduler *gocron.Scheduler
	local     *storage.LocalStore
	notifier  Notifier
	hour      int
}

// New creates a new scheduler instance
func New(local *storage.LocalStore, notifier Notifier, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = DefaultReminderHour
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		local:     local,
		notifier:  notifier,
		hour:      hour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders nudges every linked account with pending tasks
func (s *Scheduler) checkAndSendReminders() {
	if time.Now().Hour() != s.hour {
		return
	}

	accounts, err := s.local.AccountsWithReminders()
	if err != nil {
		log.Printf("Error listing reminder accounts: %v", err)
		return
	}

	for _, account := range accounts {
		pending := progress.PendingTasks(account.ActivePlan)
		if pending == 0 {
			continue
		}
		if err := s.notifier.SendReminder(account.TelegramChatID, account.Memory.Name, pending); err != nil {
			log.Printf("Error sending reminder to %s: %v", account.Email, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(email string) error {
	account, err := s.local.GetAccount(email)
	if err != nil {
		return err
	}
	if account == nil || account.TelegramChatID == 0 {
		return nil
	}
	pending := progress.PendingTasks(account.ActivePlan)
	if pending == 0 {
		return nil
	}
	return s.notifier.SendReminder(account.TelegramChatID, account.Memory.Name, pending)
}
