package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duynd-cmd/ai-mentor/internal/ai"
	"github.com/duynd-cmd/ai-mentor/internal/config"
	"github.com/duynd-cmd/ai-mentor/internal/notify"
	"github.com/duynd-cmd/ai-mentor/internal/scheduler"
	"github.com/duynd-cmd/ai-mentor/internal/server"
	"github.com/duynd-cmd/ai-mentor/internal/session"
	"github.com/duynd-cmd/ai-mentor/internal/storage"
)

func main() {
	cfg := config.Load()

	local, err := storage.OpenLocal(cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer local.Close()

	// Cloud mode is decided once here. If the cloud database is
	// configured but unreachable we run local-only for the whole
	// process lifetime; there is no reconnect loop.
	var cloud *storage.CloudStore
	if cfg.DatabaseURL != "" {
		cloud, err = storage.OpenCloud(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Cloud store unreachable, falling back to local-only mode: %v", err)
			cloud = nil
		} else {
			defer cloud.Close()
			log.Println("Mind Mentor connected to cloud store")
		}
	} else {
		log.Println("No DATABASE_URL configured, using local store only")
	}

	router := storage.NewRouter(local, cloud)
	sessions := session.NewManager(router)

	generator, err := ai.NewGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("Content generator disabled: %v", err)
		generator = nil
	}

	var reminders *scheduler.Scheduler
	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken)
		if err != nil {
			log.Printf("Study reminders disabled: %v", err)
		} else {
			reminders = scheduler.New(local, notifier, cfg.ReminderHour)
			reminders.Start()
			defer reminders.Stop()
		}
	}

	srv := server.New(cfg, sessions, generator, reminders)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(cfg),
	}

	go func() {
		log.Printf("Mind Mentor listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Mind Mentor stopped")
}
