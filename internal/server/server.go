// Package server exposes the study assistant over an HTTP API. The UI is
// a separate frontend; everything here is JSON over bearer-token auth.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/duynd-cmd/ai-mentor/internal/ai"
	"github.com/duynd-cmd/ai-mentor/internal/config"
	"github.com/duynd-cmd/ai-mentor/internal/scheduler"
	"github.com/duynd-cmd/ai-mentor/internal/session"
)

// Server wires the session manager and content generator into gin
// handlers. generator is nil when no API key is configured; the AI
// endpoints then answer 503.
type Server struct {
	sessions  *session.Manager
	generator *ai.Generator
	reminders *scheduler.Scheduler // nil when reminders are disabled
	secret    string
}

// New creates the server
func New(cfg *config.Config, sessions *session.Manager, generator *ai.Generator, reminders *scheduler.Scheduler) *Server {
	return &Server{
		sessions:  sessions,
		generator: generator,
		reminders: reminders,
		secret:    cfg.JWTSecret,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "online": s.sessions.Online()})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", s.Signup)
		auth.POST("/login", s.Login)
		auth.POST("/logout", s.authRequired(), s.Logout)
	}

	api := r.Group("/api", s.authRequired())
	{
		api.GET("/state", s.GetState)
		api.PATCH("/memory", s.UpdateMemory)
		api.POST("/pomodoro", s.RecordPomodoro)

		api.POST("/plan/generate", s.GeneratePlan)
		api.PUT("/plan", s.SetPlan)
		api.POST("/plan/tasks/complete", s.CompleteTask)
		api.POST("/quiz", s.GenerateQuiz)

		api.POST("/resources/discover", s.DiscoverResources)
		api.POST("/resources", s.SaveResource)
		api.DELETE("/resources/:id", s.RemoveResource)

		api.POST("/notes", s.AddNote)
		api.PUT("/notes/:id", s.UpdateNote)
		api.DELETE("/notes/:id", s.DeleteNote)
		api.POST("/notes/enhance", s.EnhanceNote)

		api.POST("/chats", s.AddChatSession)
		api.PATCH("/chats/:id", s.UpdateChatSession)
		api.DELETE("/chats/:id", s.DeleteChatSession)
		api.POST("/chats/:id/messages", s.SendChatMessage)

		api.POST("/reminders/link", s.LinkReminders)
		api.POST("/reminders/test", s.TestReminder)

		api.GET("/export/progress.xlsx", s.ExportExcel)
		api.GET("/export/progress.csv", s.ExportCSV)
	}

	return r
}
