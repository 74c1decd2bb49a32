package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type linkRemindersRequest struct {
	ChatID int64 `json:"chatId"`
}

// LinkReminders associates a Telegram chat with the account for daily
// study reminders. A chat id of 0 unlinks.
func (s *Server) LinkReminders(c *gin.Context) {
	if s.reminders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "TELEGRAM_BOT_TOKEN chưa được cấu hình"})
		return
	}

	var req linkRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.LinkTelegram(currentEmail(c), req.ChatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"linked": req.ChatID != 0})
}

// TestReminder fires the reminder check for the current user right away
func (s *Server) TestReminder(c *gin.Context) {
	if s.reminders == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "TELEGRAM_BOT_TOKEN chưa được cấu hình"})
		return
	}

	if err := s.reminders.RunManualCheck(currentEmail(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}
