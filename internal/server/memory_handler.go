package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// memoryUpdateFields is the whitelist of fields a client may patch
// directly. XP, level, badges and quiz stats only move through the
// progress engine.
var memoryUpdateFields = map[string]bool{
	"name":            true,
	"grade":           true,
	"goals":           true,
	"strengths":       true,
	"weaknesses":      true,
	"subjectsStudied": true,
}

// UpdateMemory applies a partial profile update (onboarding, settings)
func (s *Server) UpdateMemory(c *gin.Context) {
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := make(map[string]interface{}, len(update))
	for k, v := range update {
		if memoryUpdateFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no updatable fields in request"})
		return
	}

	mem, err := s.sessions.UpdateMemory(currentEmail(c), filtered)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": mem})
}

type pomodoroRequest struct {
	FocusMinutes int `json:"focusMinutes"`
}

// RecordPomodoro counts one finished focus session (default 25 minutes)
func (s *Server) RecordPomodoro(c *gin.Context) {
	req := pomodoroRequest{FocusMinutes: 25}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FocusMinutes <= 0 {
		req.FocusMinutes = 25
	}

	mem, err := s.sessions.RecordPomodoro(currentEmail(c), req.FocusMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": mem})
}
