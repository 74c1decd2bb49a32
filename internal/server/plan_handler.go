package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynd-cmd/ai-mentor/internal/ai"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

type generatePlanRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Duration string `json:"duration" binding:"required"`
}

// GeneratePlan asks the content generator for a study plan and makes it
// the active plan. A malformed generator reply yields a null plan, not
// an error.
func (s *Server) GeneratePlan(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY chưa được cấu hình"})
		return
	}

	var req generatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := currentEmail(c)
	state, err := s.sessions.Snapshot(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	plan, err := s.generator.GeneratePlan(c.Request.Context(), req.Subject, req.Duration, state.Memory)
	if err != nil {
		if errors.Is(err, ai.ErrMalformed) {
			c.JSON(http.StatusOK, gin.H{"plan": nil})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.SetActivePlan(email, plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

type setPlanRequest struct {
	Plan *models.StudyPlan `json:"plan"`
}

// SetPlan replaces (or with null, clears) the active plan
func (s *Server) SetPlan(c *gin.Context) {
	var req setPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.SetActivePlan(currentEmail(c), req.Plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": req.Plan})
}

type completeTaskRequest struct {
	WeekIndex int    `json:"weekIndex"`
	DayIndex  int    `json:"dayIndex"`
	TaskID    string `json:"taskId" binding:"required"`
	XPGained  int    `json:"xpGained"`
	IsCorrect *bool  `json:"isCorrect"`
}

// CompleteTask marks a plan task completed and applies the progress
// transitions. Repeat calls for the same task are no-ops.
func (s *Server) CompleteTask(c *gin.Context) {
	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.XPGained < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "xpGained must not be negative"})
		return
	}

	state, err := s.sessions.CompleteTask(currentEmail(c), req.WeekIndex, req.DayIndex, req.TaskID, req.XPGained, req.IsCorrect)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

type quizRequest struct {
	TaskDescription string `json:"taskDescription" binding:"required"`
}

// GenerateQuiz builds one multiple-choice question for a task
func (s *Server) GenerateQuiz(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY chưa được cấu hình"})
		return
	}

	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	question, err := s.generator.GenerateQuiz(c.Request.Context(), req.TaskDescription, state.Memory)
	if err != nil {
		if errors.Is(err, ai.ErrMalformed) {
			c.JSON(http.StatusOK, gin.H{"question": nil})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": question})
}
