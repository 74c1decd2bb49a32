package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/duynd-cmd/ai-mentor/internal/ai"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

type addNoteRequest struct {
	Title   string   `json:"title" binding:"required"`
	Subject string   `json:"subject"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// AddNote creates a note at the front of the list
func (s *Server) AddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := models.Note{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Subject:    req.Subject,
		Content:    req.Content,
		Tags:       req.Tags,
		LastEdited: time.Now().UnixMilli(),
	}
	notes, err := s.sessions.AddNote(currentEmail(c), note)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notes": notes})
}

type updateNoteRequest struct {
	Content string `json:"content"`
}

// UpdateNote replaces a note's content
func (s *Server) UpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := s.sessions.UpdateNote(currentEmail(c), c.Param("id"), req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote removes a note by id
func (s *Server) DeleteNote(c *gin.Context) {
	notes, err := s.sessions.DeleteNote(currentEmail(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

type enhanceNoteRequest struct {
	Content string `json:"content" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

// EnhanceNote runs a note through the generator (summarize, simplify or
// turn into review questions)
func (s *Server) EnhanceNote(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY chưa được cấu hình"})
		return
	}

	var req enhanceNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	result, err := s.generator.EnhanceNote(c.Request.Context(), req.Content, ai.NoteAction(req.Action), state.Memory)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
