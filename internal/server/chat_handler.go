package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/duynd-cmd/ai-mentor/internal/collections"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

type addChatSessionRequest struct {
	Title           string `json:"title" binding:"required"`
	FileName        string `json:"fileName"`
	DocumentContext string `json:"documentContext"`
}

// AddChatSession opens a new document-chat session
func (s *Server) AddChatSession(c *gin.Context) {
	var req addChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UnixMilli()
	chat := models.ChatSession{
		ID:              uuid.NewString(),
		Title:           req.Title,
		FileName:        req.FileName,
		DocumentContext: req.DocumentContext,
		Messages:        []models.ChatMessage{},
		CreatedAt:       now,
		LastUpdated:     now,
	}
	sessions, err := s.sessions.AddChatSession(currentEmail(c), chat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chatSessions": sessions})
}

type updateChatSessionRequest struct {
	Title           *string `json:"title"`
	FileName        *string `json:"fileName"`
	DocumentContext *string `json:"documentContext"`
}

// UpdateChatSession applies a partial update to a session
func (s *Server) UpdateChatSession(c *gin.Context) {
	var req updateChatSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, err := s.sessions.UpdateChatSession(currentEmail(c), c.Param("id"), collections.ChatSessionPatch{
		Title:           req.Title,
		FileName:        req.FileName,
		DocumentContext: req.DocumentContext,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatSessions": sessions})
}

// DeleteChatSession removes a session by id
func (s *Server) DeleteChatSession(c *gin.Context) {
	sessions, err := s.sessions.DeleteChatSession(currentEmail(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatSessions": sessions})
}

type chatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendChatMessage appends a user turn to a session, asks the generator
// for a reply against the session's document context, and appends the
// reply. Generator trouble degrades to an apology message rather than an
// error: the transcript stays consistent either way.
func (s *Server) SendChatMessage(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY chưa được cấu hình"})
		return
	}

	var req chatMessageRequest
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

	chatID := c.Param("id")
	var chat *models.ChatSession
	for i := range state.ChatSessions {
		if state.ChatSessions[i].ID == chatID {
			chat = &state.ChatSessions[i]
			break
		}
	}
	if chat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found"})
		return
	}

	reply, err := s.generator.Chat(c.Request.Context(), req.Message, chat.Messages, chat.DocumentContext, state.Memory)
	if err != nil {
		log.Printf("Chat error for %s: %v", email, err)
		reply = "Tôi đang gặp khó khăn khi đọc tài liệu lúc này."
	}

	now := time.Now().UnixMilli()
	sessions, err := s.sessions.UpdateChatSession(email, chatID, collections.ChatSessionPatch{
		AppendMessages: []models.ChatMessage{
			{ID: uuid.NewString(), Role: "user", Text: req.Message, Timestamp: now},
			{ID: uuid.NewString(), Role: "model", Text: reply, Timestamp: now},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply, "chatSessions": sessions})
}
