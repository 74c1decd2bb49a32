package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynd-cmd/ai-mentor/internal/session"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new account and returns a bearer token plus the
// zero-initialized state.
func (s *Server) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.Signup(req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, session.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email này đã được đăng ký"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.respondAuthenticated(c, http.StatusCreated, req.Email)
}

// Login authenticates an existing account
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sessions.Login(req.Email, req.Password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email hoặc mật khẩu không đúng"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.respondAuthenticated(c, http.StatusOK, req.Email)
}

// Logout drops the in-memory session; stored records are untouched
func (s *Server) Logout(c *gin.Context) {
	s.sessions.Logout(currentEmail(c))
	c.Status(http.StatusNoContent)
}

// GetState returns the full snapshot for the authenticated user
func (s *Server) GetState(c *gin.Context) {
	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) respondAuthenticated(c *gin.Context, status int, email string) {
	token, err := GenerateToken(email, s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	state, err := s.sessions.Snapshot(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{"token": token, "state": state})
}
