package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynd-cmd/ai-mentor/internal/ai"
	"github.com/duynd-cmd/ai-mentor/pkg/models"
)

type discoverRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// DiscoverResources asks the generator for study materials. A malformed
// reply yields an empty list.
func (s *Server) DiscoverResources(c *gin.Context) {
	if s.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY chưa được cấu hình"})
		return
	}

	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	resources, err := s.generator.DiscoverResources(c.Request.Context(), req.Subject, state.Memory)
	if err != nil {
		if errors.Is(err, ai.ErrMalformed) {
			c.JSON(http.StatusOK, gin.H{"resources": []models.Resource{}})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// SaveResource adds a resource to the saved set (dedup by id)
func (s *Server) SaveResource(c *gin.Context) {
	var resource models.Resource
	if err := c.ShouldBindJSON(&resource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if resource.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource id is required"})
		return
	}

	mem, err := s.sessions.SaveResource(currentEmail(c), resource)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": mem})
}

// RemoveResource drops a saved resource; unknown ids are a no-op
func (s *Server) RemoveResource(c *gin.Context) {
	mem, err := s.sessions.RemoveResource(currentEmail(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"memory": mem})
}
