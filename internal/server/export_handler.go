package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duynd-cmd/ai-mentor/internal/export"
)

// ExportExcel streams the progress workbook as an .xlsx download
func (s *Server) ExportExcel(c *gin.Context) {
	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	f, err := export.BuildWorkbook(state.Email, state.Memory, state.ActivePlan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="mind-mentor-progress.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ExportCSV streams the progress and plan task list as CSV
func (s *Server) ExportCSV(c *gin.Context) {
	state, err := s.sessions.Snapshot(currentEmail(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="mind-mentor-progress.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(c.Writer, state.Email, state.Memory, state.ActivePlan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
