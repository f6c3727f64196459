package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
)

func (s *Server) ListPrograms(c *gin.Context) {
	var query struct {
		All bool `form:"all"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	programs, err := s.programSvc.List(c.Request.Context(), !query.All)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": programs})
}

func (s *Server) GetProgramBySlug(c *gin.Context) {
	program, err := s.programSvc.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": program})
}

func (s *Server) CreateProgram(c *gin.Context) {
	var req programdomain.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	program, err := s.programSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": program})
}

func (s *Server) UpdateProgram(c *gin.Context) {
	var req programdomain.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	program, err := s.programSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": program})
}

// ResyncProgramTotals rebuilds cached raised totals from the ledger on
// demand, the same sweep the scheduler runs periodically.
func (s *Server) ResyncProgramTotals(c *gin.Context) {
	corrected, err := s.programSvc.ResyncRaised(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"corrected": corrected}})
}
