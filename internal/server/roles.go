package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type grantRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (s *Server) ListUserRoles(c *gin.Context) {
	roles, err := s.roleSvc.ListRoles(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles})
}

func (s *Server) GrantRole(c *gin.Context) {
	var req grantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	grant, err := s.roleSvc.Grant(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Role))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": grant})
}

func (s *Server) RevokeRole(c *gin.Context) {
	if err := s.roleSvc.Revoke(c.Request.Context(), c.Param("id"), c.Param("role")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"revoked": true}})
}
