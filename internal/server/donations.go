package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/kolahope/kolahope/pkg/db/pagination"
)

func (s *Server) InitializeDonation(c *gin.Context) {
	var req donationdomain.InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.donationSvc.Initialize(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) VerifyDonation(c *gin.Context) {
	var req donationdomain.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, donationdomain.ErrMissingReference)
		return
	}

	resp, err := s.donationSvc.Verify(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RecentDonations(c *gin.Context) {
	var query struct {
		Limit int `form:"limit,default=10"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	views, err := s.donationSvc.RecentPublic(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (s *Server) ListDonations(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status    string `form:"status"`
		ProgramID string `form:"program_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.donationSvc.List(c.Request.Context(), donationdomain.ListDonationRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		ProgramID: strings.TrimSpace(query.ProgramID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
