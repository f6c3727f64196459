package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	leadsdomain "github.com/kolahope/kolahope/internal/leads/domain"
)

func (s *Server) CreateContact(c *gin.Context) {
	var req leadsdomain.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	msg, err := s.leadsSvc.CreateContact(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": msg})
}

func (s *Server) CreateVolunteer(c *gin.Context) {
	var req leadsdomain.CreateVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	app, err := s.leadsSvc.CreateVolunteer(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app})
}

func (s *Server) CreatePartner(c *gin.Context) {
	var req leadsdomain.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inquiry, err := s.leadsSvc.CreatePartner(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inquiry})
}

func (s *Server) CreateProgramInquiry(c *gin.Context) {
	var req leadsdomain.CreateProgramInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	inquiry, err := s.leadsSvc.CreateProgramInquiry(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inquiry})
}

type listLeadsQuery struct {
	Limit int `form:"limit,default=50"`
}

func (s *Server) ListContacts(c *gin.Context) {
	var query listLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items, err := s.leadsSvc.ListContacts(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListVolunteers(c *gin.Context) {
	var query listLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items, err := s.leadsSvc.ListVolunteers(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListPartners(c *gin.Context) {
	var query listLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items, err := s.leadsSvc.ListPartners(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) ListProgramInquiries(c *gin.Context) {
	var query listLeadsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items, err := s.leadsSvc.ListProgramInquiries(c.Request.Context(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}
