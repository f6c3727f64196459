package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contentdomain "github.com/kolahope/kolahope/internal/content/domain"
)

func (s *Server) ListPublishedPosts(c *gin.Context) {
	posts, err := s.contentSvc.ListPosts(c.Request.Context(), true)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (s *Server) ListAllPosts(c *gin.Context) {
	posts, err := s.contentSvc.ListPosts(c.Request.Context(), false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (s *Server) GetPostBySlug(c *gin.Context) {
	post, err := s.contentSvc.GetPostBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) CreatePost(c *gin.Context) {
	var req contentdomain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	post, err := s.contentSvc.CreatePost(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) UpdatePost(c *gin.Context) {
	var req contentdomain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	post, err := s.contentSvc.UpdatePost(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (s *Server) DeletePost(c *gin.Context) {
	if err := s.contentSvc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) ListGallery(c *gin.Context) {
	items, err := s.contentSvc.ListGallery(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) AddGalleryItem(c *gin.Context) {
	var req contentdomain.CreateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.contentSvc.AddGalleryItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) RemoveGalleryItem(c *gin.Context) {
	if err := s.contentSvc.RemoveGalleryItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
