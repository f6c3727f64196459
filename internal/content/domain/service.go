package domain

import (
	"context"
	"errors"
)

type CreatePostRequest struct {
	Title         string `json:"title" binding:"required"`
	Excerpt       string `json:"excerpt"`
	Body          string `json:"body"`
	CoverImageURL string `json:"cover_image_url"`
	Published     bool   `json:"published"`
}

type UpdatePostRequest struct {
	Title         *string `json:"title,omitempty"`
	Excerpt       *string `json:"excerpt,omitempty"`
	Body          *string `json:"body,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Published     *bool   `json:"published,omitempty"`
}

type CreateGalleryItemRequest struct {
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	ImageURL  string `json:"image_url" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

type Service interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (BlogPost, error)
	UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (BlogPost, error)
	DeletePost(ctx context.Context, id string) error
	GetPostBySlug(ctx context.Context, slug string) (BlogPost, error)
	ListPosts(ctx context.Context, publishedOnly bool) ([]BlogPost, error)

	AddGalleryItem(ctx context.Context, req CreateGalleryItemRequest) (GalleryItem, error)
	RemoveGalleryItem(ctx context.Context, id string) error
	ListGallery(ctx context.Context) ([]GalleryItem, error)
}

var (
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidImage = errors.New("invalid_image")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
