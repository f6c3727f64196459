package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertPost(ctx context.Context, db *gorm.DB, post *BlogPost) error
	UpdatePost(ctx context.Context, db *gorm.DB, post *BlogPost) error
	DeletePost(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	FindPostByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*BlogPost, error)
	FindPostBySlug(ctx context.Context, db *gorm.DB, slug string) (*BlogPost, error)
	ListPosts(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]*BlogPost, error)

	InsertGalleryItem(ctx context.Context, db *gorm.DB, item *GalleryItem) error
	DeleteGalleryItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	ListGallery(ctx context.Context, db *gorm.DB) ([]*GalleryItem, error)
}
