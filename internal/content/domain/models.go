package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type BlogPost struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"not null" json:"title"`
	Slug          string       `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt       string       `json:"excerpt"`
	Body          string       `json:"body"`
	CoverImageURL string       `json:"cover_image_url"`
	Published     bool         `gorm:"not null;default:false" json:"published"`
	PublishedAt   *time.Time   `json:"published_at,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BlogPost) TableName() string { return "blog_posts" }

type GalleryItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `json:"title"`
	Caption   string       `json:"caption"`
	ImageURL  string       `gorm:"not null" json:"image_url"`
	SortOrder int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (GalleryItem) TableName() string { return "gallery_items" }
