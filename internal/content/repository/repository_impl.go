package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/content/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertPost(ctx context.Context, db *gorm.DB, post *domain.BlogPost) error {
	return db.WithContext(ctx).Create(post).Error
}

func (r *repo) UpdatePost(ctx context.Context, db *gorm.DB, post *domain.BlogPost) error {
	return db.WithContext(ctx).Save(post).Error
}

func (r *repo) DeletePost(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) FindPostByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&post).Error
	if err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, nil
	}
	return &post, nil
}

func (r *repo) FindPostBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&post).Error
	if err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, nil
	}
	return &post, nil
}

func (r *repo) ListPosts(ctx context.Context, db *gorm.DB, publishedOnly bool) ([]*domain.BlogPost, error) {
	var posts []*domain.BlogPost
	stmt := db.WithContext(ctx).Model(&domain.BlogPost{})
	if publishedOnly {
		stmt = stmt.Where("published = ?", true)
	}
	err := stmt.Order("created_at desc, id desc").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) InsertGalleryItem(ctx context.Context, db *gorm.DB, item *domain.GalleryItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) DeleteGalleryItem(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.GalleryItem{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) ListGallery(ctx context.Context, db *gorm.DB) ([]*domain.GalleryItem, error) {
	var items []*domain.GalleryItem
	err := db.WithContext(ctx).
		Order("sort_order asc, created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
