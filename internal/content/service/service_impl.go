package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/kolahope/kolahope/internal/content/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("content.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreatePost(ctx context.Context, req domain.CreatePostRequest) (domain.BlogPost, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.BlogPost{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	post := domain.BlogPost{
		ID:            s.genID.Generate(),
		Title:         title,
		Slug:          slug.Make(title),
		Excerpt:       strings.TrimSpace(req.Excerpt),
		Body:          req.Body,
		CoverImageURL: strings.TrimSpace(req.CoverImageURL),
		Published:     req.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Published {
		post.PublishedAt = &now
	}

	if err := s.repo.InsertPost(ctx, s.db, &post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, req domain.UpdatePostRequest) (domain.BlogPost, error) {
	postID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.BlogPost{}, domain.ErrInvalidID
	}

	post, err := s.repo.FindPostByID(ctx, s.db, postID)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if post == nil {
		return domain.BlogPost{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.BlogPost{}, domain.ErrInvalidTitle
		}
		post.Title = title
		post.Slug = slug.Make(title)
	}
	if req.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*req.Excerpt)
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.CoverImageURL != nil {
		post.CoverImageURL = strings.TrimSpace(*req.CoverImageURL)
	}
	now := time.Now().UTC()
	if req.Published != nil {
		if *req.Published && !post.Published {
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}
	post.UpdatedAt = now

	if err := s.repo.UpdatePost(ctx, s.db, post); err != nil {
		return domain.BlogPost{}, err
	}
	return *post, nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	postID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	deleted, err := s.repo.DeletePost(ctx, s.db, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) GetPostBySlug(ctx context.Context, rawSlug string) (domain.BlogPost, error) {
	rawSlug = strings.TrimSpace(rawSlug)
	if rawSlug == "" {
		return domain.BlogPost{}, domain.ErrInvalidID
	}

	post, err := s.repo.FindPostBySlug(ctx, s.db, rawSlug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if post == nil || !post.Published {
		return domain.BlogPost{}, domain.ErrNotFound
	}
	return *post, nil
}

func (s *Service) ListPosts(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	items, err := s.repo.ListPosts(ctx, s.db, publishedOnly)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.BlogPost, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		posts = append(posts, *item)
	}
	return posts, nil
}

func (s *Service) AddGalleryItem(ctx context.Context, req domain.CreateGalleryItemRequest) (domain.GalleryItem, error) {
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return domain.GalleryItem{}, domain.ErrInvalidImage
	}

	item := domain.GalleryItem{
		ID:        s.genID.Generate(),
		Title:     strings.TrimSpace(req.Title),
		Caption:   strings.TrimSpace(req.Caption),
		ImageURL:  imageURL,
		SortOrder: req.SortOrder,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.InsertGalleryItem(ctx, s.db, &item); err != nil {
		return domain.GalleryItem{}, err
	}
	return item, nil
}

func (s *Service) RemoveGalleryItem(ctx context.Context, id string) error {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}

	deleted, err := s.repo.DeleteGalleryItem(ctx, s.db, itemID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) ListGallery(ctx context.Context) ([]domain.GalleryItem, error) {
	items, err := s.repo.ListGallery(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GalleryItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}
