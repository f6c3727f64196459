package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kolahope/kolahope/internal/content/domain"
	"github.com/kolahope/kolahope/internal/content/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.BlogPost{}, &domain.GalleryItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc.(*Service), db
}

func TestCreatePostSlugAndPublishedAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.CreatePost(ctx, domain.CreatePostRequest{Title: "Our First Outreach"})
	require.NoError(t, err)
	assert.Equal(t, "our-first-outreach", draft.Slug)
	assert.False(t, draft.Published)
	assert.Nil(t, draft.PublishedAt)

	published, err := svc.CreatePost(ctx, domain.CreatePostRequest{
		Title:     "Borehole Commissioned",
		Published: true,
	})
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)

	_, err = svc.CreatePost(ctx, domain.CreatePostRequest{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestUpdatePostSetsPublishedAtOnFirstPublish(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, domain.CreatePostRequest{Title: "Draft Story"})
	require.NoError(t, err)

	publish := true
	updated, err := svc.UpdatePost(ctx, post.ID.String(), domain.UpdatePostRequest{Published: &publish})
	require.NoError(t, err)
	assert.True(t, updated.Published)
	require.NotNil(t, updated.PublishedAt)
	firstPublishedAt := *updated.PublishedAt

	// Re-publishing keeps the original timestamp.
	updated, err = svc.UpdatePost(ctx, post.ID.String(), domain.UpdatePostRequest{Published: &publish})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, firstPublishedAt, *updated.PublishedAt)
}

func TestGetPostBySlugOnlyServesPublished(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, domain.CreatePostRequest{Title: "Hidden Draft"})
	require.NoError(t, err)

	_, err = svc.GetPostBySlug(ctx, "hidden-draft")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreatePost(ctx, domain.CreatePostRequest{Title: "Public Story", Published: true})
	require.NoError(t, err)

	post, err := svc.GetPostBySlug(ctx, "public-story")
	require.NoError(t, err)
	assert.Equal(t, "Public Story", post.Title)
}

func TestDeletePost(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, domain.CreatePostRequest{Title: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID.String()))
	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID.String()), domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePost(ctx, "garbage"), domain.ErrInvalidID)
}

func TestGallerySortedBySortOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddGalleryItem(ctx, domain.CreateGalleryItemRequest{ImageURL: "https://img/2.jpg", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.AddGalleryItem(ctx, domain.CreateGalleryItemRequest{ImageURL: "https://img/1.jpg", SortOrder: 1})
	require.NoError(t, err)

	_, err = svc.AddGalleryItem(ctx, domain.CreateGalleryItemRequest{ImageURL: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	items, err := svc.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://img/1.jpg", items[0].ImageURL)
	assert.Equal(t, "https://img/2.jpg", items[1].ImageURL)
}
