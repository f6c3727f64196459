package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	donationdomain "github.com/kolahope/kolahope/internal/donation/domain"
	"github.com/kolahope/kolahope/internal/program/domain"
	"github.com/kolahope/kolahope/internal/program/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Program{}, &donationdomain.Donation{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc.(*Service), db, node
}

func TestCreateProgram(t *testing.T) {
	svc, _, _ := newTestService(t)

	program, err := svc.Create(context.Background(), domain.CreateProgramRequest{
		Title: "  Clean Water For All  ",
		Goal:  500000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Clean Water For All", program.Title)
	assert.Equal(t, "clean-water-for-all", program.Slug)
	assert.True(t, program.IsActive)
	assert.Zero(t, program.Raised)

	_, err = svc.Create(context.Background(), domain.CreateProgramRequest{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.Create(context.Background(), domain.CreateProgramRequest{Title: "x", Goal: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidGoal)
}

func TestUpdateProgram(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	program, err := svc.Create(ctx, domain.CreateProgramRequest{Title: "School Kits", Goal: 1000})
	require.NoError(t, err)

	newTitle := "School Supply Kits"
	inactive := false
	updated, err := svc.Update(ctx, program.ID.String(), domain.UpdateProgramRequest{
		Title:    &newTitle,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "School Supply Kits", updated.Title)
	assert.Equal(t, "school-supply-kits", updated.Slug)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, "not-a-snowflake", domain.UpdateProgramRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Update(ctx, "99999999999", domain.UpdateProgramRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBySlugAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	active, err := svc.Create(ctx, domain.CreateProgramRequest{Title: "Active One"})
	require.NoError(t, err)

	other, err := svc.Create(ctx, domain.CreateProgramRequest{Title: "Retired One"})
	require.NoError(t, err)
	hidden := false
	_, err = svc.Update(ctx, other.ID.String(), domain.UpdateProgramRequest{IsActive: &hidden})
	require.NoError(t, err)

	got, err := svc.GetBySlug(ctx, "active-one")
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = svc.GetBySlug(ctx, "no-such-program")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	onlyActive, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestResyncRaisedCorrectsDrift(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	program, err := svc.Create(ctx, domain.CreateProgramRequest{Title: "Food Bank", Goal: 100000})
	require.NoError(t, err)

	programID := program.ID
	completed := []int64{1000, 2500}
	for _, amount := range completed {
		require.NoError(t, db.Create(&donationdomain.Donation{
			ID:               node.Generate(),
			Amount:           amount,
			DonorEmail:       "a@b.com",
			ProgramID:        &programID,
			PaymentReference: node.Generate().String(),
			PaymentStatus:    donationdomain.StatusCompleted,
			CreatedAt:        time.Now().UTC(),
		}).Error)
	}
	// Pending rows never count toward the total.
	require.NoError(t, db.Create(&donationdomain.Donation{
		ID:               node.Generate(),
		Amount:           9999,
		DonorEmail:       "a@b.com",
		ProgramID:        &programID,
		PaymentReference: node.Generate().String(),
		PaymentStatus:    donationdomain.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}).Error)

	// Simulate drift: cached total does not match the ledger.
	require.NoError(t, db.Model(&domain.Program{}).Where("id = ?", programID).Update("raised", 999).Error)

	corrected, err := svc.ResyncRaised(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, corrected)

	var got domain.Program
	require.NoError(t, db.First(&got, "id = ?", programID).Error)
	assert.Equal(t, int64(3500), got.Raised)

	// A second sweep finds nothing to fix.
	corrected, err = svc.ResyncRaised(ctx)
	require.NoError(t, err)
	assert.Zero(t, corrected)
}
