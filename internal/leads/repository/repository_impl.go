package repository

import (
	"context"

	"github.com/kolahope/kolahope/internal/leads/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertContact(ctx context.Context, db *gorm.DB, msg *domain.ContactMessage) error {
	return db.WithContext(ctx).Create(msg).Error
}

func (r *repo) InsertVolunteer(ctx context.Context, db *gorm.DB, app *domain.VolunteerApplication) error {
	return db.WithContext(ctx).Create(app).Error
}

func (r *repo) InsertPartner(ctx context.Context, db *gorm.DB, inquiry *domain.PartnerInquiry) error {
	return db.WithContext(ctx).Create(inquiry).Error
}

func (r *repo) InsertProgramInquiry(ctx context.Context, db *gorm.DB, inquiry *domain.ProgramInquiry) error {
	return db.WithContext(ctx).Create(inquiry).Error
}

func (r *repo) ListContacts(ctx context.Context, db *gorm.DB, limit int) ([]*domain.ContactMessage, error) {
	var out []*domain.ContactMessage
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repo) ListVolunteers(ctx context.Context, db *gorm.DB, limit int) ([]*domain.VolunteerApplication, error) {
	var out []*domain.VolunteerApplication
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repo) ListPartners(ctx context.Context, db *gorm.DB, limit int) ([]*domain.PartnerInquiry, error) {
	var out []*domain.PartnerInquiry
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repo) ListProgramInquiries(ctx context.Context, db *gorm.DB, limit int) ([]*domain.ProgramInquiry, error) {
	var out []*domain.ProgramInquiry
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
