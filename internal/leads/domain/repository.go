package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertContact(ctx context.Context, db *gorm.DB, msg *ContactMessage) error
	InsertVolunteer(ctx context.Context, db *gorm.DB, app *VolunteerApplication) error
	InsertPartner(ctx context.Context, db *gorm.DB, inquiry *PartnerInquiry) error
	InsertProgramInquiry(ctx context.Context, db *gorm.DB, inquiry *ProgramInquiry) error

	ListContacts(ctx context.Context, db *gorm.DB, limit int) ([]*ContactMessage, error)
	ListVolunteers(ctx context.Context, db *gorm.DB, limit int) ([]*VolunteerApplication, error)
	ListPartners(ctx context.Context, db *gorm.DB, limit int) ([]*PartnerInquiry, error)
	ListProgramInquiries(ctx context.Context, db *gorm.DB, limit int) ([]*ProgramInquiry, error)
}
