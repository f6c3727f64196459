package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kolahope/kolahope/internal/leads/domain"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultListLimit = 100

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	ProgramRepo programdomain.Repository
	Notifier    domain.Notifier `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	programRepo programdomain.Repository
	notifier    domain.Notifier
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("leads.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		programRepo: p.ProgramRepo,
		notifier:    p.Notifier,
	}
}

func (s *Service) CreateContact(ctx context.Context, req domain.CreateContactRequest) (domain.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ContactMessage{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.ContactMessage{}, domain.ErrInvalidEmail
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return domain.ContactMessage{}, domain.ErrInvalidSubject
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ContactMessage{}, domain.ErrInvalidMessage
	}

	msg := domain.ContactMessage{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     trimmed(req.Phone),
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.InsertContact(ctx, s.db, &msg); err != nil {
		return domain.ContactMessage{}, err
	}

	if s.notifier != nil {
		s.notifier.ContactReceived(ctx, msg)
	}
	return msg, nil
}

func (s *Service) CreateVolunteer(ctx context.Context, req domain.CreateVolunteerRequest) (domain.VolunteerApplication, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.VolunteerApplication{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.VolunteerApplication{}, domain.ErrInvalidEmail
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.VolunteerApplication{}, domain.ErrInvalidPhone
	}

	app := domain.VolunteerApplication{
		ID:           s.genID.Generate(),
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		Location:     trimmed(req.Location),
		Occupation:   trimmed(req.Occupation),
		Availability: trimmed(req.Availability),
		Skills:       trimmed(req.Skills),
		Motivation:   trimmed(req.Motivation),
		HowHeard:     trimmed(req.HowHeard),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.InsertVolunteer(ctx, s.db, &app); err != nil {
		return domain.VolunteerApplication{}, err
	}

	if s.notifier != nil {
		s.notifier.VolunteerReceived(ctx, app)
	}
	return app, nil
}

func (s *Service) CreatePartner(ctx context.Context, req domain.CreatePartnerRequest) (domain.PartnerInquiry, error) {
	orgName := strings.TrimSpace(req.OrganizationName)
	if orgName == "" {
		return domain.PartnerInquiry{}, domain.ErrInvalidName
	}
	contact := strings.TrimSpace(req.ContactPerson)
	if contact == "" {
		return domain.PartnerInquiry{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.PartnerInquiry{}, domain.ErrInvalidEmail
	}

	inquiry := domain.PartnerInquiry{
		ID:               s.genID.Generate(),
		OrganizationName: orgName,
		ContactPerson:    contact,
		Email:            email,
		Phone:            trimmed(req.Phone),
		OrganizationType: trimmed(req.OrganizationType),
		Website:          trimmed(req.Website),
		PartnershipType:  trimmed(req.PartnershipType),
		Message:          trimmed(req.Message),
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.InsertPartner(ctx, s.db, &inquiry); err != nil {
		return domain.PartnerInquiry{}, err
	}

	if s.notifier != nil {
		s.notifier.PartnerReceived(ctx, inquiry)
	}
	return inquiry, nil
}

func (s *Service) CreateProgramInquiry(ctx context.Context, req domain.CreateProgramInquiryRequest) (domain.ProgramInquiry, error) {
	programID, err := snowflake.ParseString(strings.TrimSpace(req.ProgramID))
	if err != nil {
		return domain.ProgramInquiry{}, domain.ErrInvalidProgram
	}
	program, err := s.programRepo.FindByID(ctx, s.db, programID)
	if err != nil {
		return domain.ProgramInquiry{}, err
	}
	if program == nil {
		return domain.ProgramInquiry{}, domain.ErrInvalidProgram
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ProgramInquiry{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if !validEmail(email) {
		return domain.ProgramInquiry{}, domain.ErrInvalidEmail
	}

	inquiry := domain.ProgramInquiry{
		ID:        s.genID.Generate(),
		ProgramID: programID,
		Name:      name,
		Email:     email,
		Phone:     trimmed(req.Phone),
		Message:   trimmed(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.InsertProgramInquiry(ctx, s.db, &inquiry); err != nil {
		return domain.ProgramInquiry{}, err
	}
	return inquiry, nil
}

func (s *Service) ListContacts(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	items, err := s.repo.ListContacts(ctx, s.db, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) ListVolunteers(ctx context.Context, limit int) ([]domain.VolunteerApplication, error) {
	items, err := s.repo.ListVolunteers(ctx, s.db, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) ListPartners(ctx context.Context, limit int) ([]domain.PartnerInquiry, error) {
	items, err := s.repo.ListPartners(ctx, s.db, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func (s *Service) ListProgramInquiries(ctx context.Context, limit int) ([]domain.ProgramInquiry, error) {
	items, err := s.repo.ListProgramInquiries(ctx, s.db, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return deref(items), nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return defaultListLimit
	}
	return limit
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
