package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kolahope/kolahope/internal/leads/domain"
	"github.com/kolahope/kolahope/internal/leads/repository"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	programrepo "github.com/kolahope/kolahope/internal/program/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type captureNotifier struct {
	contacts   []domain.ContactMessage
	volunteers []domain.VolunteerApplication
	partners   []domain.PartnerInquiry
}

func (n *captureNotifier) ContactReceived(ctx context.Context, msg domain.ContactMessage) {
	n.contacts = append(n.contacts, msg)
}

func (n *captureNotifier) VolunteerReceived(ctx context.Context, app domain.VolunteerApplication) {
	n.volunteers = append(n.volunteers, app)
}

func (n *captureNotifier) PartnerReceived(ctx context.Context, inquiry domain.PartnerInquiry) {
	n.partners = append(n.partners, inquiry)
}

func newTestService(t *testing.T, notifier domain.Notifier) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.ContactMessage{},
		&domain.VolunteerApplication{},
		&domain.PartnerInquiry{},
		&domain.ProgramInquiry{},
		&programdomain.Program{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		ProgramRepo: programrepo.Provide(),
		Notifier:    notifier,
	})
	return svc.(*Service), db
}

func TestCreateContact(t *testing.T) {
	notifier := &captureNotifier{}
	svc, db := newTestService(t, notifier)
	ctx := context.Background()

	_, err := svc.CreateContact(ctx, domain.CreateContactRequest{Email: "a@b.com", Subject: "s", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.CreateContact(ctx, domain.CreateContactRequest{Name: "Ada", Email: "nope", Subject: "s", Message: "m"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	msg, err := svc.CreateContact(ctx, domain.CreateContactRequest{
		Name:    "  Ada  ",
		Email:   "ada@example.com",
		Subject: "Partnership",
		Message: "Hello there",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", msg.Name)

	var count int64
	require.NoError(t, db.Model(&domain.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.Len(t, notifier.contacts, 1)
	assert.Equal(t, msg.ID, notifier.contacts[0].ID)
}

func TestCreateVolunteer(t *testing.T) {
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, notifier)
	ctx := context.Background()

	_, err := svc.CreateVolunteer(ctx, domain.CreateVolunteerRequest{FullName: "T", Email: "t@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	app, err := svc.CreateVolunteer(ctx, domain.CreateVolunteerRequest{
		FullName: "Tunde A",
		Email:    "t@example.com",
		Phone:    "0800",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tunde A", app.FullName)
	assert.Len(t, notifier.volunteers, 1)
}

func TestCreatePartner(t *testing.T) {
	notifier := &captureNotifier{}
	svc, _ := newTestService(t, notifier)

	inquiry, err := svc.CreatePartner(context.Background(), domain.CreatePartnerRequest{
		OrganizationName: "Hope Alliance",
		ContactPerson:    "J. Doe",
		Email:            "j@example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hope Alliance", inquiry.OrganizationName)
	assert.Len(t, notifier.partners, 1)
}

func TestCreateProgramInquiryValidatesProgram(t *testing.T) {
	svc, db := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateProgramInquiry(ctx, domain.CreateProgramInquiryRequest{
		ProgramID: "not-a-snowflake",
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	missing := node.Generate()
	_, err = svc.CreateProgramInquiry(ctx, domain.CreateProgramInquiryRequest{
		ProgramID: missing.String(),
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	program := programdomain.Program{ID: node.Generate(), Title: "Fund", Slug: "fund", IsActive: true}
	require.NoError(t, db.Create(&program).Error)

	inquiry, err := svc.CreateProgramInquiry(ctx, domain.CreateProgramInquiryRequest{
		ProgramID: program.ID.String(),
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, program.ID, inquiry.ProgramID)
}

func TestListLimits(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateContact(ctx, domain.CreateContactRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Subject: "s",
			Message: "m",
		})
		require.NoError(t, err)
	}

	items, err := svc.ListContacts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
