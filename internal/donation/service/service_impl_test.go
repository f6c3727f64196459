package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kolahope/kolahope/internal/config"
	"github.com/kolahope/kolahope/internal/donation/domain"
	donationrepo "github.com/kolahope/kolahope/internal/donation/repository"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	programrepo "github.com/kolahope/kolahope/internal/program/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeGateway struct {
	initCalls   int
	verifyCalls int

	session   *domain.GatewaySession
	initErr   error
	status    map[string]string
	verifyErr error
}

func (g *fakeGateway) InitializeTransaction(ctx context.Context, req domain.GatewayInitRequest) (*domain.GatewaySession, error) {
	g.initCalls++
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.session, nil
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*domain.GatewayTransaction, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	status, ok := g.status[reference]
	if !ok {
		status = "abandoned"
	}
	return &domain.GatewayTransaction{Reference: reference, Status: status}, nil
}

func (g *fakeGateway) ListTransactions(ctx context.Context, since time.Time, perPage int) ([]domain.GatewayTransaction, error) {
	return nil, nil
}

type recordingNotifier struct {
	received []domain.Donation
}

func (n *recordingNotifier) DonationReceived(ctx context.Context, donation domain.Donation) {
	n.received = append(n.received, donation)
}

func newTestService(t *testing.T, gateway domain.Gateway, notifier domain.Notifier) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Donation{}, &programdomain.Program{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	site := config.NewStaticSiteConfigHolder(config.SiteConfig{
		MinDonation: 100,
		Currency:    "NGN",
	})

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Site:        site,
		Repo:        donationrepo.Provide(),
		ProgramRepo: programrepo.Provide(),
		Gateway:     gateway,
		Notifier:    notifier,
	})
	return svc.(*Service), db
}

func seedProgram(t *testing.T, db *gorm.DB, raised int64) programdomain.Program {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	program := programdomain.Program{
		ID:       node.Generate(),
		Title:    "Clean Water",
		Slug:     "clean-water",
		Goal:     1_000_000,
		Raised:   raised,
		IsActive: true,
	}
	require.NoError(t, db.Create(&program).Error)
	return program
}

func TestInitializeValidatesBeforeGatewayCall(t *testing.T) {
	gateway := &fakeGateway{}
	svc, _ := newTestService(t, gateway, nil)
	ctx := context.Background()

	_, err := svc.Initialize(ctx, domain.InitializeRequest{Amount: 0, Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrAmountRequired)

	_, err = svc.Initialize(ctx, domain.InitializeRequest{Amount: 50, Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrAmountBelowFloor)

	_, err = svc.Initialize(ctx, domain.InitializeRequest{Amount: 5000, Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Initialize(ctx, domain.InitializeRequest{Amount: 5000, Email: "a@b.com", ProgramID: strPtr("garbage")})
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)

	assert.Equal(t, 0, gateway.initCalls, "validation failures must not reach the gateway")
}

func TestInitializeGatewayFailureWritesNoLedgerRow(t *testing.T) {
	gateway := &fakeGateway{initErr: errors.New("declined")}
	svc, db := newTestService(t, gateway, nil)

	_, err := svc.Initialize(context.Background(), domain.InitializeRequest{Amount: 5000, Email: "a@b.com"})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInitializeCreatesPendingRow(t *testing.T) {
	gateway := &fakeGateway{session: &domain.GatewaySession{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		Reference:        "ref-1",
	}}
	svc, db := newTestService(t, gateway, nil)

	resp, err := svc.Initialize(context.Background(), domain.InitializeRequest{
		Amount:      5000,
		Email:       "a@b.com",
		Name:        strPtr("Ada"),
		IsAnonymous: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", resp.AuthorizationURL)
	assert.Equal(t, "ref-1", resp.Reference)

	var donation domain.Donation
	require.NoError(t, db.Where("payment_reference = ?", "ref-1").First(&donation).Error)
	assert.Equal(t, domain.StatusPending, donation.PaymentStatus)
	assert.Equal(t, int64(5000), donation.Amount)
	assert.Equal(t, "a@b.com", donation.DonorEmail)
}

func TestVerifyRequiresReference(t *testing.T) {
	svc, _ := newTestService(t, &fakeGateway{}, nil)

	_, err := svc.Verify(context.Background(), domain.VerifyRequest{Reference: "  "})
	assert.ErrorIs(t, err, domain.ErrMissingReference)
}

func TestVerifyRoundTripCreditsProgramOnce(t *testing.T) {
	gateway := &fakeGateway{
		session: &domain.GatewaySession{AuthorizationURL: "https://checkout.paystack.com/abc", Reference: "ref-rt"},
		status:  map[string]string{"ref-rt": "success"},
	}
	notifier := &recordingNotifier{}
	svc, db := newTestService(t, gateway, notifier)
	ctx := context.Background()

	program := seedProgram(t, db, 1000)
	programID := program.ID.String()

	_, err := svc.Initialize(ctx, domain.InitializeRequest{
		Amount:    5000,
		Email:     "a@b.com",
		ProgramID: &programID,
	})
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, domain.VerifyRequest{Reference: "ref-rt"})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	var donation domain.Donation
	require.NoError(t, db.Where("payment_reference = ?", "ref-rt").First(&donation).Error)
	assert.Equal(t, domain.StatusCompleted, donation.PaymentStatus)

	var got programdomain.Program
	require.NoError(t, db.First(&got, "id = ?", program.ID).Error)
	assert.Equal(t, int64(6000), got.Raised, "raised should increase by exactly the donated amount")

	require.Len(t, notifier.received, 1)
	assert.Equal(t, "ref-rt", notifier.received[0].PaymentReference)
}

func TestVerifyIsIdempotent(t *testing.T) {
	gateway := &fakeGateway{
		session: &domain.GatewaySession{AuthorizationURL: "https://x", Reference: "ref-idem"},
		status:  map[string]string{"ref-idem": "success"},
	}
	notifier := &recordingNotifier{}
	svc, db := newTestService(t, gateway, notifier)
	ctx := context.Background()

	program := seedProgram(t, db, 0)
	programID := program.ID.String()

	_, err := svc.Initialize(ctx, domain.InitializeRequest{Amount: 2500, Email: "a@b.com", ProgramID: &programID})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		resp, err := svc.Verify(ctx, domain.VerifyRequest{Reference: "ref-idem"})
		require.NoError(t, err)
		assert.Equal(t, "success", resp.Status)
	}

	var got programdomain.Program
	require.NoError(t, db.First(&got, "id = ?", program.ID).Error)
	assert.Equal(t, int64(2500), got.Raised, "repeated verification must credit the aggregate exactly once")

	assert.Len(t, notifier.received, 1, "notification fires only on the pending-to-completed edge")
}

func TestVerifyFailedVerdictNeverCreditsAggregate(t *testing.T) {
	gateway := &fakeGateway{
		session: &domain.GatewaySession{AuthorizationURL: "https://x", Reference: "ref-fail"},
		status:  map[string]string{"ref-fail": "failed"},
	}
	svc, db := newTestService(t, gateway, nil)
	ctx := context.Background()

	program := seedProgram(t, db, 700)
	programID := program.ID.String()

	_, err := svc.Initialize(ctx, domain.InitializeRequest{Amount: 5000, Email: "a@b.com", ProgramID: &programID})
	require.NoError(t, err)

	resp, err := svc.Verify(ctx, domain.VerifyRequest{Reference: "ref-fail"})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)

	var donation domain.Donation
	require.NoError(t, db.Where("payment_reference = ?", "ref-fail").First(&donation).Error)
	assert.Equal(t, domain.StatusFailed, donation.PaymentStatus)

	var got programdomain.Program
	require.NoError(t, db.First(&got, "id = ?", program.ID).Error)
	assert.Equal(t, int64(700), got.Raised)
}

func TestVerifyUnknownReferenceIsNoOp(t *testing.T) {
	gateway := &fakeGateway{status: map[string]string{"ghost": "success"}}
	notifier := &recordingNotifier{}
	svc, db := newTestService(t, gateway, notifier)

	resp, err := svc.Verify(context.Background(), domain.VerifyRequest{Reference: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status, "the gateway verdict is still reported")

	var count int64
	require.NoError(t, db.Model(&domain.Donation{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, notifier.received)
}

func TestVerifyGatewayErrorPropagates(t *testing.T) {
	gateway := &fakeGateway{verifyErr: domain.ErrGatewayTimeout}
	svc, _ := newTestService(t, gateway, nil)

	_, err := svc.Verify(context.Background(), domain.VerifyRequest{Reference: "ref-x"})
	assert.ErrorIs(t, err, domain.ErrGatewayTimeout)
}

func TestRecentPublicSuppressesAnonymousDonors(t *testing.T) {
	svc, db := newTestService(t, &fakeGateway{}, nil)
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	named := domain.Donation{
		ID:               node.Generate(),
		Amount:           1000,
		DonorEmail:       "ada@example.com",
		DonorName:        strPtr("Ada"),
		PaymentReference: "pub-1",
		PaymentStatus:    domain.StatusCompleted,
		CreatedAt:        time.Now().UTC().Add(-time.Minute),
	}
	anonymous := domain.Donation{
		ID:               node.Generate(),
		Amount:           2000,
		DonorEmail:       "grace@example.com",
		DonorName:        strPtr("Grace"),
		IsAnonymous:      true,
		PaymentReference: "pub-2",
		PaymentStatus:    domain.StatusCompleted,
		CreatedAt:        time.Now().UTC(),
	}
	pending := domain.Donation{
		ID:               node.Generate(),
		Amount:           3000,
		DonorEmail:       "p@example.com",
		PaymentReference: "pub-3",
		PaymentStatus:    domain.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	require.NoError(t, db.Create(&named).Error)
	require.NoError(t, db.Create(&anonymous).Error)
	require.NoError(t, db.Create(&pending).Error)

	views, err := svc.RecentPublic(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 2, "pending donations stay off the public feed")

	byAmount := map[int64]string{}
	for _, view := range views {
		byAmount[view.Amount] = view.DonorName
	}
	assert.Equal(t, "Ada", byAmount[1000])
	assert.Equal(t, "Anonymous", byAmount[2000])
}

func strPtr(s string) *string { return &s }
