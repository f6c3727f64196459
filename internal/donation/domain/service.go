package domain

import (
	"context"
	"errors"
	"time"

	"github.com/kolahope/kolahope/pkg/db/pagination"
)

type InitializeRequest struct {
	Amount      int64   `json:"amount" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ProgramID   *string `json:"program_id,omitempty"`
	Message     *string `json:"message,omitempty"`
	IsAnonymous bool    `json:"is_anonymous,omitempty"`
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type VerifyRequest struct {
	Reference string `json:"reference" binding:"required"`
}

type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ListDonationRequest struct {
	PageToken string
	PageSize  int
	Status    string
	ProgramID string
}

type ListDonationResponse struct {
	pagination.PageInfo
	Donations []Donation `json:"donations"`
}

type ListDonationFilter struct {
	Status    string
	ProgramID string
}

type Service interface {
	// Initialize creates a gateway checkout session and a pending ledger
	// row, returning the redirect URL. The ledger insert is best-effort:
	// a bookkeeping failure must not block the donor from paying.
	Initialize(ctx context.Context, req InitializeRequest) (InitializeResponse, error)

	// Verify resolves a pending donation against the gateway. It is
	// idempotent: the aggregate credit happens only on the observed
	// pending-to-completed transition.
	Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error)

	// List is the admin back-office view of the ledger.
	List(ctx context.Context, req ListDonationRequest) (ListDonationResponse, error)

	// RecentPublic returns completed donations for the public feed with
	// anonymous donor identities suppressed.
	RecentPublic(ctx context.Context, limit int) ([]PublicView, error)
}

// Gateway is the hosted payment processor consumed by the service.
type Gateway interface {
	InitializeTransaction(ctx context.Context, req GatewayInitRequest) (*GatewaySession, error)
	VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error)
	ListTransactions(ctx context.Context, since time.Time, perPage int) ([]GatewayTransaction, error)
}

// GatewayInitRequest carries the checkout parameters. AmountMinor is the
// minor currency unit the gateway expects (major amount times 100).
type GatewayInitRequest struct {
	AmountMinor int64
	Email       string
	Currency    string
	Metadata    map[string]any
}

type GatewaySession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type GatewayTransaction struct {
	Reference     string
	Status        string
	AmountMinor   int64
	Currency      string
	PaidAt        *time.Time
	CustomerEmail string
	Metadata      map[string]any
}

// Success reports whether the gateway settled the transaction. Anything
// ambiguous counts as non-success.
func (t GatewayTransaction) Success() bool {
	return t.Status == "success"
}

var (
	ErrAmountRequired   = errors.New("amount_required")
	ErrAmountBelowFloor = errors.New("amount_below_minimum")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrMissingReference = errors.New("reference_required")
	ErrGateway          = errors.New("gateway_error")
	ErrGatewayTimeout   = errors.New("gateway_timeout")
	ErrNotConfigured    = errors.New("gateway_not_configured")
	ErrPersistence      = errors.New("persistence_error")
	ErrInvalidProgram   = errors.New("invalid_program")
)
