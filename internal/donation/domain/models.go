package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Donation is one attempted or completed contribution. A row is created
// in StatusPending by checkout initialization and moved exactly once to
// StatusCompleted or StatusFailed by verification; both are terminal.
type Donation struct {
	ID               snowflake.ID      `gorm:"primaryKey" json:"id"`
	Amount           int64             `gorm:"not null" json:"amount"`
	DonorEmail       string            `gorm:"not null" json:"donor_email"`
	DonorName        *string           `json:"donor_name,omitempty"`
	DonorPhone       *string           `json:"donor_phone,omitempty"`
	IsAnonymous      bool              `gorm:"not null;default:false" json:"is_anonymous"`
	ProgramID        *snowflake.ID     `gorm:"index" json:"program_id,omitempty"`
	PaymentReference string            `gorm:"uniqueIndex;not null" json:"payment_reference"`
	PaymentStatus    string            `gorm:"index;not null;default:'pending'" json:"payment_status"`
	Message          *string           `json:"message,omitempty"`
	Metadata         datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	Reconciled       bool              `gorm:"not null;default:false" json:"reconciled"`
	CreatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Donation) TableName() string { return "donations" }

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// PublicView is the outward-facing shape of a donation. Donor identity
// is suppressed for anonymous donations but retained on the row for
// correspondence.
type PublicView struct {
	ID        snowflake.ID  `json:"id"`
	Amount    int64         `json:"amount"`
	DonorName string        `json:"donor_name"`
	ProgramID *snowflake.ID `json:"program_id,omitempty"`
	Message   *string       `json:"message,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Public maps a donation to its outward-facing view.
func (d Donation) Public() PublicView {
	view := PublicView{
		ID:        d.ID,
		Amount:    d.Amount,
		DonorName: "Anonymous",
		ProgramID: d.ProgramID,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
	if !d.IsAnonymous && d.DonorName != nil && *d.DonorName != "" {
		view.DonorName = *d.DonorName
	}
	return view
}
