package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Program is a fundraising program. Raised caches the sum of completed
// donations allocated to it; it is only ever advanced with an atomic
// in-database increment and can be rebuilt from the donation ledger.
type Program struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Slug        string       `gorm:"uniqueIndex;not null" json:"slug"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Goal        int64        `gorm:"not null;default:0" json:"goal"`
	Raised      int64        `gorm:"not null;default:0" json:"raised"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Program) TableName() string { return "programs" }
