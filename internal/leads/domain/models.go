package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ContactMessage struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null" json:"email"`
	Phone     *string      `json:"phone,omitempty"`
	Subject   string       `gorm:"not null" json:"subject"`
	Message   string       `gorm:"not null" json:"message"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

type VolunteerApplication struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	FullName     string       `gorm:"not null" json:"full_name"`
	Email        string       `gorm:"not null" json:"email"`
	Phone        string       `gorm:"not null" json:"phone"`
	Location     *string      `json:"location,omitempty"`
	Occupation   *string      `json:"occupation,omitempty"`
	Availability *string      `json:"availability,omitempty"`
	Skills       *string      `json:"skills,omitempty"`
	Motivation   *string      `json:"motivation,omitempty"`
	HowHeard     *string      `json:"how_heard,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (VolunteerApplication) TableName() string { return "volunteer_applications" }

type PartnerInquiry struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	OrganizationName string       `gorm:"not null" json:"organization_name"`
	ContactPerson    string       `gorm:"not null" json:"contact_person"`
	Email            string       `gorm:"not null" json:"email"`
	Phone            *string      `json:"phone,omitempty"`
	OrganizationType *string      `json:"organization_type,omitempty"`
	Website          *string      `json:"website,omitempty"`
	PartnershipType  *string      `json:"partnership_type,omitempty"`
	Message          *string      `json:"message,omitempty"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PartnerInquiry) TableName() string { return "partner_inquiries" }

type ProgramInquiry struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ProgramID snowflake.ID `gorm:"not null;index" json:"program_id"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `gorm:"not null" json:"email"`
	Phone     *string      `json:"phone,omitempty"`
	Message   *string      `json:"message,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ProgramInquiry) TableName() string { return "program_inquiries" }
