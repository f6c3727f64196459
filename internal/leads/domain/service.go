package domain

import (
	"context"
	"errors"
)

type CreateContactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject" binding:"required"`
	Message string  `json:"message" binding:"required"`
}

type CreateVolunteerRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Location     *string `json:"location,omitempty"`
	Occupation   *string `json:"occupation,omitempty"`
	Availability *string `json:"availability,omitempty"`
	Skills       *string `json:"skills,omitempty"`
	Motivation   *string `json:"motivation,omitempty"`
	HowHeard     *string `json:"how_heard,omitempty"`
}

type CreatePartnerRequest struct {
	OrganizationName string  `json:"organization_name" binding:"required"`
	ContactPerson    string  `json:"contact_person" binding:"required"`
	Email            string  `json:"email" binding:"required"`
	Phone            *string `json:"phone,omitempty"`
	OrganizationType *string `json:"organization_type,omitempty"`
	Website          *string `json:"website,omitempty"`
	PartnershipType  *string `json:"partnership_type,omitempty"`
	Message          *string `json:"message,omitempty"`
}

type CreateProgramInquiryRequest struct {
	ProgramID string  `json:"program_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
	Message   *string `json:"message,omitempty"`
}

type Service interface {
	CreateContact(ctx context.Context, req CreateContactRequest) (ContactMessage, error)
	CreateVolunteer(ctx context.Context, req CreateVolunteerRequest) (VolunteerApplication, error)
	CreatePartner(ctx context.Context, req CreatePartnerRequest) (PartnerInquiry, error)
	CreateProgramInquiry(ctx context.Context, req CreateProgramInquiryRequest) (ProgramInquiry, error)

	ListContacts(ctx context.Context, limit int) ([]ContactMessage, error)
	ListVolunteers(ctx context.Context, limit int) ([]VolunteerApplication, error)
	ListPartners(ctx context.Context, limit int) ([]PartnerInquiry, error)
	ListProgramInquiries(ctx context.Context, limit int) ([]ProgramInquiry, error)
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrInvalidSubject = errors.New("invalid_subject")
	ErrInvalidMessage = errors.New("invalid_message")
	ErrInvalidPhone   = errors.New("invalid_phone")
	ErrInvalidProgram = errors.New("invalid_program")
)
