// Package seed inserts the baseline records the application expects to
// exist, such as the general fund program that unallocated donations
// fall back to.
package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	programdomain "github.com/kolahope/kolahope/internal/program/domain"
	"gorm.io/gorm"
)

const GeneralFundSlug = "general-fund"

// EnsureGeneralFund creates the general fund program if no program with
// its slug exists yet. Safe to run on every startup.
func EnsureGeneralFund(conn *gorm.DB) error {
	var count int64
	err := conn.Model(&programdomain.Program{}).
		Where("slug = ?", GeneralFundSlug).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	node, err := snowflake.NewNode(0)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return conn.Create(&programdomain.Program{
		ID:          node.Generate(),
		Title:       "General Fund",
		Slug:        GeneralFundSlug,
		Description: "Donations not tied to a specific program support our work wherever the need is greatest.",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error
}
