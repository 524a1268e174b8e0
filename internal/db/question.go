package db

import (
	"time"

	"gorm.io/datatypes"
)

type Question struct {
	ID           uint           `gorm:"primaryKey"`
	OwnerID      uint           `gorm:"index;not null;uniqueIndex:idx_questions_owner_text"`
	Category     string         `gorm:"size:32;not null"`
	Difficulty   string         `gorm:"size:16;not null"`
	Text         string         `gorm:"size:280;not null;uniqueIndex:idx_questions_owner_text"`
	Choices      datatypes.JSON `gorm:"type:jsonb;not null"`
	CorrectIndex int            `gorm:"not null"`
	Points       int            `gorm:"not null;default:10"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}
