package db

import "time"

type Answer struct {
	ID          uint      `gorm:"primaryKey"`
	RoundID     uint      `gorm:"index;not null;uniqueIndex:idx_answers_round_user"`
	UserID      uint      `gorm:"index;not null;uniqueIndex:idx_answers_round_user"`
	ChoiceIndex int       `gorm:"not null"`
	Correct     bool      `gorm:"not null;default:false"`
	Points      int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
