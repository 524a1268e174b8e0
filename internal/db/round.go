package db

import "time"

type Round struct {
	ID         uint      `gorm:"primaryKey"`
	MatchID    uint      `gorm:"index;not null;uniqueIndex:idx_rounds_match_number"`
	Number     int       `gorm:"not null;uniqueIndex:idx_rounds_match_number"`
	QuestionID uint      `gorm:"index;not null"`
	AskerID    uint      `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	Answers    []Answer
}
