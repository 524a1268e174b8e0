package db

import "time"

type Match struct {
	ID           uint      `gorm:"primaryKey"`
	Code         string    `gorm:"size:12;uniqueIndex;not null"`
	Status       string    `gorm:"size:16;not null"`
	RoundLimit   int       `gorm:"not null;default:5"`
	CreatorID    uint      `gorm:"index;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Participants []Participant
	Rounds       []Round
	Events       []Event
}

type Participant struct {
	ID        uint      `gorm:"primaryKey"`
	MatchID   uint      `gorm:"index;not null;uniqueIndex:idx_participants_match_user"`
	UserID    uint      `gorm:"index;not null;uniqueIndex:idx_participants_match_user"`
	IsCreator bool      `gorm:"not null;default:false"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
