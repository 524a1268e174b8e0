package db

import "time"

type User struct {
	ID          uint       `gorm:"primaryKey"`
	Username    string     `gorm:"size:64;uniqueIndex;not null"`
	DisplayName string     `gorm:"size:64;not null"`
	AuthToken   string     `gorm:"size:64;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
	Questions   []Question `gorm:"foreignKey:OwnerID"`
}
