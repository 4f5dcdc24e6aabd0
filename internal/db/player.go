package db

import "time"

// Player is a global identity, reused across games. Game membership
// lives in PlayerGame.
type Player struct {
	ID        uint      `gorm:"primaryKey"`
	PublicID  string    `gorm:"size:36;uniqueIndex;not null"`
	Name      string    `gorm:"size:64;not null"`
	Email     string    `gorm:"size:128;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
