package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID             uint           `gorm:"primaryKey"`
	RoomCode       string         `gorm:"size:12;uniqueIndex;not null"`
	Mode           string         `gorm:"size:32;not null"`
	Phase          string         `gorm:"size:32;not null"`
	CurrentRound   int            `gorm:"not null;default:0"`
	MaxRounds      int            `gorm:"not null;default:3"`
	CurrentWord    string         `gorm:"size:64;not null;default:''"`
	ExclusionWords datatypes.JSON `gorm:"type:jsonb"`
	RoundStartedAt time.Time
	HostPlayerID   uint      `gorm:"index;not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Memberships    []PlayerGame
	Images         []Image
	Chains         []PromptChain
	Votes          []Vote
	Events         []Event
}
