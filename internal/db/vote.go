package db

import "time"

// Vote is unique per (game, voter). Replacing a vote deletes the prior
// row before creating the new one, and all rows for a game are cleared
// when the next round opens.
type Vote struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_votes_game_voter"`
	VoterID   uint      `gorm:"index;not null;uniqueIndex:idx_votes_game_voter"`
	ImageID   uint      `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
