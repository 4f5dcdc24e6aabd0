package db

import "time"

type PlayerGame struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_memberships_game_player"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_memberships_game_player"`
	IsHost    bool      `gorm:"not null;default:false"`
	Score     int       `gorm:"not null;default:0"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Game      Game
	Player    Player
}
