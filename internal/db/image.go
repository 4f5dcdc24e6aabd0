package db

import "time"

type Image struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null;uniqueIndex:idx_images_game_player_round"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_images_game_player_round"`
	Round     int       `gorm:"not null;uniqueIndex:idx_images_game_player_round"`
	Prompt    string    `gorm:"size:280;not null"`
	URL       string    `gorm:"size:1024;not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
