package db

import "time"

// PromptChain is created once per player at Promptophone game start.
// PlayerID is the chain's originator, not its current contributor.
type PromptChain struct {
	ID           uint      `gorm:"primaryKey"`
	GameID       uint      `gorm:"index;not null;uniqueIndex:idx_chains_game_player"`
	PlayerID     uint      `gorm:"index;not null;uniqueIndex:idx_chains_game_player"`
	OriginalWord string    `gorm:"size:64;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	Steps        []ChainStep
}

type ChainStep struct {
	ID            uint      `gorm:"primaryKey"`
	PromptChainID uint      `gorm:"index;not null;uniqueIndex:idx_steps_chain_round"`
	Round         int       `gorm:"not null;uniqueIndex:idx_steps_chain_round"`
	PlayerID      uint      `gorm:"index;not null"`
	Prompt        string    `gorm:"size:280;not null"`
	URL           string    `gorm:"size:1024;not null;default:''"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}
