package server

import "time"

const (
	phaseLobby   = "LOBBY"
	phasePrompt  = "PROMPT"
	phaseVoting  = "VOTING"
	phaseResults = "RESULTS"
	phaseEnded   = "ENDED"
)

const (
	modePromptAnything = "PROMPT_ANYTHING"
	modePromptophone   = "PROMPTOPHONE"
)

// placeholderImageURL marks a submission whose image has not been
// generated yet.
const placeholderImageURL = "placeholder"

type Game struct {
	RoomCode       string
	DBID           uint
	Mode           string
	Phase          string
	CurrentRound   int
	MaxRounds      int
	CurrentWord    string
	ExclusionWords []string
	RoundStartedAt time.Time
	HostID         string
	Players        []Player
	Images         []ImageEntry
	Chains         []ChainState
	Votes          []VoteEntry
}

// Player carries both the global identity and the per-game membership
// state (host flag, score). The persistence mirror splits the two.
type Player struct {
	ID     string
	DBID   uint
	Name   string
	Email  string
	IsHost bool
	Score  int
}

type ImageEntry struct {
	ID        int
	DBID      uint
	PlayerID  string
	Round     int
	Prompt    string
	URL       string
	CreatedAt time.Time
}

// ChainState is one Promptophone chain. OwnerID is the originator, not
// the current contributor.
type ChainState struct {
	DBID         uint
	OwnerID      string
	OriginalWord string
	Exclusions   []string
	Steps        []ChainStep
}

type ChainStep struct {
	DBID     uint
	PlayerID string
	Round    int
	Prompt   string
	URL      string
}

type VoteEntry struct {
	DBID    uint
	VoterID string
	ImageID int
}
