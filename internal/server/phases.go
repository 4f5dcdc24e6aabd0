package server

import (
	"time"

	"prompt-party/internal/wordbank"
)

func setPhase(game *Game, phase string, at time.Time) {
	game.Phase = phase
	if at.IsZero() {
		at = timeNowUTC()
	}
	game.RoundStartedAt = at
}

// roundCeiling is the last playable round: maxRounds for Prompt
// Anything, one full rotation for Promptophone.
func roundCeiling(game *Game) int {
	if game.Mode == modePromptophone {
		return len(game.Players)
	}
	return game.MaxRounds
}

func startGame(game *Game, playerID string, at time.Time) error {
	if _, ok := findPlayer(game, playerID); !ok {
		return permissionError("Player not in game")
	}
	if playerID != game.HostID {
		return permissionError("Only the host can start the game")
	}
	if game.Phase != phaseLobby {
		return conflictError("game already started")
	}
	if len(game.Players) < 2 {
		return conflictError("not enough players")
	}
	switch game.Mode {
	case modePromptAnything:
		entry := wordbank.Pick()
		game.CurrentWord = entry.Word
		game.ExclusionWords = entry.Exclusions
	case modePromptophone:
		entries := wordbank.PickN(len(game.Players))
		game.Chains = make([]ChainState, 0, len(game.Players))
		for i := range game.Players {
			game.Chains = append(game.Chains, ChainState{
				OwnerID:      game.Players[i].ID,
				OriginalWord: entries[i].Word,
				Exclusions:   entries[i].Exclusions,
			})
		}
		game.MaxRounds = len(game.Players)
		game.CurrentWord = game.Chains[0].OriginalWord
		game.ExclusionWords = game.Chains[0].Exclusions
	default:
		return conflictError("unknown game mode")
	}
	game.CurrentRound = 1
	setPhase(game, phasePrompt, at)
	return nil
}

// allSubmitted reports whether every player has a submission for the
// current round.
func allSubmitted(game *Game) bool {
	if len(game.Players) == 0 {
		return false
	}
	for i := range game.Players {
		if !hasSubmitted(game, game.Players[i].ID) {
			return false
		}
	}
	return true
}

func hasSubmitted(game *Game, playerID string) bool {
	switch game.Mode {
	case modePromptAnything:
		for i := range game.Images {
			if game.Images[i].PlayerID == playerID && game.Images[i].Round == game.CurrentRound {
				return true
			}
		}
	case modePromptophone:
		chain, err := assignedChain(game, playerID)
		if err != nil {
			return false
		}
		return chainStepForRound(chain, game.CurrentRound) != nil
	}
	return false
}

// allGenerated reports whether every current-round submission has a
// real image URL.
func allGenerated(game *Game) bool {
	switch game.Mode {
	case modePromptAnything:
		for i := range game.Images {
			image := &game.Images[i]
			if image.Round == game.CurrentRound && (image.URL == "" || image.URL == placeholderImageURL) {
				return false
			}
		}
	case modePromptophone:
		for c := range game.Chains {
			step := chainStepForRound(&game.Chains[c], game.CurrentRound)
			if step != nil && (step.URL == "" || step.URL == placeholderImageURL) {
				return false
			}
		}
	}
	return true
}

func allVoted(game *Game) bool {
	if len(game.Players) == 0 {
		return false
	}
	for i := range game.Players {
		if !hasVoted(game, game.Players[i].ID) {
			return false
		}
	}
	return true
}

func hasVoted(game *Game, playerID string) bool {
	for i := range game.Votes {
		if game.Votes[i].VoterID == playerID {
			return true
		}
	}
	return false
}

// endPromptPhase performs the prompt-phase exit for the current mode.
// Callers run it inside Store.UpdateGame; the phase check makes two
// near-simultaneous triggers converge to a single transition.
func endPromptPhase(game *Game, at time.Time) error {
	if game.Phase != phasePrompt {
		return conflictError("round not in progress")
	}
	switch game.Mode {
	case modePromptAnything:
		setPhase(game, phaseVoting, at)
	case modePromptophone:
		if game.CurrentRound >= roundCeiling(game) {
			setPhase(game, phaseResults, at)
			return nil
		}
		game.CurrentRound++
		if len(game.Chains) > 0 {
			next := (game.CurrentRound - 1) % len(game.Chains)
			game.CurrentWord = chainTarget(&game.Chains[next], game.CurrentRound)
			game.ExclusionWords = nil
		}
		setPhase(game, phasePrompt, at)
	default:
		return conflictError("unknown game mode")
	}
	return nil
}

// endVotingPhase tallies votes into scores and moves to results.
func endVotingPhase(game *Game, at time.Time) (map[string]int, error) {
	if game.Phase != phaseVoting {
		return nil, conflictError("voting not in progress")
	}
	increments := applyScores(game)
	setPhase(game, phaseResults, at)
	return increments, nil
}

func startNextRound(game *Game, playerID string, at time.Time) error {
	if _, ok := findPlayer(game, playerID); !ok {
		return permissionError("Player not in game")
	}
	if playerID != game.HostID {
		return permissionError("Only the host can start the next round")
	}
	if game.Mode != modePromptAnything {
		return conflictError("next round not available in this mode")
	}
	if game.Phase != phaseResults {
		return conflictError("round still in progress")
	}
	if game.CurrentRound >= game.MaxRounds {
		return conflictError("no rounds remaining")
	}
	entry := wordbank.Pick()
	game.CurrentWord = entry.Word
	game.ExclusionWords = entry.Exclusions
	game.CurrentRound++
	game.Votes = nil
	setPhase(game, phasePrompt, at)
	return nil
}

func endGame(game *Game, at time.Time) error {
	if game.Phase == phaseEnded {
		return conflictError("game already ended")
	}
	setPhase(game, phaseEnded, at)
	return nil
}
