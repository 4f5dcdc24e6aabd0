package server

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxNameLength   = 20
	maxPromptLength = 280
)

func validateName(name string) (string, error) {
	trimmed := strings.Join(strings.Fields(strings.TrimSpace(name)), " ")
	if trimmed == "" {
		return "", errors.New("name is required")
	}
	if len(trimmed) > maxNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxNameLength)
	}
	return trimmed, nil
}

func validatePrompt(prompt string) (string, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return "", validationError("prompt is required")
	}
	if len(trimmed) > maxPromptLength {
		return "", validationError(fmt.Sprintf("prompt must be %d characters or fewer", maxPromptLength))
	}
	return trimmed, nil
}

// checkSubmission rejects a prompt before any record is created: the
// player must be a member, the game must be in the prompt phase, and
// the player must not have submitted for this round yet.
func checkSubmission(game *Game, playerID string) error {
	if _, ok := findPlayer(game, playerID); !ok {
		return permissionError("Player not in game")
	}
	if game.Phase != phasePrompt {
		return conflictError("prompts not accepted in this phase")
	}
	switch game.Mode {
	case modePromptAnything:
		for i := range game.Images {
			if game.Images[i].PlayerID == playerID && game.Images[i].Round == game.CurrentRound {
				return conflictError("prompt already submitted")
			}
		}
	case modePromptophone:
		chain, err := assignedChain(game, playerID)
		if err != nil {
			return err
		}
		if chainStepForRound(chain, game.CurrentRound) != nil {
			return conflictError("prompt already submitted")
		}
	default:
		return conflictError("unknown game mode")
	}
	return nil
}

// checkExclusions enforces the target word and its exclusion list with
// a case-insensitive substring match.
func checkExclusions(prompt, word string, exclusions []string) error {
	lower := strings.ToLower(prompt)
	if word != "" && strings.Contains(lower, strings.ToLower(word)) {
		return validationError("prompt must not contain the target word")
	}
	for _, banned := range exclusions {
		if banned != "" && strings.Contains(lower, strings.ToLower(banned)) {
			return validationError("prompt must not contain an excluded word")
		}
	}
	return nil
}

// exclusionTarget is the word/exclusion pair a player's prompt is
// checked against this round. Promptophone rounds past the first have
// an image as target, so there is nothing to exclude.
func exclusionTarget(game *Game, playerID string) (string, []string) {
	switch game.Mode {
	case modePromptAnything:
		return game.CurrentWord, game.ExclusionWords
	case modePromptophone:
		if game.CurrentRound != 1 {
			return "", nil
		}
		chain, err := assignedChain(game, playerID)
		if err != nil {
			return "", nil
		}
		return chain.OriginalWord, chain.Exclusions
	}
	return "", nil
}
