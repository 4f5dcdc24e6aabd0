package server

import "time"

// roundStatus is what polling clients use to decide whether to call
// end-round. The server-side timer enforces the same deadline on its
// own, so a silent client cannot stall a round.
func (s *Server) roundStatus(game *Game, playerID string, now time.Time) map[string]any {
	remaining := remainingSeconds(game, s.cfg.PromptDurationSeconds, now)
	all := allSubmitted(game)
	shouldEnd := game.Phase == phasePrompt && (remaining <= 0 || (all && allGenerated(game)))
	return map[string]any{
		"allPlayersSubmitted": all,
		"hasSubmitted":        playerID != "" && hasSubmitted(game, playerID),
		"timeRemaining":       remaining,
		"shouldEndRound":      shouldEnd,
	}
}

func (s *Server) votingStatus(game *Game, playerID string, now time.Time) map[string]any {
	remaining := remainingSeconds(game, s.cfg.VoteDurationSeconds, now)
	all := allVoted(game)
	shouldEnd := game.Phase == phaseVoting && (remaining <= 0 || all)
	return map[string]any{
		"allPlayersVoted": all,
		"hasVoted":        playerID != "" && hasVoted(game, playerID),
		"timeRemaining":   remaining,
		"shouldEndRound":  shouldEnd,
	}
}

func remainingSeconds(game *Game, durationSeconds int, now time.Time) int {
	if game.RoundStartedAt.IsZero() {
		return durationSeconds
	}
	elapsed := int(now.Sub(game.RoundStartedAt) / time.Second)
	remaining := durationSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
