package server

// assignedChainIndex maps a player to the chain they continue this
// round. Round 1 puts every player on their own chain; each later round
// shifts the assignment by one, so over numPlayers rounds every player
// touches every chain exactly once.
func assignedChainIndex(playerIdx, currentRound, numPlayers int) int {
	if numPlayers <= 0 || playerIdx < 0 || currentRound < 1 {
		return -1
	}
	return (playerIdx + currentRound - 1) % numPlayers
}

func assignedChain(game *Game, playerID string) (*ChainState, error) {
	idx := playerIndex(game, playerID)
	if idx < 0 {
		return nil, permissionError("Player not in game")
	}
	chainIdx := assignedChainIndex(idx, game.CurrentRound, len(game.Players))
	if chainIdx < 0 || chainIdx >= len(game.Chains) {
		return nil, conflictError("chain not found")
	}
	return &game.Chains[chainIdx], nil
}

// chainTarget is what the assigned player must describe this round: the
// originating word in round 1, afterwards the image generated for the
// previous round's step. A step whose image never generated falls back
// to the originating word.
func chainTarget(chain *ChainState, round int) string {
	if round <= 1 {
		return chain.OriginalWord
	}
	for i := range chain.Steps {
		step := &chain.Steps[i]
		if step.Round == round-1 && step.URL != "" && step.URL != placeholderImageURL {
			return step.URL
		}
	}
	return chain.OriginalWord
}

func chainStepForRound(chain *ChainState, round int) *ChainStep {
	for i := range chain.Steps {
		if chain.Steps[i].Round == round {
			return &chain.Steps[i]
		}
	}
	return nil
}
