package server

func snapshot(game *Game) map[string]any {
	players := make([]map[string]any, 0, len(game.Players))
	for i := range game.Players {
		player := &game.Players[i]
		players = append(players, map[string]any{
			"id":      player.ID,
			"name":    player.Name,
			"score":   player.Score,
			"is_host": player.IsHost,
		})
	}

	images := make([]map[string]any, 0, len(game.Images))
	for i := range game.Images {
		image := &game.Images[i]
		images = append(images, map[string]any{
			"id":        image.ID,
			"player_id": image.PlayerID,
			"round":     image.Round,
			"prompt":    image.Prompt,
			"url":       image.URL,
		})
	}

	payload := map[string]any{
		"room_code":        game.RoomCode,
		"mode":             game.Mode,
		"phase":            game.Phase,
		"current_round":    game.CurrentRound,
		"max_rounds":       game.MaxRounds,
		"current_word":     game.CurrentWord,
		"exclusion_words":  exclusionWordsPayload(game),
		"round_started_at": game.RoundStartedAt,
		"host_id":          game.HostID,
		"players":          players,
		"images":           images,
		"votes":            len(game.Votes),
	}
	if game.Mode == modePromptophone {
		payload["chains"] = chainsPayload(game)
		if game.Phase == phasePrompt {
			payload["assignments"] = assignmentsPayload(game)
		}
	}
	return payload
}

func exclusionWordsPayload(game *Game) []string {
	if game.ExclusionWords == nil {
		return []string{}
	}
	return game.ExclusionWords
}

func chainsPayload(game *Game) []map[string]any {
	chains := make([]map[string]any, 0, len(game.Chains))
	for c := range game.Chains {
		chain := &game.Chains[c]
		steps := make([]map[string]any, 0, len(chain.Steps))
		for i := range chain.Steps {
			step := &chain.Steps[i]
			steps = append(steps, map[string]any{
				"player_id": step.PlayerID,
				"round":     step.Round,
				"prompt":    step.Prompt,
				"url":       step.URL,
			})
		}
		chains = append(chains, map[string]any{
			"owner_id":      chain.OwnerID,
			"original_word": chain.OriginalWord,
			"steps":         steps,
		})
	}
	return chains
}

// assignmentsPayload tells each player which chain they continue this
// round and what target they must describe.
func assignmentsPayload(game *Game) []map[string]any {
	assignments := make([]map[string]any, 0, len(game.Players))
	for i := range game.Players {
		chainIdx := assignedChainIndex(i, game.CurrentRound, len(game.Players))
		if chainIdx < 0 || chainIdx >= len(game.Chains) {
			continue
		}
		chain := &game.Chains[chainIdx]
		assignments = append(assignments, map[string]any{
			"player_id":   game.Players[i].ID,
			"chain_index": chainIdx,
			"target":      chainTarget(chain, game.CurrentRound),
			"submitted":   chainStepForRound(chain, game.CurrentRound) != nil,
		})
	}
	return assignments
}
