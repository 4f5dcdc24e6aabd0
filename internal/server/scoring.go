package server

// applyScores adds each image's vote count to its submitter's score and
// returns the per-player increments. Zero-vote images still contribute
// a zero increment, so the returned map covers every submitter touched
// by the pass. The sum of the increments equals the game's vote count.
func applyScores(game *Game) map[string]int {
	increments := make(map[string]int)
	for i := range game.Images {
		increments[game.Images[i].PlayerID] += 0
	}
	for v := range game.Votes {
		vote := &game.Votes[v]
		for i := range game.Images {
			if game.Images[i].ID == vote.ImageID {
				increments[game.Images[i].PlayerID]++
				break
			}
		}
	}
	for playerID, delta := range increments {
		if player, ok := findPlayer(game, playerID); ok {
			player.Score += delta
		}
	}
	return increments
}
