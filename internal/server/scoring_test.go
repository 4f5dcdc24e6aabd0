package server

import "testing"

func TestApplyScoresConservesVotes(t *testing.T) {
	game := &Game{
		Mode:  modePromptAnything,
		Phase: phaseVoting,
		Players: []Player{
			{ID: "ada"},
			{ID: "ben"},
			{ID: "cleo"},
		},
		Images: []ImageEntry{
			{ID: 1, PlayerID: "ada", Round: 1},
			{ID: 2, PlayerID: "ben", Round: 1},
			{ID: 3, PlayerID: "cleo", Round: 1},
		},
		Votes: []VoteEntry{
			{VoterID: "ada", ImageID: 2},
			{VoterID: "ben", ImageID: 2},
			{VoterID: "cleo", ImageID: 1},
		},
	}

	increments := applyScores(game)

	total := 0
	for _, delta := range increments {
		total += delta
	}
	if total != len(game.Votes) {
		t.Fatalf("expected increments to sum to %d votes, got %d", len(game.Votes), total)
	}
	if increments["ben"] != 2 || increments["ada"] != 1 || increments["cleo"] != 0 {
		t.Fatalf("unexpected increments: %v", increments)
	}

	// Zero-vote submitters still appear in the pass.
	if _, ok := increments["cleo"]; !ok {
		t.Fatalf("expected an entry for cleo")
	}

	for i := range game.Players {
		player := &game.Players[i]
		if player.Score != increments[player.ID] {
			t.Fatalf("player %s score %d, want %d", player.ID, player.Score, increments[player.ID])
		}
	}
}

func TestApplyScoresIgnoresDanglingVotes(t *testing.T) {
	game := &Game{
		Players: []Player{{ID: "ada"}},
		Images:  []ImageEntry{{ID: 1, PlayerID: "ada", Round: 1}},
		Votes:   []VoteEntry{{VoterID: "ada", ImageID: 99}},
	}

	increments := applyScores(game)
	if increments["ada"] != 0 {
		t.Fatalf("expected no score for a vote on a missing image, got %d", increments["ada"])
	}
}
