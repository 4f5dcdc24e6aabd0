package server

import (
	"strings"
	"testing"

	"prompt-party/internal/config"
)

func TestPromptophoneFullRotation(t *testing.T) {
	srv := New(nil, config.Default())
	srv.images = &fakeImages{}
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomCode, adaID := createGame(t, ts, modePromptophone)
	benID := joinPlayer(t, ts, roomCode, "Ben")
	cleoID := joinPlayer(t, ts, roomCode, "Cleo")
	playerIDs := []string{adaID, benID, cleoID}

	body := startGameRequest(t, ts, roomCode, adaID)
	if body["max_rounds"].(float64) != 3 {
		t.Fatalf("expected one round per player, got %v", body["max_rounds"])
	}
	chains := body["chains"].([]any)
	if len(chains) != 3 {
		t.Fatalf("expected 3 chains, got %d", len(chains))
	}
	words := map[string]struct{}{}
	for _, raw := range chains {
		chain := raw.(map[string]any)
		words[chain["original_word"].(string)] = struct{}{}
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 distinct starting words, got %d", len(words))
	}

	// Round 1 assigns every player their own chain.
	for i, playerID := range playerIDs {
		if idx := assignmentFor(t, body, playerID); idx != i {
			t.Fatalf("round 1: expected player %d on chain %d, got %d", i, i, idx)
		}
	}

	prompts := []string{safePrompt1, safePrompt2, safePrompt3}
	for i, playerID := range playerIDs {
		submitPrompt(t, ts, roomCode, playerID, prompts[i])
	}
	for _, playerID := range playerIDs {
		generateImage(t, ts, roomCode, playerID)
	}

	snap := fetchSnapshot(t, ts, roomCode)
	if snap["phase"] != phasePrompt || snap["current_round"].(float64) != 2 {
		t.Fatalf("expected round 2 prompt phase, got round %v phase %v", snap["current_round"], snap["phase"])
	}

	// Round 2 shifts every player one chain over, and the target is the
	// image generated for that chain last round.
	for i, playerID := range playerIDs {
		want := (i + 1) % 3
		if idx := assignmentFor(t, snap, playerID); idx != want {
			t.Fatalf("round 2: expected player %d on chain %d, got %d", i, want, idx)
		}
		target := assignmentTarget(t, snap, playerID)
		if !strings.HasPrefix(target, "https://images.test/") {
			t.Fatalf("round 2: expected image target, got %s", target)
		}
	}

	for round := 2; round <= 3; round++ {
		for _, playerID := range playerIDs {
			submitPrompt(t, ts, roomCode, playerID, "what the previous picture shows")
			generateImage(t, ts, roomCode, playerID)
		}
	}

	snap = fetchSnapshot(t, ts, roomCode)
	if snap["phase"] != phaseResults {
		t.Fatalf("expected phase %s after full rotation, got %v", phaseResults, snap["phase"])
	}
	for _, raw := range snap["chains"].([]any) {
		chain := raw.(map[string]any)
		steps := chain["steps"].([]any)
		if len(steps) != 3 {
			t.Fatalf("expected 3 steps per chain, got %d", len(steps))
		}
		contributors := map[string]struct{}{}
		for _, rawStep := range steps {
			step := rawStep.(map[string]any)
			contributors[step["player_id"].(string)] = struct{}{}
		}
		if len(contributors) != 3 {
			t.Fatalf("expected every player to touch the chain once, got %d contributors", len(contributors))
		}
	}
}

func TestPromptophoneRoundOneExclusions(t *testing.T) {
	srv := New(nil, config.Default())
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	roomCode, adaID := createGame(t, ts, modePromptophone)
	joinPlayer(t, ts, roomCode, "Ben")
	body := startGameRequest(t, ts, roomCode, adaID)

	// Ada's round-1 chain is her own; describing its word verbatim is
	// rejected.
	chain := body["chains"].([]any)[0].(map[string]any)
	word := chain["original_word"].(string)
	resp := doRequest(t, ts, "POST", "/games/"+roomCode+"/prompts", map[string]string{
		"player_id": adaID,
		"prompt":    "please draw a " + word + " for me",
	})
	if resp.StatusCode != 400 {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func assignmentFor(t *testing.T, snap map[string]any, playerID string) int {
	t.Helper()
	for _, raw := range snap["assignments"].([]any) {
		assignment := raw.(map[string]any)
		if assignment["player_id"] == playerID {
			return int(assignment["chain_index"].(float64))
		}
	}
	t.Fatalf("no assignment for player %s", playerID)
	return -1
}

func assignmentTarget(t *testing.T, snap map[string]any, playerID string) string {
	t.Helper()
	for _, raw := range snap["assignments"].([]any) {
		assignment := raw.(map[string]any)
		if assignment["player_id"] == playerID {
			return assignment["target"].(string)
		}
	}
	t.Fatalf("no assignment for player %s", playerID)
	return ""
}
