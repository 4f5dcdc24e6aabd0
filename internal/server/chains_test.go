package server

import "testing"

func TestAssignedChainIndexRotationIsComplete(t *testing.T) {
	for numPlayers := 2; numPlayers <= 8; numPlayers++ {
		for playerIdx := 0; playerIdx < numPlayers; playerIdx++ {
			seen := map[int]struct{}{}
			for round := 1; round <= numPlayers; round++ {
				idx := assignedChainIndex(playerIdx, round, numPlayers)
				if idx < 0 || idx >= numPlayers {
					t.Fatalf("players=%d player=%d round=%d: index %d out of range", numPlayers, playerIdx, round, idx)
				}
				seen[idx] = struct{}{}
			}
			if len(seen) != numPlayers {
				t.Fatalf("players=%d player=%d: visited %d chains, want %d", numPlayers, playerIdx, len(seen), numPlayers)
			}
		}
	}
}

func TestAssignedChainIndexRoundOneIsIdentity(t *testing.T) {
	for numPlayers := 2; numPlayers <= 8; numPlayers++ {
		for playerIdx := 0; playerIdx < numPlayers; playerIdx++ {
			if idx := assignedChainIndex(playerIdx, 1, numPlayers); idx != playerIdx {
				t.Fatalf("players=%d player=%d: round 1 index %d, want own chain", numPlayers, playerIdx, idx)
			}
		}
	}
}

func TestAssignedChainIndexRejectsBadInput(t *testing.T) {
	if idx := assignedChainIndex(0, 1, 0); idx != -1 {
		t.Fatalf("expected -1 for zero players, got %d", idx)
	}
	if idx := assignedChainIndex(-1, 1, 3); idx != -1 {
		t.Fatalf("expected -1 for negative player, got %d", idx)
	}
	if idx := assignedChainIndex(0, 0, 3); idx != -1 {
		t.Fatalf("expected -1 for round 0, got %d", idx)
	}
}

func TestChainTargetFallsBackToWord(t *testing.T) {
	chain := &ChainState{
		OriginalWord: "lantern",
		Steps: []ChainStep{
			{Round: 1, URL: placeholderImageURL},
		},
	}
	if target := chainTarget(chain, 2); target != "lantern" {
		t.Fatalf("expected fallback to original word, got %s", target)
	}

	chain.Steps[0].URL = "https://images.test/1"
	if target := chainTarget(chain, 2); target != "https://images.test/1" {
		t.Fatalf("expected previous round image, got %s", target)
	}
	if target := chainTarget(chain, 1); target != "lantern" {
		t.Fatalf("expected original word in round 1, got %s", target)
	}
}
