package server

import "testing"

func TestCreateGameUniqueRoomCodes(t *testing.T) {
	store := NewStore()
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		game, host := store.CreateGame("Ada", "", modePromptAnything, 3)
		if _, dup := seen[game.RoomCode]; dup {
			t.Fatalf("duplicate room code %s", game.RoomCode)
		}
		seen[game.RoomCode] = struct{}{}
		if !host.IsHost || game.HostID != host.ID {
			t.Fatalf("expected creator to be host")
		}
		if game.Phase != phaseLobby {
			t.Fatalf("expected new game in lobby, got %s", game.Phase)
		}
	}
}

func TestAddPlayerReclaimsExistingName(t *testing.T) {
	store := NewStore()
	game, _ := store.CreateGame("Ada", "", modePromptAnything, 3)

	_, ben, err := store.AddPlayer(game.RoomCode, "Ben", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, again, err := store.AddPlayer(game.RoomCode, "Ben", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != ben.ID {
		t.Fatalf("expected same player on rejoin, got %s and %s", ben.ID, again.ID)
	}
}

func TestAddPlayerFrozenAfterStart(t *testing.T) {
	store := NewStore()
	game, host := store.CreateGame("Ada", "", modePromptAnything, 3)
	if _, _, err := store.AddPlayer(game.RoomCode, "Ben", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := store.UpdateGame(game.RoomCode, func(game *Game) error {
		return startGame(game, host.ID, timeNowUTC())
	})
	if err != nil {
		t.Fatalf("start game: %v", err)
	}

	_, _, err = store.AddPlayer(game.RoomCode, "Cleo", "")
	if err == nil || err.Error() != "game already started" {
		t.Fatalf("expected frozen player list, got %v", err)
	}

	// Members can still reclaim their identity.
	if _, _, err := store.AddPlayer(game.RoomCode, "Ben", ""); err != nil {
		t.Fatalf("expected rejoin to succeed, got %v", err)
	}
}

func TestSetPlayerDBIDSurvivesSliceGrowth(t *testing.T) {
	store := NewStore()
	game, _ := store.CreateGame("Ada", "", modePromptAnything, 3)

	_, ben, err := store.AddPlayer(game.RoomCode, "Ben", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	benID := ben.ID

	// Later joins reallocate the player slice and strand old pointers.
	for _, name := range []string{"Cleo", "Dora", "Eve", "Finn"} {
		if _, _, err := store.AddPlayer(game.RoomCode, name, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	store.setPlayerDBID(game.RoomCode, benID, 42)

	got, _ := store.GetGame(game.RoomCode)
	player, ok := findPlayer(got, benID)
	if !ok || player.DBID != 42 {
		t.Fatalf("expected DBID 42 on current player record, got %#v", player)
	}

	// A recorded ID is never overwritten.
	store.setPlayerDBID(game.RoomCode, benID, 99)
	player, _ = findPlayer(got, benID)
	if player.DBID != 42 {
		t.Fatalf("expected DBID to stay 42, got %d", player.DBID)
	}
}

func TestUpdateGameUnknownRoom(t *testing.T) {
	store := NewStore()
	_, err := store.UpdateGame("NOSUCH", func(*Game) error { return nil })
	if err == nil || errorKind(err) != kindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
