package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the authoritative in-memory game state, keyed by room code.
// The gorm mirror in persistence.go follows it and may be nil.
type Store struct {
	mu    sync.Mutex
	games map[string]*Game
}

func NewStore() *Store {
	return &Store{
		games: make(map[string]*Game),
	}
}

func (s *Store) CreateGame(hostName, hostEmail, mode string, maxRounds int) (*Game, *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	host := Player{
		ID:     uuid.NewString(),
		Name:   hostName,
		Email:  hostEmail,
		IsHost: true,
	}
	game := &Game{
		RoomCode:  newRoomCode(),
		Mode:      mode,
		Phase:     phaseLobby,
		MaxRounds: maxRounds,
		HostID:    host.ID,
		Players:   []Player{host},
	}
	for {
		if _, taken := s.games[game.RoomCode]; !taken {
			break
		}
		game.RoomCode = newRoomCode()
	}
	s.games[game.RoomCode] = game
	return game, &game.Players[0]
}

func (s *Store) GetGame(roomCode string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[roomCode]
	return game, ok
}

// UpdateGame runs update under the store mutex. Phase transitions live
// inside these closures so concurrent submitters observe and write game
// state atomically.
func (s *Store) UpdateGame(roomCode string, update func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[roomCode]
	if !ok {
		return nil, errGameNotFound
	}
	if err := update(game); err != nil {
		return nil, err
	}
	return game, nil
}

// AddPlayer joins a player to a lobby. Joining with an existing name
// returns the existing player, so a reconnecting client keeps its
// identity. The player list freezes once the game starts.
func (s *Store) AddPlayer(roomCode, name, email string) (*Game, *Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[roomCode]
	if !ok {
		return nil, nil, errGameNotFound
	}
	for i := range game.Players {
		if game.Players[i].Name == name {
			return game, &game.Players[i], nil
		}
	}
	if game.Phase != phaseLobby {
		return nil, nil, conflictError("game already started")
	}

	player := Player{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	game.Players = append(game.Players, player)
	return game, &game.Players[len(game.Players)-1], nil
}

// setPlayerDBID records a player's database row ID under the store
// lock. Pointers handed out by AddPlayer go stale when a concurrent
// join grows the player slice, so the mirror never writes through them.
func (s *Store) setPlayerDBID(roomCode, playerID string, dbID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[roomCode]
	if !ok {
		return
	}
	if player, found := findPlayer(game, playerID); found && player.DBID == 0 {
		player.DBID = dbID
	}
}

func findPlayer(game *Game, playerID string) (*Player, bool) {
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			return &game.Players[i], true
		}
	}
	return nil, false
}

// playerIndex is the player's position in join order. Chain assignment
// depends on this ordering staying stable for the life of a game.
func playerIndex(game *Game, playerID string) int {
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
