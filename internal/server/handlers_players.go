package server

import (
	"encoding/json"
	"log"
	"net/http"

	"prompt-party/internal/db"
)

// handlePlayerGames lists every game a player has belonged to, from the
// persistence mirror. Without a database there is no cross-game history
// to report.
func (s *Server) handlePlayerGames(w http.ResponseWriter, r *http.Request) {
	publicID, ok := parsePlayerGamesPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if s.db == nil {
		writeJSON(w, http.StatusOK, []map[string]any{})
		return
	}

	var player db.Player
	if err := s.db.Where("public_id = ?", publicID).First(&player).Error; err != nil {
		writeJSON(w, http.StatusOK, []map[string]any{})
		return
	}
	var memberships []db.PlayerGame
	if err := s.db.Preload("Game").
		Where("player_id = ?", player.ID).
		Order("joined_at DESC").
		Find(&memberships).Error; err != nil {
		log.Printf("player games query failed player=%s error=%v", publicID, err)
		writeError(w, internalError("failed to load player games"))
		return
	}

	games := make([]map[string]any, 0, len(memberships))
	for i := range memberships {
		m := &memberships[i]
		games = append(games, map[string]any{
			"room_code": m.Game.RoomCode,
			"mode":      m.Game.Mode,
			"phase":     m.Game.Phase,
			"score":     m.Score,
			"is_host":   m.IsHost,
			"joined_at": m.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, games)
}

// handleEvents returns the persisted event log for a game, oldest first.
func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request, roomCode string) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "event log requires a database",
			"kind":  kindUpstream,
		})
		return
	}
	var game db.Game
	if err := s.db.Where("room_code = ?", roomCode).First(&game).Error; err != nil {
		writeError(w, errGameNotFound)
		return
	}
	var events []db.Event
	if err := s.db.Where("game_id = ?", game.ID).Order("id ASC").Find(&events).Error; err != nil {
		log.Printf("events query failed room=%s error=%v", roomCode, err)
		writeError(w, internalError("failed to load events"))
		return
	}

	payload := make([]map[string]any, 0, len(events))
	for i := range events {
		event := &events[i]
		var body map[string]any
		if err := json.Unmarshal(event.Payload, &body); err != nil {
			body = map[string]any{}
		}
		payload = append(payload, map[string]any{
			"id":         event.ID,
			"type":       event.Type,
			"payload":    body,
			"created_at": event.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}
