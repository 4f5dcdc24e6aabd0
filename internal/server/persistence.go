package server

import (
	"encoding/json"
	"errors"
	"time"

	"prompt-party/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventPayload is the jsonb body written to the event log.
type EventPayload struct {
	RoomCode string         `json:"room_code,omitempty"`
	Mode     string         `json:"mode,omitempty"`
	Phase    string         `json:"phase,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Round    int            `json:"round,omitempty"`
	Word     string         `json:"word,omitempty"`
	PlayerID string         `json:"player_id,omitempty"`
	Scores   map[string]int `json:"scores,omitempty"`
}

// persistGame mirrors game creation: game row, host player row, and the
// host membership are created all-or-nothing.
func (s *Server) persistGame(game *Game, host *Player) error {
	if s.db == nil {
		return nil
	}
	var hostDBID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		record := db.Game{
			RoomCode:       game.RoomCode,
			Mode:           game.Mode,
			Phase:          game.Phase,
			CurrentRound:   game.CurrentRound,
			MaxRounds:      game.MaxRounds,
			CurrentWord:    game.CurrentWord,
			ExclusionWords: exclusionJSON(game.ExclusionWords),
			RoundStartedAt: game.RoundStartedAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		game.DBID = record.ID

		playerRecord := db.Player{PublicID: host.ID, Name: host.Name, Email: host.Email}
		if err := tx.Where("public_id = ?", host.ID).FirstOrCreate(&playerRecord).Error; err != nil {
			return err
		}
		hostDBID = playerRecord.ID

		membership := db.PlayerGame{
			GameID:   record.ID,
			PlayerID: playerRecord.ID,
			IsHost:   true,
			JoinedAt: time.Now().UTC(),
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}
		return tx.Model(&db.Game{}).Where("id = ?", record.ID).
			Update("host_player_id", playerRecord.ID).Error
	})
	if err != nil {
		return err
	}
	s.store.setPlayerDBID(game.RoomCode, host.ID, hostDBID)
	return s.persistEvent(game, "game_created", EventPayload{RoomCode: game.RoomCode, Mode: game.Mode})
}

func (s *Server) persistPlayer(game *Game, player *Player) error {
	if s.db == nil {
		return nil
	}
	if game.DBID == 0 {
		if err := s.ensureGameDBID(game); err != nil {
			return err
		}
	}
	if game.DBID == 0 {
		return errors.New("game not persisted")
	}
	dbID := player.DBID
	if dbID == 0 {
		record := db.Player{PublicID: player.ID, Name: player.Name, Email: player.Email}
		if err := s.db.Where("public_id = ?", player.ID).FirstOrCreate(&record).Error; err != nil {
			return err
		}
		dbID = record.ID
		s.store.setPlayerDBID(game.RoomCode, player.ID, dbID)
	}
	membership := db.PlayerGame{
		GameID:   game.DBID,
		PlayerID: dbID,
		IsHost:   player.IsHost,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.Where("game_id = ? AND player_id = ?", game.DBID, dbID).
		FirstOrCreate(&membership).Error; err != nil {
		return err
	}
	return s.persistEvent(game, "player_joined", EventPayload{PlayerID: player.ID})
}

// persistStartGame mirrors the LOBBY exit: chain rows for Promptophone
// plus the conditional phase write.
func (s *Server) persistStartGame(game *Game) error {
	if s.db == nil {
		return nil
	}
	for c := range game.Chains {
		chain := &game.Chains[c]
		if chain.DBID != 0 {
			continue
		}
		record := db.PromptChain{
			GameID:       game.DBID,
			PlayerID:     s.playerDBID(game, chain.OwnerID),
			OriginalWord: chain.OriginalWord,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return err
		}
		chain.DBID = record.ID
	}
	return s.persistPhase(game, phaseLobby, "game_started", EventPayload{
		Phase: game.Phase,
		Mode:  game.Mode,
		Round: game.CurrentRound,
		Word:  game.CurrentWord,
	})
}

// persistPhase writes the phase conditionally on the prior phase, so a
// duplicate trigger that lost the in-memory race also loses here.
func (s *Server) persistPhase(game *Game, priorPhase, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if game.DBID == 0 {
		if err := s.ensureGameDBID(game); err != nil {
			return err
		}
	}
	if game.DBID == 0 {
		return errors.New("game not persisted")
	}
	updates := map[string]any{
		"phase":            game.Phase,
		"current_round":    game.CurrentRound,
		"current_word":     game.CurrentWord,
		"exclusion_words":  exclusionJSON(game.ExclusionWords),
		"round_started_at": game.RoundStartedAt,
	}
	if err := s.db.Model(&db.Game{}).
		Where("id = ? AND phase = ?", game.DBID, priorPhase).
		Updates(updates).Error; err != nil {
		return err
	}
	return s.persistEvent(game, eventType, payload)
}

// persistSubmission mirrors the current-round submission of one player,
// looking the entry up under the store lock to fill its row ID in.
func (s *Server) persistSubmission(game *Game, playerID string) error {
	if s.db == nil {
		return s.persistEvent(game, "prompt_submitted", EventPayload{PlayerID: playerID, Round: game.CurrentRound})
	}
	playerDBID := s.playerDBID(game, playerID)
	if playerDBID == 0 {
		return errors.New("player not persisted")
	}
	_, err := s.store.UpdateGame(game.RoomCode, func(game *Game) error {
		switch game.Mode {
		case modePromptAnything:
			for i := range game.Images {
				entry := &game.Images[i]
				if entry.PlayerID != playerID || entry.Round != game.CurrentRound || entry.DBID != 0 {
					continue
				}
				record := db.Image{
					GameID:   game.DBID,
					PlayerID: playerDBID,
					Round:    entry.Round,
					Prompt:   entry.Prompt,
					URL:      entry.URL,
				}
				if err := s.db.Create(&record).Error; err != nil {
					return err
				}
				entry.DBID = record.ID
				return nil
			}
		case modePromptophone:
			chain, err := assignedChain(game, playerID)
			if err != nil {
				return err
			}
			step := chainStepForRound(chain, game.CurrentRound)
			if step == nil || step.DBID != 0 {
				return nil
			}
			record := db.ChainStep{
				PromptChainID: chain.DBID,
				Round:         step.Round,
				PlayerID:      playerDBID,
				Prompt:        step.Prompt,
				URL:           step.URL,
			}
			if err := s.db.Create(&record).Error; err != nil {
				return err
			}
			step.DBID = record.ID
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.persistEvent(game, "prompt_submitted", EventPayload{PlayerID: playerID, Round: game.CurrentRound})
}

// persistGeneratedURL replaces the placeholder on the player's
// current-round submission.
func (s *Server) persistGeneratedURL(game *Game, playerID string, round int) error {
	if s.db == nil {
		return s.persistEvent(game, "image_generated", EventPayload{PlayerID: playerID, Round: round})
	}
	var dbID uint
	var url string
	var isStep bool
	_, err := s.store.UpdateGame(game.RoomCode, func(game *Game) error {
		switch game.Mode {
		case modePromptAnything:
			for i := range game.Images {
				entry := &game.Images[i]
				if entry.PlayerID == playerID && entry.Round == round {
					dbID = entry.DBID
					url = entry.URL
					return nil
				}
			}
		case modePromptophone:
			for c := range game.Chains {
				step := chainStepForRound(&game.Chains[c], round)
				if step != nil && step.PlayerID == playerID {
					dbID = step.DBID
					url = step.URL
					isStep = true
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if dbID != 0 {
		model := any(&db.Image{})
		if isStep {
			model = &db.ChainStep{}
		}
		if err := s.db.Model(model).Where("id = ?", dbID).Update("url", url).Error; err != nil {
			return err
		}
	}
	return s.persistEvent(game, "image_generated", EventPayload{PlayerID: playerID, Round: round})
}

// persistVote replaces the voter's prior row: delete then create, the
// last vote wins.
func (s *Server) persistVote(game *Game, voterID string, imageDBID uint) error {
	if s.db == nil {
		return s.persistEvent(game, "vote_submitted", EventPayload{PlayerID: voterID})
	}
	voterDBID := s.playerDBID(game, voterID)
	if voterDBID == 0 {
		return errors.New("player not persisted")
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ? AND voter_id = ?", game.DBID, voterDBID).
			Delete(&db.Vote{}).Error; err != nil {
			return err
		}
		return tx.Create(&db.Vote{
			GameID:  game.DBID,
			VoterID: voterDBID,
			ImageID: imageDBID,
		}).Error
	})
	if err != nil {
		return err
	}
	return s.persistEvent(game, "vote_submitted", EventPayload{PlayerID: voterID})
}

// persistClearVotes empties the game's mirrored votes when a new round
// opens, so the next aggregation pass starts from zero.
func (s *Server) persistClearVotes(game *Game) error {
	if s.db == nil {
		return nil
	}
	if game.DBID == 0 {
		if err := s.ensureGameDBID(game); err != nil {
			return err
		}
	}
	if game.DBID == 0 {
		return errors.New("game not persisted")
	}
	return s.db.Where("game_id = ?", game.DBID).Delete(&db.Vote{}).Error
}

// persistScores applies one aggregation pass of increments. Zero
// increments are written too so the pass is observable per membership.
func (s *Server) persistScores(game *Game, increments map[string]int) error {
	if s.db == nil {
		return nil
	}
	for playerID, delta := range increments {
		playerDBID := s.playerDBID(game, playerID)
		if playerDBID == 0 {
			continue
		}
		if err := s.db.Model(&db.PlayerGame{}).
			Where("game_id = ? AND player_id = ?", game.DBID, playerDBID).
			Update("score", gorm.Expr("score + ?", delta)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) persistEvent(game *Game, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if game.DBID == 0 {
		if err := s.ensureGameDBID(game); err != nil {
			return err
		}
	}
	if game.DBID == 0 {
		return errors.New("game not persisted")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		GameID:   game.DBID,
		PlayerID: s.eventPlayerID(game, payload.PlayerID),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) eventPlayerID(game *Game, playerID string) *uint {
	if playerID == "" {
		return nil
	}
	if dbID := s.playerDBID(game, playerID); dbID != 0 {
		return &dbID
	}
	return nil
}

func (s *Server) playerDBID(game *Game, playerID string) uint {
	if player, ok := findPlayer(game, playerID); ok {
		return player.DBID
	}
	return 0
}

func (s *Server) ensureGameDBID(game *Game) error {
	if s.db == nil || game.DBID != 0 {
		return nil
	}
	var record db.Game
	if err := s.db.Where("room_code = ?", game.RoomCode).First(&record).Error; err != nil {
		return nil
	}
	game.DBID = record.ID
	return nil
}

func exclusionJSON(words []string) datatypes.JSON {
	if words == nil {
		words = []string{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
