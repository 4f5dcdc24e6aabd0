package server

import (
	"log"
	"net/http"
)

type createGameRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mode      string `json:"mode"`
	MaxRounds int    `json:"max_rounds"`
}

type joinRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type startRequest struct {
	PlayerID string `json:"player_id"`
}

type playerRequest struct {
	PlayerID string `json:"player_id"`
}

type promptRequest struct {
	PlayerID string `json:"player_id"`
	Prompt   string `json:"prompt"`
}

type voteRequest struct {
	PlayerID string `json:"player_id"`
	ImageID  int    `json:"image_id"`
}

// autoSubmitPrompt stands in for a player who ran out the clock without
// describing anything. It bypasses the exclusion check.
const autoSubmitPrompt = "a mysterious abstract scene"

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, validationError(err.Error()))
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = modePromptAnything
	}
	if mode != modePromptAnything && mode != modePromptophone {
		writeError(w, validationError("unknown game mode"))
		return
	}
	maxRounds := req.MaxRounds
	if maxRounds < 1 {
		maxRounds = s.cfg.MaxRounds
	}

	game, host := s.store.CreateGame(name, req.Email, mode, maxRounds)
	if err := s.persistGame(game, host); err != nil {
		log.Printf("persist game failed room=%s error=%v", game.RoomCode, err)
	}
	log.Printf("game created room=%s mode=%s host=%s", game.RoomCode, game.Mode, host.Name)
	writeJSON(w, http.StatusOK, gamePayload(game, host.ID))
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	roomCode, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch {
	case action == "" && r.Method == http.MethodGet:
		s.handleGetGame(w, r, roomCode)
	case action == "players" && r.Method == http.MethodPost:
		s.handleJoinGame(w, r, roomCode)
	case action == "start" && r.Method == http.MethodPost:
		s.handleStartGame(w, r, roomCode)
	case action == "prompts" && r.Method == http.MethodPost:
		s.handleSubmitPrompt(w, r, roomCode)
	case action == "auto-submit" && r.Method == http.MethodPost:
		s.handleAutoSubmit(w, r, roomCode)
	case action == "generate-image" && r.Method == http.MethodPost:
		s.handleGenerateImage(w, r, roomCode)
	case action == "round/status" && r.Method == http.MethodGet:
		s.handleRoundStatus(w, r, roomCode)
	case action == "end-round" && r.Method == http.MethodPost:
		s.handleEndRound(w, r, roomCode)
	case action == "next-round" && r.Method == http.MethodPost:
		s.handleNextRound(w, r, roomCode)
	case action == "votes" && r.Method == http.MethodPost:
		s.handleVote(w, r, roomCode)
	case action == "votes/status" && r.Method == http.MethodGet:
		s.handleVotesStatus(w, r, roomCode)
	case action == "end-voting" && r.Method == http.MethodPost:
		s.handleEndVoting(w, r, roomCode)
	case action == "end" && r.Method == http.MethodPost:
		s.handleEndGame(w, r, roomCode)
	case action == "events" && r.Method == http.MethodGet:
		s.handleEvents(w, r, roomCode)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, _ *http.Request, roomCode string) {
	game, err := s.store.UpdateGame(roomCode, func(*Game) error { return nil })
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, validationError(err.Error()))
		return
	}
	game, player, err := s.store.AddPlayer(roomCode, name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistPlayer(game, player); err != nil {
		log.Printf("persist player failed room=%s player=%s error=%v", roomCode, player.Name, err)
	}
	log.Printf("player joined room=%s player=%s", roomCode, player.Name)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, gamePayload(game, player.ID))
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	now := timeNowUTC()
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		return startGame(game, req.PlayerID, now)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistStartGame(game); err != nil {
		log.Printf("persist start failed room=%s error=%v", roomCode, err)
	}
	log.Printf("game started room=%s mode=%s players=%d", roomCode, game.Mode, len(game.Players))
	s.schedulePhaseTimer(game)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleSubmitPrompt(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req promptRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	prompt, err := validatePrompt(req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if err := checkSubmission(game, req.PlayerID); err != nil {
			return err
		}
		word, exclusions := exclusionTarget(game, req.PlayerID)
		if err := checkExclusions(prompt, word, exclusions); err != nil {
			return err
		}
		return recordSubmission(game, req.PlayerID, prompt)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistSubmission(game, req.PlayerID); err != nil {
		log.Printf("persist submission failed room=%s player=%s error=%v", roomCode, req.PlayerID, err)
	}
	log.Printf("prompt submitted room=%s player=%s round=%d", roomCode, req.PlayerID, game.CurrentRound)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleAutoSubmit(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if err := checkSubmission(game, req.PlayerID); err != nil {
			return err
		}
		return recordSubmission(game, req.PlayerID, autoSubmitPrompt)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistSubmission(game, req.PlayerID); err != nil {
		log.Printf("persist submission failed room=%s player=%s error=%v", roomCode, req.PlayerID, err)
	}
	log.Printf("prompt auto-submitted room=%s player=%s round=%d", roomCode, req.PlayerID, game.CurrentRound)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

// recordSubmission appends the placeholder submission for the player's
// current-round slot. Callers hold the store lock.
func recordSubmission(game *Game, playerID, prompt string) error {
	switch game.Mode {
	case modePromptAnything:
		game.Images = append(game.Images, ImageEntry{
			ID:        nextImageID(game),
			PlayerID:  playerID,
			Round:     game.CurrentRound,
			Prompt:    prompt,
			URL:       placeholderImageURL,
			CreatedAt: timeNowUTC(),
		})
	case modePromptophone:
		chain, err := assignedChain(game, playerID)
		if err != nil {
			return err
		}
		chain.Steps = append(chain.Steps, ChainStep{
			PlayerID: playerID,
			Round:    game.CurrentRound,
			Prompt:   prompt,
			URL:      placeholderImageURL,
		})
	default:
		return conflictError("unknown game mode")
	}
	return nil
}

func nextImageID(game *Game) int {
	next := 1
	for i := range game.Images {
		if game.Images[i].ID >= next {
			next = game.Images[i].ID + 1
		}
	}
	return next
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}

	var prompt string
	var round int
	_, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if _, ok := findPlayer(game, req.PlayerID); !ok {
			return notFoundError("Player not in game")
		}
		if game.Phase != phasePrompt {
			return conflictError("round not in progress")
		}
		entry, err := currentSubmission(game, req.PlayerID)
		if err != nil {
			return err
		}
		if entry.url != placeholderImageURL {
			return conflictError("image already generated")
		}
		prompt = entry.prompt
		round = game.CurrentRound
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// The provider call happens outside the store lock. Other players
	// keep submitting and generating while this one is in flight.
	url, genErr := s.images.Generate(r.Context(), prompt)
	if genErr != nil {
		log.Printf("image generation failed room=%s player=%s error=%v", roomCode, req.PlayerID, genErr)
		writeError(w, upstreamError("image generation failed"))
		return
	}

	transitioned := false
	priorPhase := ""
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		entry, err := currentSubmissionForRound(game, req.PlayerID, round)
		if err != nil {
			return err
		}
		if *entry.urlRef != placeholderImageURL {
			return conflictError("image already generated")
		}
		*entry.urlRef = url
		if game.Phase == phasePrompt && game.CurrentRound == round && allSubmitted(game) && allGenerated(game) {
			priorPhase = game.Phase
			if err := endPromptPhase(game, timeNowUTC()); err == nil {
				transitioned = true
			}
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistGeneratedURL(game, req.PlayerID, round); err != nil {
		log.Printf("persist image failed room=%s player=%s error=%v", roomCode, req.PlayerID, err)
	}
	if transitioned {
		if err := s.persistPhase(game, priorPhase, "round_advanced", EventPayload{Phase: game.Phase, Round: game.CurrentRound, Reason: "all_generated"}); err != nil {
			log.Printf("persist phase failed room=%s error=%v", roomCode, err)
		}
		log.Printf("game advanced room=%s to=%s round=%d", roomCode, game.Phase, game.CurrentRound)
		s.schedulePhaseTimer(game)
	}
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, map[string]any{"url": url, "game": snapshot(game)})
}

type submissionRef struct {
	prompt string
	url    string
	urlRef *string
}

func currentSubmission(game *Game, playerID string) (submissionRef, error) {
	return currentSubmissionForRound(game, playerID, game.CurrentRound)
}

func currentSubmissionForRound(game *Game, playerID string, round int) (submissionRef, error) {
	switch game.Mode {
	case modePromptAnything:
		for i := range game.Images {
			entry := &game.Images[i]
			if entry.PlayerID == playerID && entry.Round == round {
				return submissionRef{prompt: entry.Prompt, url: entry.URL, urlRef: &entry.URL}, nil
			}
		}
	case modePromptophone:
		for c := range game.Chains {
			step := chainStepForRound(&game.Chains[c], round)
			if step != nil && step.PlayerID == playerID {
				return submissionRef{prompt: step.Prompt, url: step.URL, urlRef: &step.URL}, nil
			}
		}
	}
	return submissionRef{}, conflictError("no prompt submitted for this round")
}

func (s *Server) handleRoundStatus(w http.ResponseWriter, r *http.Request, roomCode string) {
	playerID := r.URL.Query().Get("player_id")
	now := timeNowUTC()
	var payload map[string]any
	_, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		payload = s.roundStatus(game, playerID, now)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	now := timeNowUTC()
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if req.PlayerID != "" {
			if _, ok := findPlayer(game, req.PlayerID); !ok {
				return permissionError("Player not in game")
			}
		}
		return endPromptPhase(game, now)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistPhase(game, phasePrompt, "round_advanced", EventPayload{Phase: game.Phase, Round: game.CurrentRound, Reason: "requested"}); err != nil {
		log.Printf("persist phase failed room=%s error=%v", roomCode, err)
	}
	log.Printf("round ended room=%s to=%s round=%d", roomCode, game.Phase, game.CurrentRound)
	s.schedulePhaseTimer(game)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	now := timeNowUTC()
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		return startNextRound(game, req.PlayerID, now)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistClearVotes(game); err != nil {
		log.Printf("persist vote reset failed room=%s error=%v", roomCode, err)
	}
	if err := s.persistPhase(game, phaseResults, "round_started", EventPayload{Phase: game.Phase, Round: game.CurrentRound, Word: game.CurrentWord}); err != nil {
		log.Printf("persist phase failed room=%s error=%v", roomCode, err)
	}
	log.Printf("next round started room=%s round=%d", roomCode, game.CurrentRound)
	s.schedulePhaseTimer(game)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	transitioned := false
	var increments map[string]int
	var imageDBID uint
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if _, ok := findPlayer(game, req.PlayerID); !ok {
			return permissionError("Voter not in game")
		}
		if game.Phase != phaseVoting {
			return conflictError("voting not in progress")
		}
		found := false
		for i := range game.Images {
			if game.Images[i].ID == req.ImageID && game.Images[i].Round == game.CurrentRound {
				found = true
				imageDBID = game.Images[i].DBID
				break
			}
		}
		if !found {
			return validationError("image not found")
		}
		for i := range game.Votes {
			if game.Votes[i].VoterID == req.PlayerID {
				game.Votes = append(game.Votes[:i], game.Votes[i+1:]...)
				break
			}
		}
		game.Votes = append(game.Votes, VoteEntry{VoterID: req.PlayerID, ImageID: req.ImageID})
		if allVoted(game) {
			var err error
			increments, err = endVotingPhase(game, timeNowUTC())
			if err == nil {
				transitioned = true
			}
		}
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistVote(game, req.PlayerID, imageDBID); err != nil {
		log.Printf("persist vote failed room=%s player=%s error=%v", roomCode, req.PlayerID, err)
	}
	if transitioned {
		s.finishVoting(game, increments, "all_voted")
	}
	log.Printf("vote recorded room=%s voter=%s image=%d", roomCode, req.PlayerID, req.ImageID)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleVotesStatus(w http.ResponseWriter, r *http.Request, roomCode string) {
	playerID := r.URL.Query().Get("player_id")
	now := timeNowUTC()
	var payload map[string]any
	_, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		payload = s.votingStatus(game, playerID, now)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleEndVoting(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	now := timeNowUTC()
	var increments map[string]int
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if req.PlayerID != "" {
			if _, ok := findPlayer(game, req.PlayerID); !ok {
				return permissionError("Player not in game")
			}
		}
		var err error
		increments, err = endVotingPhase(game, now)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.finishVoting(game, increments, "requested")
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

// finishVoting mirrors a completed voting phase: score increments, the
// phase write, and timer cleanup.
func (s *Server) finishVoting(game *Game, increments map[string]int, reason string) {
	if err := s.persistScores(game, increments); err != nil {
		log.Printf("persist scores failed room=%s error=%v", game.RoomCode, err)
	}
	if err := s.persistPhase(game, phaseVoting, "voting_ended", EventPayload{Phase: game.Phase, Round: game.CurrentRound, Reason: reason, Scores: increments}); err != nil {
		log.Printf("persist phase failed room=%s error=%v", game.RoomCode, err)
	}
	log.Printf("voting ended room=%s round=%d votes=%d", game.RoomCode, game.CurrentRound, len(game.Votes))
	s.cancelPhaseTimer(game.RoomCode)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request, roomCode string) {
	var req startRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, validationError("invalid request body"))
		return
	}
	now := timeNowUTC()
	priorPhase := ""
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if _, ok := findPlayer(game, req.PlayerID); !ok {
			return permissionError("Player not in game")
		}
		if req.PlayerID != game.HostID {
			return permissionError("Only the host can end the game")
		}
		priorPhase = game.Phase
		return endGame(game, now)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.persistPhase(game, priorPhase, "game_ended", EventPayload{Phase: game.Phase, Round: game.CurrentRound}); err != nil {
		log.Printf("persist phase failed room=%s error=%v", roomCode, err)
	}
	log.Printf("game ended room=%s", roomCode)
	s.cancelPhaseTimer(roomCode)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

// gamePayload is the snapshot plus the caller's own player ID, returned
// from create and join so clients can keep their identity.
func gamePayload(game *Game, playerID string) map[string]any {
	payload := snapshot(game)
	payload["player_id"] = playerID
	return payload
}
