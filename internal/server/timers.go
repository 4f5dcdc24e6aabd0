package server

import (
	"log"
	"time"
)

func (s *Server) schedulePhaseTimer(game *Game) {
	duration := s.phaseDuration(game)
	if duration <= 0 {
		s.cancelPhaseTimer(game.RoomCode)
		return
	}
	s.timersMu.Lock()
	if existing, ok := s.timers[game.RoomCode]; ok {
		existing.Stop()
	}
	expected := game.Phase
	timer := time.AfterFunc(duration, func() {
		s.autoAdvancePhase(game.RoomCode, expected)
	})
	s.timers[game.RoomCode] = timer
	s.timersMu.Unlock()
}

func (s *Server) cancelPhaseTimer(roomCode string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[roomCode]; ok {
		timer.Stop()
		delete(s.timers, roomCode)
	}
}

func (s *Server) phaseDuration(game *Game) time.Duration {
	if game == nil {
		return 0
	}
	switch game.Phase {
	case phasePrompt:
		return time.Duration(s.cfg.PromptDurationSeconds) * time.Second
	case phaseVoting:
		return time.Duration(s.cfg.VoteDurationSeconds) * time.Second
	default:
		return 0
	}
}

// autoAdvancePhase fires when a phase deadline passes. The expected
// phase comparison inside the store lock makes it a no-op when a
// submission already triggered the transition.
func (s *Server) autoAdvancePhase(roomCode string, expectedPhase string) {
	now := timeNowUTC()
	var increments map[string]int
	game, err := s.store.UpdateGame(roomCode, func(game *Game) error {
		if game.Phase != expectedPhase {
			return conflictError("phase changed")
		}
		switch expectedPhase {
		case phasePrompt:
			return endPromptPhase(game, now)
		case phaseVoting:
			var err error
			increments, err = endVotingPhase(game, now)
			return err
		}
		return conflictError("phase is not timed")
	})
	if err != nil {
		return
	}
	if len(increments) > 0 {
		if err := s.persistScores(game, increments); err != nil {
			log.Printf("auto-advance persist scores failed room=%s error=%v", game.RoomCode, err)
		}
	}
	if err := s.persistPhase(game, expectedPhase, "round_advanced", EventPayload{Phase: game.Phase, Round: game.CurrentRound, Reason: "timeout"}); err != nil {
		log.Printf("auto-advance persist phase failed room=%s error=%v", game.RoomCode, err)
		return
	}
	log.Printf("game auto-advanced room=%s from=%s to=%s round=%d", game.RoomCode, expectedPhase, game.Phase, game.CurrentRound)
	s.schedulePhaseTimer(game)
	s.broadcastGameUpdate(game)
}
