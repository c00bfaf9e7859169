package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/oxtail-cards/oxtail/internal/game"
)

// EventSink delivers wire messages produced by the engine. The websocket
// server implements it; tests substitute an in-memory sink.
type EventSink interface {
	Broadcast(msg *Message)
	SendToPlayer(playerID string, msg *Message) error
}

// GameService serializes all intents against the single table and forwards
// the resulting engine events to connected clients. The engine itself is not
// goroutine-safe; the service mutex is the one writer lock.
type GameService struct {
	mu       sync.Mutex
	table    *game.Table
	sink     EventSink
	logger   *log.Logger
	watchdog *Watchdog
}

// NewGameService creates a service around a table.
func NewGameService(table *game.Table, sink EventSink, logger *log.Logger) *GameService {
	return &GameService{
		table:  table,
		sink:   sink,
		logger: logger.WithPrefix("game"),
	}
}

// SetWatchdog attaches the turn watchdog. Must be called before clients
// connect.
func (s *GameService) SetWatchdog(w *Watchdog) {
	s.watchdog = w
}

// Join registers a player.
func (s *GameService) Join(playerID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Join(playerID, name)
	s.flush()
}

// TakeSeat seats a player.
func (s *GameService) TakeSeat(playerID string, seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.TakeSeat(playerID, seat)
	s.flush()
}

// LeaveSeat vacates a player's seat. Also invoked on disconnect.
func (s *GameService) LeaveSeat(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.LeaveSeat(playerID)
	s.flush()
}

// StartHand starts the next hand on behalf of the dealer.
func (s *GameService) StartHand(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.StartHand(playerID)
	s.flush()
}

// BetAction applies a betting action sent by a client.
func (s *GameService) BetAction(playerID, action string, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parsed, err := game.ParseAction(action)
	if err != nil {
		s.sendError(playerID, "invalid_action", err.Error())
		return
	}
	s.table.BetAction(playerID, parsed, amount)
	s.flush()
}

// ComboUpdate stores a player's provisional combo selection.
func (s *GameService) ComboUpdate(playerID string, picks []ComboPick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.ComboUpdate(playerID, selections(picks))
	s.flush()
}

// ComboSubmit locks in a player's combo.
func (s *GameService) ComboSubmit(playerID string, picks []ComboPick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.ComboSubmit(playerID, selections(picks))
	s.flush()
}

// Restart resets the table to its initial state.
func (s *GameService) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("Restarting table")
	s.table.Restart()
	s.flush()
}

// ForceFold folds a player out regardless of turn order. Invoked by the turn
// watchdog when a player's clock runs out.
func (s *GameService) ForceFold(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Warn("Folding player on timeout", "player", playerID)
	s.table.ForceFold(playerID)
	s.flush()
}

// Sync resends the current public and private state to one player, used when
// a client connects or reconnects.
func (s *GameService) Sync(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, err := NewMessage(MessageTypeSnapshot, s.table.BuildSnapshot()); err == nil {
		_ = s.sink.SendToPlayer(playerID, msg)
	}
	if view, ok := s.table.PlayerView(playerID); ok {
		if msg, err := NewMessage(MessageTypePrivate, view); err == nil {
			_ = s.sink.SendToPlayer(playerID, msg)
		}
	}
}

// flush drains the engine's event queue into the sink and re-arms the turn
// watchdog. Callers must hold the service mutex.
func (s *GameService) flush() {
	for _, event := range s.table.DrainEvents() {
		switch e := event.(type) {
		case game.SnapshotEvent:
			if msg, err := NewMessage(MessageTypeSnapshot, e.Snapshot); err == nil {
				s.sink.Broadcast(msg)
			}
		case game.PrivateEvent:
			if msg, err := NewMessage(MessageTypePrivate, e.View); err == nil {
				// Offline players simply miss their private updates; they
				// are resynced on reconnect.
				_ = s.sink.SendToPlayer(e.PlayerID, msg)
			}
		case game.ResultEvent:
			s.logger.Info("Hand finished", "hand", e.Result.HandNum, "winners", len(e.Result.Winners))
			if msg, err := NewMessage(MessageTypeResult, e.Result); err == nil {
				s.sink.Broadcast(msg)
			}
		case game.ErrorEvent:
			s.dispatchError(e)
		}
	}

	if s.watchdog != nil {
		s.watchdog.Observe(s.table.ActingPlayerID())
	}
}

func (s *GameService) dispatchError(e game.ErrorEvent) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: "rejected", Message: e.Reason})
	if err != nil {
		return
	}
	if e.PlayerID == "" {
		s.sink.Broadcast(msg)
		return
	}
	_ = s.sink.SendToPlayer(e.PlayerID, msg)
}

// sendError emits a service-level error outside the engine's event flow.
// Callers must hold the service mutex.
func (s *GameService) sendError(playerID, code, message string) {
	if msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message}); err == nil {
		_ = s.sink.SendToPlayer(playerID, msg)
	}
}
