package server

import (
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxtail-cards/oxtail/internal/game"
	"github.com/oxtail-cards/oxtail/internal/randutil"
)

// memorySink captures messages instead of writing to websockets.
type memorySink struct {
	mu         sync.Mutex
	broadcasts []*Message
	direct     map[string][]*Message
}

func newMemorySink() *memorySink {
	return &memorySink{direct: make(map[string][]*Message)}
}

func (m *memorySink) Broadcast(msg *Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, msg)
}

func (m *memorySink) SendToPlayer(playerID string, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.direct[playerID] = append(m.direct[playerID], msg)
	return nil
}

func (m *memorySink) lastBroadcast(msgType MessageType) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.broadcasts) - 1; i >= 0; i-- {
		if m.broadcasts[i].Type == msgType {
			return m.broadcasts[i]
		}
	}
	return nil
}

func (m *memorySink) lastDirect(playerID string, msgType MessageType) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.direct[playerID]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Type == msgType {
			return msgs[i]
		}
	}
	return nil
}

func newTestService(t *testing.T) (*GameService, *memorySink) {
	t.Helper()
	logger := log.New(io.Discard)
	table := game.NewTable(game.DefaultConfig(), randutil.New(7))
	sink := newMemorySink()
	return NewGameService(table, sink, logger), sink
}

func seatPlayers(svc *GameService, names ...string) {
	for i, name := range names {
		svc.Join(name, name)
		svc.TakeSeat(name, i+1)
	}
}

func decodeSnapshot(t *testing.T, msg *Message) game.Snapshot {
	t.Helper()
	require.NotNil(t, msg, "expected a snapshot message")
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	return snap
}

func TestServiceStartsHandAndBroadcasts(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob")
	svc.StartHand("alice")

	snap := decodeSnapshot(t, sink.lastBroadcast(MessageTypeSnapshot))
	assert.Equal(t, "rush", snap.Phase)
	assert.Equal(t, 15, snap.Pot)
	assert.Equal(t, 3, snap.BossRevealed)

	// Each player gets a private view with their seven cards.
	for _, name := range []string{"alice", "bob"} {
		msg := sink.lastDirect(name, MessageTypePrivate)
		require.NotNil(t, msg, "missing private view for %s", name)
		var view game.PrivateView
		require.NoError(t, json.Unmarshal(msg.Data, &view))
		assert.Len(t, view.Hand, 7)
	}
}

func TestServiceRejectsUnknownAction(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob")
	svc.StartHand("alice")

	svc.BetAction("alice", "allin", 0)

	msg := sink.lastDirect("alice", MessageTypeError)
	require.NotNil(t, msg)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "invalid_action", errData.Code)
}

func TestServiceRoutesEngineErrorsToOffender(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob", "carol")
	svc.StartHand("alice")

	// Heads-up rules do not apply with three players: bob (small blind)
	// acts first, so alice is out of turn.
	svc.BetAction("alice", "call", 0)

	require.NotNil(t, sink.lastDirect("alice", MessageTypeError))
	assert.Nil(t, sink.lastDirect("bob", MessageTypeError))
	assert.Nil(t, sink.lastBroadcast(MessageTypeError))
}

func TestServicePlaysFullHandOverWire(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob")
	svc.StartHand("alice")

	// Heads-up: the dealer posts the small blind and completes.
	svc.BetAction("alice", "call", 0)
	svc.BetAction("bob", "check", 0)
	for i := 0; i < 2; i++ {
		svc.BetAction("alice", "check", 0)
		svc.BetAction("bob", "check", 0)
	}

	snap := decodeSnapshot(t, sink.lastBroadcast(MessageTypeSnapshot))
	require.Equal(t, "combo", snap.Phase)

	svc.ComboSubmit("alice", nil)
	svc.ComboSubmit("bob", nil)

	// Empty combos tie; either a sudden-death round begins or the hand
	// resolved, but the table must never be stuck in the combo phase.
	snap = decodeSnapshot(t, sink.lastBroadcast(MessageTypeSnapshot))
	assert.NotEqual(t, "combo", snap.Phase)
}

func TestServiceSyncSendsStateToOnePlayer(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob")
	svc.StartHand("alice")

	sink.mu.Lock()
	sink.direct["alice"] = nil
	sink.mu.Unlock()

	svc.Sync("alice")

	require.NotNil(t, sink.lastDirect("alice", MessageTypeSnapshot))
	require.NotNil(t, sink.lastDirect("alice", MessageTypePrivate))
}

func TestServiceRestartClearsTable(t *testing.T) {
	svc, sink := newTestService(t)
	seatPlayers(svc, "alice", "bob")
	svc.StartHand("alice")

	svc.Restart()

	snap := decodeSnapshot(t, sink.lastBroadcast(MessageTypeSnapshot))
	assert.Equal(t, "waiting", snap.Phase)
	for _, seat := range snap.Seats {
		assert.False(t, seat.Occupied)
	}
}
