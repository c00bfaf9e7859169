package game

// Event is an outbound notification produced by the engine. The engine never
// talks to a transport directly: mutation methods append events to an
// internal queue and the host drains it after each intent, so the effects of
// intent N are fully dispatched before intent N+1 is applied.
type Event interface {
	isEvent()
}

// SnapshotEvent carries the public table state, broadcast to everyone.
type SnapshotEvent struct {
	Snapshot Snapshot
}

// PrivateEvent carries one player's private view, sent only to that player.
type PrivateEvent struct {
	PlayerID string
	View     PrivateView
}

// ResultEvent announces a concluded hand, broadcast to everyone.
type ResultEvent struct {
	Result Result
}

// ErrorEvent reports a rejected intent. Sent to the offending player, or
// broadcast when PlayerID is empty. An error never changes engine state.
type ErrorEvent struct {
	PlayerID string
	Reason   string
}

func (SnapshotEvent) isEvent() {}
func (PrivateEvent) isEvent()  {}
func (ResultEvent) isEvent()   {}
func (ErrorEvent) isEvent()    {}

// Winner is one payout line in a hand result.
type Winner struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
	Payout   int    `json:"payout"`
}

// Result is the terminal payload of a hand.
type Result struct {
	HandNum     int      `json:"handNum"`
	Winners     []Winner `json:"winners"`
	BossTotal   int      `json:"bossTotal"`
	Description string   `json:"description"`
}
