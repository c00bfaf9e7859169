package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/oxtail-cards/oxtail/internal/deck"
)

// SeatCount is the fixed number of seats at a table.
const SeatCount = 6

// Config holds the table stakes. The defaults are the standard game values.
type Config struct {
	SmallBlind    int
	BigBlind      int
	RaiseStep     int // raises must be positive multiples of this
	StartingChips int
}

// DefaultConfig returns the standard table stakes.
func DefaultConfig() Config {
	return Config{
		SmallBlind:    5,
		BigBlind:      10,
		RaiseStep:     10,
		StartingChips: 1000,
	}
}

// Table owns all player, seat, deck and hand state for one game. It is a
// single logical state machine: callers must serialize intents (one mutex or
// one goroutine per table). Every intent is a synchronous state transition
// followed by queued notifications; nothing blocks internally.
type Table struct {
	cfg Config
	rng *rand.Rand

	players    map[string]*Player
	seats      [SeatCount + 1]string // playerID by seat, index 1..6
	dealerSeat int
	handNum    int
	hand       *handSession // nil while phase is waiting

	// newDeck builds the deck for each hand; tests override it to stack deals.
	newDeck func() *deck.Deck

	events []Event
}

// NewTable creates an empty table.
func NewTable(cfg Config, rng *rand.Rand) *Table {
	t := &Table{
		cfg:     cfg,
		rng:     rng,
		players: make(map[string]*Player),
	}
	t.newDeck = func() *deck.Deck { return deck.New(t.rng) }
	return t
}

// Phase returns the current phase; Waiting when no hand session exists.
func (t *Table) Phase() Phase {
	if t.hand == nil {
		return Waiting
	}
	return t.hand.phase
}

// HandNum returns the current hand number.
func (t *Table) HandNum() int {
	return t.handNum
}

// DrainEvents returns and clears the pending outbound events.
func (t *Table) DrainEvents() []Event {
	events := t.events
	t.events = nil
	return events
}

// emit appends an outbound event.
func (t *Table) emit(e Event) {
	t.events = append(t.events, e)
}

// fail queues a rejection for a player and leaves all state unchanged.
func (t *Table) fail(playerID, reason string) {
	t.emit(ErrorEvent{PlayerID: playerID, Reason: reason})
}

// Join registers a player, or renames them if already known. A fresh player
// receives the starting stack. The entry hand is set so that a joiner cannot
// be dealt into a hand already in progress.
func (t *Table) Join(playerID, name string) {
	if playerID == "" || name == "" {
		t.fail(playerID, "player id and name are required")
		return
	}
	if p, ok := t.players[playerID]; ok {
		p.Name = name
		t.broadcast()
		return
	}
	t.players[playerID] = &Player{
		ID:        playerID,
		Name:      name,
		Chips:     t.cfg.StartingChips,
		EntryHand: t.entryHand(),
	}
	t.broadcast()
}

// entryHand returns the first hand a player joining now may play.
func (t *Table) entryHand() int {
	if t.hand != nil {
		return t.handNum + 1
	}
	return t.handNum
}

// TakeSeat seats a player, vacating their previous seat if any. The first
// player ever to take a seat becomes the dealer.
func (t *Table) TakeSeat(playerID string, seat int) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "join the table first")
		return
	}
	if seat < 1 || seat > SeatCount {
		t.fail(playerID, fmt.Sprintf("seat must be 1..%d", SeatCount))
		return
	}
	if occupant := t.seats[seat]; occupant != "" && occupant != playerID {
		t.fail(playerID, fmt.Sprintf("seat %d is taken", seat))
		return
	}
	// A player dealt into the running hand stays put: the betting and combo
	// turn pointers track seats, and a vacated seat would strand them. Leave
	// the table to abandon the hand instead.
	if t.hand != nil && p.InHand {
		t.fail(playerID, "cannot change seats during a hand")
		return
	}

	if p.Seat != 0 {
		t.seats[p.Seat] = ""
	}
	t.seats[seat] = playerID
	p.Seat = seat
	p.EntryHand = t.entryHand()

	if t.dealerSeat == 0 {
		t.setDealer(seat)
	}
	t.broadcast()
}

// LeaveSeat vacates a player's seat. Disconnects route through here and are
// treated identically to a voluntary departure: a mid-hand leaver is folded
// out, and whichever turn pointer was on them advances.
func (t *Table) LeaveSeat(playerID string) {
	p, ok := t.players[playerID]
	if !ok || p.Seat == 0 {
		t.fail(playerID, "not seated")
		return
	}

	seat := p.Seat
	t.seats[seat] = ""
	p.Seat = 0

	if t.hand == nil {
		if t.dealerSeat == seat {
			t.setDealer(t.nextOccupiedSeat(seat))
		}
		t.broadcast()
		return
	}

	t.foldOut(p, seat)
	if t.hand != nil {
		t.broadcast()
	}
}

// ForceFold folds a player out of the current hand regardless of turn order,
// keeping their seat. Used by hosts for exceptional conditions such as turn
// timeouts.
func (t *Table) ForceFold(playerID string) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "unknown player")
		return
	}
	if t.hand == nil || !p.Active() {
		return
	}
	t.foldOut(p, p.Seat)
	if t.hand != nil {
		t.broadcast()
	}
}

// foldOut removes an in-hand player from contention and advances whichever
// turn pointer was on them. seat is the seat the player held when the fold
// was triggered (the player may already be unseated).
func (t *Table) foldOut(p *Player, seat int) {
	if !p.Active() {
		return
	}
	p.Folded = true
	p.InHand = false
	h := t.hand
	delete(h.awaiting, p.ID)

	if t.checkFoldOut() {
		return
	}

	switch turn := h.turn.(type) {
	case bettingTurn:
		h.acted[seat] = true
		if turn.Seat == seat {
			h.turn = bettingTurn{Seat: t.nextBettingSeat(seat)}
		}
		if t.bettingComplete() {
			t.finishBettingRound()
		}
	case comboTurn:
		if h.phase == Combo && h.order[turn.Index] == seat {
			t.advanceComboQueue()
		}
	}
}

// StartHand begins a new hand. Only the dealer may start one, only from
// waiting, and only with at least two eligible seated players.
func (t *Table) StartHand(playerID string) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "join the table first")
		return
	}
	if t.hand != nil {
		t.fail(playerID, "a hand is already in progress")
		return
	}
	if !p.Seated() || p.Seat != t.dealerSeat {
		t.fail(playerID, "only the dealer can start the hand")
		return
	}
	if len(t.eligibleSeats(t.handNum+1)) < 2 {
		t.fail(playerID, "need at least 2 players to start")
		return
	}
	t.beginHand()
	t.broadcast()
}

// Restart resets the table to its initial state: players, seats, stacks and
// the hand number are all cleared.
func (t *Table) Restart() {
	t.players = make(map[string]*Player)
	t.seats = [SeatCount + 1]string{}
	t.dealerSeat = 0
	t.handNum = 0
	t.hand = nil
	t.broadcast()
}

// setDealer moves the dealer button and keeps the player flags in sync.
func (t *Table) setDealer(seat int) {
	t.dealerSeat = seat
	for _, p := range t.players {
		p.Dealer = p.Seat != 0 && p.Seat == seat
	}
}

// playerAt returns the player occupying a seat, or nil.
func (t *Table) playerAt(seat int) *Player {
	if seat < 1 || seat > SeatCount {
		return nil
	}
	if id := t.seats[seat]; id != "" {
		return t.players[id]
	}
	return nil
}

// nextOccupiedSeat walks clockwise from the seat after `from` and returns
// the first occupied seat, or 0 if every seat is empty.
func (t *Table) nextOccupiedSeat(from int) int {
	for i := 1; i <= SeatCount; i++ {
		seat := (from+i-1)%SeatCount + 1
		if t.seats[seat] != "" {
			return seat
		}
	}
	return 0
}

// nextBettingSeat walks clockwise from the seat after `from` and returns the
// first seat whose occupant can act in the betting round, or 0 if none can.
func (t *Table) nextBettingSeat(from int) int {
	for i := 1; i <= SeatCount; i++ {
		seat := (from+i-1)%SeatCount + 1
		if p := t.playerAt(seat); p != nil && p.CanBet() {
			return seat
		}
	}
	return 0
}

// firstBettingSeat is nextBettingSeat but includes the starting seat itself,
// used to anchor each round at the small-blind seat.
func (t *Table) firstBettingSeat(start int) int {
	if p := t.playerAt(start); p != nil && p.CanBet() {
		return start
	}
	return t.nextBettingSeat(start)
}

// eligibleSeats returns, in seat order, the seats whose occupants may play
// the given hand number.
func (t *Table) eligibleSeats(handNum int) []int {
	seats := make([]int, 0, SeatCount)
	for seat := 1; seat <= SeatCount; seat++ {
		if p := t.playerAt(seat); p != nil && p.EntryHand <= handNum {
			seats = append(seats, seat)
		}
	}
	return seats
}

// activePlayers returns all players still contending in the hand.
func (t *Table) activePlayers() []*Player {
	var active []*Player
	for seat := 1; seat <= SeatCount; seat++ {
		if p := t.playerAt(seat); p != nil && p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// allPlayers returns every registered player (seated or not).
func (t *Table) allPlayers() []*Player {
	players := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		players = append(players, p)
	}
	return players
}

// seatsFrom returns all of `seats` reordered clockwise starting at `start`.
func seatsFrom(start int, seats []int) []int {
	ordered := make([]int, 0, len(seats))
	for i := 0; i < SeatCount; i++ {
		seat := (start+i-1)%SeatCount + 1
		for _, s := range seats {
			if s == seat {
				ordered = append(ordered, seat)
			}
		}
	}
	return ordered
}
