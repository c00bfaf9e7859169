package game

import (
	"fmt"

	"github.com/oxtail-cards/oxtail/internal/deck"
)

// CardView is the wire form of a card. High is set on combo cards counted
// high (Aces only).
type CardView struct {
	ID   string `json:"id"`
	Rank string `json:"rank"`
	Suit string `json:"suit"`
	High bool   `json:"high,omitempty"`
}

func cardView(c deck.Card) CardView {
	return CardView{ID: c.ID, Rank: c.Rank.String(), Suit: c.Suit.String()}
}

func cardViews(cards []deck.Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = cardView(c)
	}
	return views
}

func selectedViews(sel []SelectedCard) []CardView {
	views := make([]CardView, len(sel))
	for i, s := range sel {
		views[i] = cardView(s.Card)
		views[i].High = s.High
	}
	return views
}

// SeatView is the public summary of one seat. Hidden cards are never
// included; only a submitted (revealed) combo is shown.
type SeatView struct {
	Seat       int        `json:"seat"`
	Occupied   bool       `json:"occupied"`
	PlayerID   string     `json:"playerId,omitempty"`
	Name       string     `json:"name,omitempty"`
	Chips      int        `json:"chips,omitempty"`
	Dealer     bool       `json:"dealer,omitempty"`
	SmallBlind bool       `json:"smallBlind,omitempty"`
	BigBlind   bool       `json:"bigBlind,omitempty"`
	InHand     bool       `json:"inHand,omitempty"`
	Folded     bool       `json:"folded,omitempty"`
	Acting     bool       `json:"acting,omitempty"`
	Bet        int        `json:"bet,omitempty"`
	Combo      []CardView `json:"combo,omitempty"`
}

// Snapshot is the public table state broadcast to every player.
type Snapshot struct {
	Phase        string     `json:"phase"`
	HandNum      int        `json:"handNum"`
	Pot          int        `json:"pot"`
	SidePot      int        `json:"sidePot"`
	CurrentBet   int        `json:"currentBet"`
	MinRaise     int        `json:"minRaise"`
	ActingSeat   int        `json:"actingSeat"`
	Boss         []CardView `json:"boss,omitempty"`
	BossRevealed int        `json:"bossRevealed"`
	Seats        []SeatView `json:"seats"`
	Status       string     `json:"status"`
}

// LegalAction describes one action currently available to a player. For
// calls Amount is the cost; for raises Amount is the minimum raise and Max
// the largest amount the player can put toward raising.
type LegalAction struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
	Max    int    `json:"max,omitempty"`
}

// PrivateView is one player's own view: full hand, provisional selection,
// combo total and the precise set of legal actions.
type PrivateView struct {
	PlayerID   string        `json:"playerId"`
	Seat       int           `json:"seat"`
	Chips      int           `json:"chips"`
	Hand       []CardView    `json:"hand,omitempty"`
	Selection  []CardView    `json:"selection,omitempty"`
	ComboTotal int           `json:"comboTotal"`
	Actions    []LegalAction `json:"actions,omitempty"`
}

// actingSeat derives the seat currently due to act, or 0.
func (t *Table) actingSeat() int {
	if t.hand == nil {
		return 0
	}
	switch turn := t.hand.turn.(type) {
	case bettingTurn:
		return turn.Seat
	case comboTurn:
		if turn.Index < len(t.hand.order) {
			return t.hand.order[turn.Index]
		}
	}
	return 0
}

// ActingPlayerID returns the id of the player currently due to act, or ""
// when no one is on the clock.
func (t *Table) ActingPlayerID() string {
	if p := t.playerAt(t.actingSeat()); p != nil {
		return p.ID
	}
	return ""
}

// PlayerView builds the private view for a known player.
func (t *Table) PlayerView(playerID string) (PrivateView, bool) {
	p, ok := t.players[playerID]
	if !ok {
		return PrivateView{}, false
	}
	return t.BuildPrivateView(p), true
}

// BuildSnapshot projects the public table state. Payloads are derived
// copies; nothing in them aliases engine state.
func (t *Table) BuildSnapshot() Snapshot {
	snap := Snapshot{
		Phase:      t.Phase().String(),
		HandNum:    t.handNum,
		ActingSeat: t.actingSeat(),
		Seats:      make([]SeatView, 0, SeatCount),
	}

	if h := t.hand; h != nil {
		snap.Pot = h.pot
		snap.SidePot = h.sidePot
		snap.CurrentBet = h.currentBet
		snap.MinRaise = h.minRaise
		snap.BossRevealed = h.revealed
		if h.bossVisible {
			snap.Boss = cardViews(h.boss[:h.revealed])
		}
	}

	for seat := 1; seat <= SeatCount; seat++ {
		view := SeatView{Seat: seat}
		if p := t.playerAt(seat); p != nil {
			view.Occupied = true
			view.PlayerID = p.ID
			view.Name = p.Name
			view.Chips = p.Chips
			view.Dealer = seat == t.dealerSeat
			view.SmallBlind = p.SmallBlind
			view.BigBlind = p.BigBlind
			view.InHand = p.InHand
			view.Folded = p.Folded
			view.Acting = seat == snap.ActingSeat
			view.Bet = p.Bet
			view.Combo = selectedViews(p.Submitted)
		}
		snap.Seats = append(snap.Seats, view)
	}

	snap.Status = t.statusLine(snap.ActingSeat)
	return snap
}

// BuildPrivateView projects one player's private state.
func (t *Table) BuildPrivateView(p *Player) PrivateView {
	view := PrivateView{
		PlayerID:  p.ID,
		Seat:      p.Seat,
		Chips:     p.Chips,
		Hand:      cardViews(p.Hand),
		Selection: selectedViews(sanitizeSelection(p, p.Selection)),
		Actions:   t.legalActions(p),
	}
	view.ComboTotal = ComboTotal(sanitizeSelection(p, p.Selection))
	return view
}

// legalActions derives the precise set of actions available to a player
// right now.
func (t *Table) legalActions(p *Player) []LegalAction {
	var actions []LegalAction

	if t.hand == nil {
		if p.Seated() && p.Seat == t.dealerSeat && len(t.eligibleSeats(t.handNum+1)) >= 2 {
			actions = append(actions, LegalAction{Action: "start_hand"})
		}
		return actions
	}

	h := t.hand
	if len(p.Hand) > 0 {
		actions = append(actions, LegalAction{Action: "combo_update"})
	}

	switch turn := h.turn.(type) {
	case bettingTurn:
		if !p.Active() || turn.Seat != p.Seat {
			return actions
		}
		actions = append(actions, LegalAction{Action: "fold"})
		if p.Bet == h.currentBet {
			actions = append(actions, LegalAction{Action: "check"})
		} else {
			toCall := h.currentBet - p.Bet
			if toCall > p.Chips {
				toCall = p.Chips
			}
			actions = append(actions, LegalAction{Action: "call", Amount: toCall})
		}
		if p.Chips > 0 {
			callAmount := h.currentBet - p.Bet
			affordable := (p.Chips - callAmount) / t.cfg.RaiseStep * t.cfg.RaiseStep
			if affordable >= t.cfg.RaiseStep {
				actions = append(actions, LegalAction{Action: "raise", Amount: t.cfg.RaiseStep, Max: affordable})
			}
		}
	case comboTurn:
		if h.phase == Combo && turn.Index < len(h.order) &&
			h.order[turn.Index] == p.Seat && h.awaiting[p.ID] {
			actions = append(actions, LegalAction{Action: "combo_submit"})
		}
	}
	return actions
}

// statusLine renders a human-readable summary of where the hand stands.
func (t *Table) statusLine(actingSeat int) string {
	if t.hand == nil {
		if len(t.eligibleSeats(t.handNum+1)) >= 2 {
			return "waiting for the dealer to start the hand"
		}
		return "waiting for players"
	}

	h := t.hand
	actor := t.playerAt(actingSeat)
	name := "nobody"
	if actor != nil {
		name = actor.Name
	}

	if h.phase == Combo {
		return fmt.Sprintf("combo: %s to submit", name)
	}
	return fmt.Sprintf("%s betting: %s to act", h.phase, name)
}

// broadcast queues a public snapshot plus a private view for every player.
func (t *Table) broadcast() {
	t.emit(SnapshotEvent{Snapshot: t.BuildSnapshot()})
	for _, p := range t.players {
		t.emit(PrivateEvent{PlayerID: p.ID, View: t.BuildPrivateView(p)})
	}
}
