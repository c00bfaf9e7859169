package game

import "github.com/oxtail-cards/oxtail/internal/deck"

// Selection is a provisional combo pick: a card id plus whether the card
// should count high. High is meaningful only for Aces.
type Selection struct {
	CardID string
	High   bool
}

// SelectedCard is a card locked into a submitted combo with its counting
// mode resolved against the player's actual hand.
type SelectedCard struct {
	Card deck.Card
	High bool
}

// Player persists across hands. A player with no seat is inert with respect
// to the hand.
type Player struct {
	ID   string
	Name string

	Seat  int // 1..6, 0 = unseated
	Chips int

	// EntryHand is the first hand number the player may be dealt into,
	// preventing mid-hand injection into a hand already in progress.
	EntryHand int

	// Per-hand state, reset by endHand.
	Hand      []deck.Card
	InHand    bool
	Folded    bool
	Bet       int // chips committed this betting round
	TotalBet  int // chips committed this hand
	Selection []Selection    // provisional combo picks
	Submitted []SelectedCard // locked combo, revealed once submitted

	// Role flags, rotated across seats by the engine.
	Dealer     bool
	SmallBlind bool
	BigBlind   bool
}

// Seated returns true if the player occupies a seat.
func (p *Player) Seated() bool {
	return p.Seat != 0
}

// Active returns true while the player is still contending in the hand.
func (p *Player) Active() bool {
	return p.InHand && !p.Folded
}

// CanBet returns true if the player can still be asked to act in a betting
// round. Zero-stack players are all-in and exempt from acting.
func (p *Player) CanBet() bool {
	return p.Active() && p.Chips > 0
}

// holds reports whether the player's hand contains the card with the given id.
func (p *Player) holds(cardID string) (deck.Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return deck.Card{}, false
}

// resetHand clears all per-hand state while preserving stack and seating.
func (p *Player) resetHand() {
	p.Hand = nil
	p.InHand = false
	p.Folded = false
	p.Bet = 0
	p.TotalBet = 0
	p.Selection = nil
	p.Submitted = nil
	p.SmallBlind = false
	p.BigBlind = false
}
