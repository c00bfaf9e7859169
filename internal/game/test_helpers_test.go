package game

import (
	"fmt"
	"testing"

	"github.com/oxtail-cards/oxtail/internal/deck"
	"github.com/oxtail-cards/oxtail/internal/randutil"
)

// newTestTable creates a table with default stakes and a fixed seed.
func newTestTable() *Table {
	return NewTable(DefaultConfig(), randutil.New(7))
}

// seatAt joins and seats one player per given seat, ids "p1", "p2", ... in
// argument order. The first seated player becomes dealer.
func seatAt(tbl *Table, seats ...int) {
	for i, seat := range seats {
		id := fmt.Sprintf("p%d", i+1)
		tbl.Join(id, id)
		tbl.TakeSeat(id, seat)
	}
}

// actorID returns the player id due to act.
func actorID(t *testing.T, tbl *Table) string {
	t.Helper()
	seat := tbl.actingSeat()
	p := tbl.playerAt(seat)
	if p == nil {
		t.Fatalf("no acting player (seat %d)", seat)
	}
	return p.ID
}

// callAround plays every betting round with passive calls/checks until the
// hand leaves its betting phases.
func callAround(t *testing.T, tbl *Table) {
	t.Helper()
	for i := 0; tbl.Phase().IsBetting(); i++ {
		if i > 50 {
			t.Fatal("betting did not converge")
		}
		p := tbl.playerAt(tbl.actingSeat())
		if p == nil {
			t.Fatalf("no acting player in phase %s", tbl.Phase())
		}
		if p.Bet < tbl.hand.currentBet {
			tbl.BetAction(p.ID, Call, 0)
		} else {
			tbl.BetAction(p.ID, Check, 0)
		}
	}
}

// lastError returns the reason of the most recent error event, or "".
func lastError(events []Event) string {
	reason := ""
	for _, e := range events {
		if err, ok := e.(ErrorEvent); ok {
			reason = err.Reason
		}
	}
	return reason
}

// findResult returns the result event from a drained batch, or nil.
func findResult(events []Event) *Result {
	for _, e := range events {
		if r, ok := e.(ResultEvent); ok {
			return &r.Result
		}
	}
	return nil
}

// stackedHand builds a deck for a hand with the given boss cards followed by
// each participant's seven cards in seat order, plus any extra cards left in
// the deck afterwards.
func stackedHand(boss []deck.Card, hands [][]deck.Card, extra ...deck.Card) *deck.Deck {
	var cards []deck.Card
	cards = append(cards, boss...)
	for _, h := range hands {
		cards = append(cards, h...)
	}
	cards = append(cards, extra...)
	return deck.NewStacked(cards...)
}

// assertPotInvariant checks pot + sidePot == sum of all total bets.
func assertPotInvariant(t *testing.T, tbl *Table) {
	t.Helper()
	if tbl.hand == nil {
		return
	}
	sum := 0
	for _, p := range tbl.players {
		sum += p.TotalBet
	}
	if tbl.hand.pot+tbl.hand.sidePot != sum {
		t.Fatalf("pot %d + side %d != total bets %d",
			tbl.hand.pot, tbl.hand.sidePot, sum)
	}
}
