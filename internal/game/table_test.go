package game

import "testing"

func TestJoinGivesStartingStack(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	tbl.Join("alice", "Alice")
	if tbl.players["alice"].Chips != 1000 {
		t.Errorf("chips = %d, want 1000", tbl.players["alice"].Chips)
	}

	// Rejoining only updates the name.
	tbl.players["alice"].Chips = 500
	tbl.Join("alice", "Alicia")
	p := tbl.players["alice"]
	if p.Name != "Alicia" || p.Chips != 500 {
		t.Errorf("rejoin should rename only, got name=%q chips=%d", p.Name, p.Chips)
	}
}

func TestTakeSeatConflicts(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 2)
	tbl.Join("p2", "p2")
	tbl.DrainEvents()

	tbl.TakeSeat("p2", 2)
	if reason := lastError(tbl.DrainEvents()); reason == "" {
		t.Error("taking an occupied seat should be rejected")
	}
	if tbl.players["p2"].Seat != 0 {
		t.Error("rejected seat take must not seat the player")
	}

	// Moving seats vacates the previous one.
	tbl.TakeSeat("p1", 5)
	if tbl.seats[2] != "" || tbl.seats[5] != "p1" {
		t.Errorf("expected p1 moved 2->5, seats: %v", tbl.seats)
	}
}

func TestSeatChangeRejectedDuringHand(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2, 3)
	tbl.StartHand("p1")
	tbl.DrainEvents()

	// Seat 2 (the small blind) is acting and tries to move to an empty seat.
	tbl.TakeSeat("p2", 5)
	if reason := lastError(tbl.DrainEvents()); reason == "" {
		t.Error("mid-hand seat change should be rejected")
	}
	if tbl.players["p2"].Seat != 2 || tbl.seats[2] != "p2" || tbl.seats[5] != "" {
		t.Errorf("rejected seat change must not move the player, seats: %v", tbl.seats)
	}

	// The turn pointer still resolves to a live player and the round plays on.
	if tbl.actingSeat() != 2 {
		t.Fatalf("acting seat = %d, want 2", tbl.actingSeat())
	}
	if tbl.ActingPlayerID() != "p2" {
		t.Fatalf("acting player = %q, want p2", tbl.ActingPlayerID())
	}
	tbl.BetAction("p2", Call, 0)
	if reason := lastError(tbl.DrainEvents()); reason != "" {
		t.Errorf("acting player's call rejected: %s", reason)
	}
	if tbl.actingSeat() != 3 {
		t.Errorf("acting seat = %d, want 3", tbl.actingSeat())
	}

	// A folded player is no longer in the hand and may move freely.
	tbl.BetAction("p3", Fold, 0)
	tbl.TakeSeat("p3", 6)
	if tbl.players["p3"].Seat != 6 {
		t.Errorf("folded player seat = %d, want 6", tbl.players["p3"].Seat)
	}
}

func TestFirstSeatedPlayerIsDealer(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 4, 1)
	if tbl.dealerSeat != 4 {
		t.Errorf("dealer seat = %d, want 4", tbl.dealerSeat)
	}
	if !tbl.players["p1"].Dealer {
		t.Error("first seated player should hold the button")
	}
}

func TestStartHandRequiresDealerAndTwoPlayers(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1)
	tbl.DrainEvents()

	tbl.StartHand("p1")
	if reason := lastError(tbl.DrainEvents()); reason == "" {
		t.Error("starting with one player should be rejected")
	}

	seatAt(tbl, 1, 2) // p2 joins seat 2
	tbl.DrainEvents()
	tbl.StartHand("p2")
	if reason := lastError(tbl.DrainEvents()); reason == "" {
		t.Error("non-dealer start should be rejected")
	}
	if tbl.Phase() != Waiting {
		t.Fatalf("phase = %s, want waiting", tbl.Phase())
	}

	tbl.StartHand("p1")
	if tbl.Phase() != Rush {
		t.Fatalf("phase = %s, want rush", tbl.Phase())
	}
}

func TestBeginHandDeals(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2, 3)
	tbl.StartHand("p1")

	h := tbl.hand
	if h == nil {
		t.Fatal("expected a hand session")
	}
	if h.number != 1 {
		t.Errorf("hand number = %d, want 1", h.number)
	}
	if len(h.boss) != 5 || h.revealed != 3 {
		t.Errorf("boss = %d cards, %d revealed; want 5/3", len(h.boss), h.revealed)
	}
	for _, id := range []string{"p1", "p2", "p3"} {
		p := tbl.players[id]
		if len(p.Hand) != 7 || !p.InHand {
			t.Errorf("%s: hand=%d inHand=%v, want 7 cards in hand", id, len(p.Hand), p.InHand)
		}
	}
	if h.deck.Remaining() != 52-5-21 {
		t.Errorf("deck remaining = %d, want %d", h.deck.Remaining(), 52-5-21)
	}

	// Blinds: dealer seat 1, so SB seat 2, BB seat 3; pot is 15.
	if !tbl.players["p2"].SmallBlind || !tbl.players["p3"].BigBlind {
		t.Error("expected p2 small blind, p3 big blind")
	}
	if h.pot != 15 {
		t.Errorf("pot = %d, want 15", h.pot)
	}
	if h.currentBet != 10 {
		t.Errorf("current bet = %d, want 10", h.currentBet)
	}
	// The first round is anchored at the small blind.
	if tbl.actingSeat() != 2 {
		t.Errorf("acting seat = %d, want 2", tbl.actingSeat())
	}
	assertPotInvariant(t, tbl)
}

func TestBlindsSkipEmptySeats(t *testing.T) {
	t.Parallel()

	// Players at seats {1,3,5,6}, dealer seat 1: small blind must resolve
	// to seat 3 and big blind to seat 5, not seat 2.
	tbl := newTestTable()
	seatAt(tbl, 1, 3, 5, 6)
	tbl.StartHand("p1")

	if sb := tbl.hand.smallBlindSeat; sb != 3 {
		t.Errorf("small blind seat = %d, want 3", sb)
	}
	if !tbl.playerAt(5).BigBlind {
		t.Error("big blind should be seat 5")
	}
}

func TestHeadsUpDealerPostsSmallBlind(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 2, 5)
	tbl.StartHand("p1")

	if !tbl.players["p1"].SmallBlind {
		t.Error("heads-up dealer should post the small blind")
	}
	if !tbl.players["p2"].BigBlind {
		t.Error("other player should post the big blind")
	}
}

func TestMidHandSeatTakeIsNotDealtIn(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2)
	tbl.StartHand("p1")

	tbl.Join("late", "Late")
	tbl.TakeSeat("late", 4)
	late := tbl.players["late"]
	if late.InHand || len(late.Hand) != 0 {
		t.Error("mid-hand joiner must not be in the running hand")
	}
	if late.EntryHand != tbl.handNum+1 {
		t.Errorf("entry hand = %d, want %d", late.EntryHand, tbl.handNum+1)
	}
}

func TestFoldOutAwardsPotImmediately(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2, 3)
	tbl.StartHand("p1")
	tbl.DrainEvents()

	chipsBefore := tbl.players["p1"].Chips
	pot := tbl.hand.pot

	// Both blinds fold during the first betting round, leaving p1 alone.
	tbl.BetAction(actorID(t, tbl), Fold, 0) // p2 (small blind)
	tbl.BetAction(actorID(t, tbl), Fold, 0) // p3 (big blind)

	result := findResult(tbl.DrainEvents())
	if result == nil {
		t.Fatal("expected a result event")
	}
	if len(result.Winners) != 1 || result.Winners[0].PlayerID != "p1" {
		t.Fatalf("unexpected winners: %+v", result.Winners)
	}
	if got := tbl.players["p1"].Chips; got != chipsBefore+pot {
		t.Errorf("winner chips = %d, want %d", got, chipsBefore+pot)
	}
	if tbl.Phase() != Waiting {
		t.Errorf("phase = %s, want waiting", tbl.Phase())
	}
}

func TestLeaveMidTurnAdvancesActingSeat(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2, 3, 4)
	tbl.StartHand("p1")

	acting := tbl.actingSeat() // seat 2, the small blind
	leaver := tbl.playerAt(acting)
	tbl.LeaveSeat(leaver.ID)

	if tbl.Phase() != Rush {
		t.Fatalf("phase = %s, want rush", tbl.Phase())
	}
	if got := tbl.actingSeat(); got == acting || got == 0 {
		t.Errorf("acting seat should have advanced past %d, got %d", acting, got)
	}
	if !leaver.Folded {
		t.Error("mid-hand leaver should be folded")
	}
}

func TestLeaveWhileWaitingPassesButton(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 4)
	tbl.LeaveSeat("p1")
	if tbl.dealerSeat != 4 {
		t.Errorf("dealer seat = %d, want 4", tbl.dealerSeat)
	}
}

func TestDealerRotatesAfterHand(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 3, 5)
	tbl.StartHand("p1")

	// Fold the hand out to finish it quickly.
	tbl.BetAction(actorID(t, tbl), Fold, 0)
	tbl.BetAction(actorID(t, tbl), Fold, 0)

	if tbl.Phase() != Waiting {
		t.Fatalf("phase = %s, want waiting", tbl.Phase())
	}
	if tbl.dealerSeat != 3 {
		t.Errorf("dealer seat = %d, want 3", tbl.dealerSeat)
	}
}

func TestRestartClearsEverything(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2)
	tbl.StartHand("p1")
	tbl.Restart()

	if len(tbl.players) != 0 || tbl.hand != nil || tbl.handNum != 0 || tbl.dealerSeat != 0 {
		t.Error("restart should reset table to initial state")
	}
	for seat := 1; seat <= SeatCount; seat++ {
		if tbl.seats[seat] != "" {
			t.Errorf("seat %d still occupied after restart", seat)
		}
	}
}

func TestOutOfTurnActionRejected(t *testing.T) {
	t.Parallel()

	tbl := newTestTable()
	seatAt(tbl, 1, 2, 3)
	tbl.StartHand("p1")
	tbl.DrainEvents()

	// Seat 2 is acting; p1 tries to act out of turn.
	tbl.BetAction("p1", Call, 0)
	if reason := lastError(tbl.DrainEvents()); reason == "" {
		t.Error("out-of-turn action should be rejected")
	}
	if tbl.actingSeat() != 2 {
		t.Error("rejected action must not advance the turn")
	}
}
