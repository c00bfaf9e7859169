package game

import (
	"fmt"

	"github.com/oxtail-cards/oxtail/internal/deck"
)

const holeCards = 7
const bossCards = 5
const bossStartRevealed = 3

// handSession is the transient state of one hand, created by beginHand and
// destroyed by endHand. Exactly one session exists while a hand runs.
type handSession struct {
	number int
	phase  Phase
	deck   *deck.Deck

	boss        []deck.Card
	revealed    int // length of the publicly disclosed boss prefix
	bossVisible bool

	pot        int
	sidePot    int
	currentBet int
	minRaise   int

	smallBlindSeat int

	turn  turnState
	acted map[int]bool // seats that acted since the last raise

	awaiting map[string]bool // players yet to submit a combo
	order    []int           // combo submission order (seats)

	result *Result
}

// beginHand starts the next hand: fresh deck, boss draw, seven cards per
// participant, blinds, and the first betting round anchored at the small
// blind seat.
func (t *Table) beginHand() {
	t.handNum++
	for _, p := range t.players {
		p.resetHand()
	}

	h := &handSession{
		number:   t.handNum,
		phase:    Rush,
		deck:     t.newDeck(),
		revealed: bossStartRevealed,
		minRaise: t.cfg.RaiseStep,
		acted:    make(map[int]bool),
	}
	t.hand = h

	h.boss = h.deck.DrawN(bossCards)

	participants := t.eligibleSeats(t.handNum)
	for _, seat := range participants {
		p := t.playerAt(seat)
		p.Hand = h.deck.DrawN(holeCards)
		p.InHand = true
	}
	h.bossVisible = true

	t.postBlinds(participants)
	t.startBettingRound()
}

// postBlinds assigns and posts the blinds. Heads-up the dealer posts the
// small blind; otherwise the small blind is the next participant clockwise
// from the dealer and the big blind follows it. Posting uses the ordinary
// commitment path, so a short stack can be blinded all-in.
func (t *Table) postBlinds(participants []int) {
	h := t.hand

	// Heads-up the dealer posts the small blind. Otherwise the blinds are
	// the next two participant seats clockwise from the dealer. ordered[0]
	// is the dealer's own seat when the dealer is playing this hand.
	var sbSeat, bbSeat int
	ordered := seatsFrom(t.dealerSeat, participants)
	if len(participants) == 2 || ordered[0] != t.dealerSeat {
		sbSeat, bbSeat = ordered[0], ordered[1]
	} else {
		sbSeat, bbSeat = ordered[1], ordered[2]
	}

	sb := t.playerAt(sbSeat)
	bb := t.playerAt(bbSeat)
	sb.SmallBlind = true
	bb.BigBlind = true
	h.smallBlindSeat = sbSeat

	t.commit(sb, t.cfg.SmallBlind)
	t.commit(bb, t.cfg.BigBlind)
	h.currentBet = t.cfg.BigBlind
}

// commit moves chips from a player's stack into their round and hand
// commitments, capped by the stack, and recomputes the pots.
func (t *Table) commit(p *Player, amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	t.hand.pot, t.hand.sidePot = computePots(t.allPlayers())
	return amount
}

// startBettingRound opens a betting round anchored at the small-blind seat.
// If nobody can act (everyone all-in), the round completes immediately.
func (t *Table) startBettingRound() {
	h := t.hand
	h.acted = make(map[int]bool)

	seat := t.firstBettingSeat(h.smallBlindSeat)
	h.turn = bettingTurn{Seat: seat}
	if seat == 0 || t.bettingComplete() {
		t.finishBettingRound()
	}
}

// BetAction applies a betting action for a player. Any action from a player
// who is not the acting seat, not in the hand, or already folded is rejected
// without state change.
func (t *Table) BetAction(playerID string, action Action, amount int) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "join the table first")
		return
	}
	h := t.hand
	if h == nil || !h.phase.IsBetting() {
		t.fail(playerID, "no betting round in progress")
		return
	}
	if !p.Active() {
		t.fail(playerID, "you are not in this hand")
		return
	}
	turn, ok := h.turn.(bettingTurn)
	if !ok || turn.Seat != p.Seat {
		t.fail(playerID, "not your turn")
		return
	}

	switch action {
	case Fold:
		t.foldOut(p, p.Seat)
		if t.hand != nil {
			t.broadcast()
		}
		return

	case Check:
		if p.Bet != h.currentBet {
			t.fail(playerID, fmt.Sprintf("cannot check, %d to call", h.currentBet-p.Bet))
			return
		}

	case Call:
		if p.Bet >= h.currentBet {
			t.fail(playerID, "nothing to call")
			return
		}
		t.commit(p, h.currentBet-p.Bet)

	case Raise:
		if err := t.applyRaise(p, amount); err != nil {
			t.fail(playerID, err.Error())
			return
		}

	default:
		t.fail(playerID, "unknown action")
		return
	}

	h.acted[p.Seat] = true
	t.afterBetAction(p.Seat)
	t.broadcast()
}

// applyRaise validates and applies a raise. The effective raise is the
// requested amount floored to a step multiple, capped at the largest step
// multiple affordable after covering the call; a raise is rejected entirely
// if the player cannot cover at least one step beyond the call.
func (t *Table) applyRaise(p *Player, amount int) error {
	h := t.hand
	step := t.cfg.RaiseStep

	if p.Chips <= 0 {
		return fmt.Errorf("no chips left to raise")
	}
	if amount < step {
		return fmt.Errorf("raise must be at least %d", step)
	}

	callAmount := h.currentBet - p.Bet
	affordable := (p.Chips - callAmount) / step * step
	if affordable < step {
		return fmt.Errorf("cannot cover the minimum raise of %d", step)
	}

	// Both the request and the affordable maximum are floored to step
	// multiples; the effective raise is the smaller of the two.
	raise := amount / step * step
	if raise > affordable {
		raise = affordable
	}

	t.commit(p, callAmount+raise)
	h.currentBet = p.Bet
	if raise > step {
		h.minRaise = raise
	} else {
		h.minRaise = step
	}

	// A raise obligates everyone else to act again.
	h.acted = map[int]bool{p.Seat: true}
	return nil
}

// afterBetAction advances the turn or closes the round after a non-fold
// action from the given seat.
func (t *Table) afterBetAction(seat int) {
	if t.bettingComplete() {
		t.finishBettingRound()
		return
	}
	t.hand.turn = bettingTurn{Seat: t.nextBettingSeat(seat)}
}

// bettingComplete reports whether the current betting round is done: at most
// one active player remains, or every active player with a non-zero stack
// has acted since the last raise and matched the current bet. All-in players
// are exempt from the match requirement.
func (t *Table) bettingComplete() bool {
	h := t.hand
	active := t.activePlayers()
	if len(active) <= 1 {
		return true
	}
	for _, p := range active {
		if p.Chips == 0 {
			continue
		}
		if !h.acted[p.Seat] || p.Bet != h.currentBet {
			return false
		}
	}
	return true
}

// finishBettingRound resets the per-round betting state and advances the
// phase: rush and charge each reveal one more boss card, stomp and oxtail
// enter the combo phase.
func (t *Table) finishBettingRound() {
	h := t.hand
	for _, p := range t.players {
		p.Bet = 0
	}
	h.currentBet = 0
	h.minRaise = t.cfg.RaiseStep
	h.acted = make(map[int]bool)

	switch h.phase {
	case Rush:
		h.phase = Charge
		h.revealed = 4
		t.startBettingRound()
	case Charge:
		h.phase = Stomp
		h.revealed = 5
		t.startBettingRound()
	case Stomp, Oxtail:
		t.enterCombo()
	}
}

// checkFoldOut resolves the hand if at most one active player remains.
// Returns true if the hand ended.
func (t *Table) checkFoldOut() bool {
	if t.hand == nil {
		return true
	}
	active := t.activePlayers()
	switch len(active) {
	case 1:
		t.defaultAward(active[0])
		return true
	case 0:
		t.endHand(Result{
			HandNum:     t.hand.number,
			BossTotal:   BossTotal(t.hand.boss[:t.hand.revealed]),
			Description: "everyone left the hand; the pot is forfeit",
		})
		return true
	}
	return false
}

// defaultAward pays the entire pot (main and side together) to the single
// remaining active player, regardless of phase.
func (t *Table) defaultAward(p *Player) {
	h := t.hand
	total := h.pot + h.sidePot
	p.Chips += total
	t.endHand(Result{
		HandNum:   h.number,
		BossTotal: BossTotal(h.boss[:h.revealed]),
		Winners:   []Winner{{PlayerID: p.ID, Name: p.Name, Seat: p.Seat, Payout: total}},
		Description: fmt.Sprintf("%s wins %d uncontested", p.Name, total),
	})
}

// endHand emits the result, destroys the hand session, rotates the dealer
// button to the next occupied seat, and clears all per-hand player state.
func (t *Table) endHand(result Result) {
	t.hand.result = &result
	t.emit(ResultEvent{Result: result})
	t.hand = nil

	t.setDealer(t.nextOccupiedSeat(t.dealerSeat))
	for _, p := range t.players {
		p.resetHand()
	}
	t.broadcast()
}
