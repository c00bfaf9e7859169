package game

import (
	"fmt"
	"strings"
)

// enterCombo opens the combo phase: every active player is placed in the
// waiting set and the submission order is fixed clockwise from the small
// blind seat. Submission is sequential and turn-gated.
func (t *Table) enterCombo() {
	h := t.hand
	h.phase = Combo
	h.awaiting = make(map[string]bool)

	var seats []int
	for _, p := range t.activePlayers() {
		h.awaiting[p.ID] = true
		seats = append(seats, p.Seat)
	}
	h.order = seatsFrom(h.smallBlindSeat, seats)
	h.turn = comboTurn{Index: 0}

	if len(h.order) == 0 {
		t.evaluate()
	}
}

// ComboUpdate revises a player's provisional selection. Unlike submission it
// is not turn-gated: any seated player holding cards may update at any time.
// The selection is sanitized and stored; nothing else changes.
func (t *Table) ComboUpdate(playerID string, picks []Selection) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "join the table first")
		return
	}
	if !p.Seated() || len(p.Hand) == 0 {
		t.fail(playerID, "no cards to select from")
		return
	}

	sel := sanitizeSelection(p, picks)
	p.Selection = p.Selection[:0]
	for _, s := range sel {
		p.Selection = append(p.Selection, Selection{CardID: s.Card.ID, High: s.High})
	}
	t.broadcast()
}

// ComboSubmit locks in a player's combo. Only the player at the head of the
// submission queue may submit, and only while still in the waiting set. A
// combo whose total exceeds the boss total is rejected.
func (t *Table) ComboSubmit(playerID string, picks []Selection) {
	p, ok := t.players[playerID]
	if !ok {
		t.fail(playerID, "join the table first")
		return
	}
	h := t.hand
	if h == nil || h.phase != Combo {
		t.fail(playerID, "no combo phase in progress")
		return
	}
	turn, ok := h.turn.(comboTurn)
	if !ok || turn.Index >= len(h.order) || h.order[turn.Index] != p.Seat {
		t.fail(playerID, "not your turn to submit")
		return
	}
	if !h.awaiting[playerID] {
		t.fail(playerID, "combo already submitted")
		return
	}

	sel := sanitizeSelection(p, picks)
	boss := h.boss[:h.revealed]
	if total := ComboTotal(sel); total > BossTotal(boss) {
		t.fail(playerID, fmt.Sprintf("combo total %d exceeds the boss total %d", total, BossTotal(boss)))
		return
	}

	p.Submitted = sel
	p.Selection = p.Selection[:0]
	for _, s := range sel {
		p.Selection = append(p.Selection, Selection{CardID: s.Card.ID, High: s.High})
	}
	delete(h.awaiting, playerID)
	t.advanceComboQueue()
	if t.hand != nil {
		t.broadcast()
	}
}

// advanceComboQueue moves the submission pointer to the next waiting active
// player, running evaluation once nobody is left.
func (t *Table) advanceComboQueue() {
	h := t.hand
	turn, ok := h.turn.(comboTurn)
	if !ok {
		return
	}
	for idx := turn.Index + 1; idx < len(h.order); idx++ {
		p := t.playerAt(h.order[idx])
		if p != nil && p.Active() && h.awaiting[p.ID] {
			h.turn = comboTurn{Index: idx}
			return
		}
	}
	t.evaluate()
}

// evaluate scores every contender against the revealed boss prefix and
// resolves the hand: a single best combo takes the pot, a tie extends into
// sudden death while cards remain, and a tie on an exhausted deck splits
// the pot.
func (t *Table) evaluate() {
	h := t.hand
	contenders := t.activePlayers()
	if t.checkFoldOut() {
		return
	}

	boss := h.boss[:h.revealed]
	best := []*Player{contenders[0]}
	bestScore := scoreCombo(contenders[0].Submitted, boss)
	for _, p := range contenders[1:] {
		s := scoreCombo(p.Submitted, boss)
		if s.beats(bestScore) {
			best = []*Player{p}
			bestScore = s
		} else if s.ties(bestScore) {
			best = append(best, p)
		}
	}

	if len(best) == 1 {
		t.awardPot(best[0], bestScore)
		return
	}
	if h.deck.IsEmpty() {
		t.splitPot(best)
		return
	}
	t.suddenDeath()
}

// awardPot pays the full pot to the single winner and ends the hand.
func (t *Table) awardPot(p *Player, s comboScore) {
	h := t.hand
	total := h.pot + h.sidePot
	p.Chips += total
	t.endHand(Result{
		HandNum:   h.number,
		BossTotal: BossTotal(h.boss[:h.revealed]),
		Winners:   []Winner{{PlayerID: p.ID, Name: p.Name, Seat: p.Seat, Payout: total}},
		Description: fmt.Sprintf("%s beats the boss by closest margin (off by %d) and wins %d",
			p.Name, s.diff, total),
	})
}

// splitPot divides the pot evenly across tied winners using integer
// division. The floored remainder is not paid out to anyone.
func (t *Table) splitPot(winners []*Player) {
	h := t.hand
	total := h.pot + h.sidePot
	share := total / len(winners)

	result := Result{
		HandNum:   h.number,
		BossTotal: BossTotal(h.boss[:h.revealed]),
	}
	names := make([]string, 0, len(winners))
	for _, p := range winners {
		p.Chips += share
		result.Winners = append(result.Winners, Winner{
			PlayerID: p.ID, Name: p.Name, Seat: p.Seat, Payout: share,
		})
		names = append(names, p.Name)
	}
	result.Description = fmt.Sprintf("deck exhausted; %s split the pot for %d each",
		strings.Join(names, ", "), share)
	t.endHand(result)
}

// suddenDeath extends a tied hand: one more boss card is drawn and revealed
// and a fresh betting round runs before combos are resubmitted. Provisional
// selections are preserved across the re-entry into the combo phase.
func (t *Table) suddenDeath() {
	h := t.hand
	card, ok := h.deck.Draw()
	if !ok {
		t.splitPot(t.activePlayers())
		return
	}
	h.boss = append(h.boss, card)
	h.revealed = len(h.boss)
	h.phase = Oxtail
	t.startBettingRound()
}
