package game

import "github.com/oxtail-cards/oxtail/internal/deck"

// CardValue returns the combo value of a card. Aces count 1 low or 11 high;
// every other rank counts its face value (J/Q/K are 11/12/13).
func CardValue(c deck.Card, high bool) int {
	if c.IsAce() && high {
		return 11
	}
	return int(c.Rank)
}

// BossTotal sums the revealed boss cards. Aces always count low for the boss.
func BossTotal(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += CardValue(c, false)
	}
	return total
}

// ComboTotal sums a locked combo.
func ComboTotal(sel []SelectedCard) int {
	total := 0
	for _, s := range sel {
		total += CardValue(s.Card, s.High)
	}
	return total
}

// sanitizeSelection resolves provisional picks against the player's hand:
// references to cards not held are dropped, duplicate card ids are
// de-duplicated (first occurrence wins), and high mode is forced low for
// anything that is not an Ace.
func sanitizeSelection(p *Player, picks []Selection) []SelectedCard {
	sel := make([]SelectedCard, 0, len(picks))
	seen := make(map[string]bool, len(picks))
	for _, pick := range picks {
		if seen[pick.CardID] {
			continue
		}
		card, ok := p.holds(pick.CardID)
		if !ok {
			continue
		}
		seen[pick.CardID] = true
		sel = append(sel, SelectedCard{Card: card, High: pick.High && card.IsAce()})
	}
	return sel
}

// suitMatches counts a greedy one-to-one matching between the combo's suits
// and the revealed boss cards' suits. Each boss card is countable at most
// once, so a suit can never be credited beyond how many boss cards carry it.
func suitMatches(sel []SelectedCard, boss []deck.Card) int {
	bossSuits := make(map[deck.Suit]int, 4)
	for _, c := range boss {
		bossSuits[c.Suit]++
	}
	matches := 0
	for _, s := range sel {
		if bossSuits[s.Card.Suit] > 0 {
			bossSuits[s.Card.Suit]--
			matches++
		}
	}
	return matches
}

// comboScore is the three-key ranking of a submitted combo against the boss.
type comboScore struct {
	diff  int  // primary: smaller wins
	under bool // tie-break: at-or-under beats over
	suits int  // tie-break: more suit matches wins
}

func scoreCombo(sel []SelectedCard, boss []deck.Card) comboScore {
	bossTotal := BossTotal(boss)
	total := ComboTotal(sel)
	diff := bossTotal - total
	if diff < 0 {
		diff = -diff
	}
	return comboScore{
		diff:  diff,
		under: total <= bossTotal,
		suits: suitMatches(sel, boss),
	}
}

// beats reports whether s ranks strictly better than o.
func (s comboScore) beats(o comboScore) bool {
	if s.diff != o.diff {
		return s.diff < o.diff
	}
	if s.under != o.under {
		return s.under
	}
	return s.suits > o.suits
}

func (s comboScore) ties(o comboScore) bool {
	return s.diff == o.diff && s.under == o.under && s.suits == o.suits
}
