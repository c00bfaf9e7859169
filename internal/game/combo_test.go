package game

import (
	"testing"

	"github.com/oxtail-cards/oxtail/internal/deck"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(rank, suit)
}

func TestCardValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		card deck.Card
		high bool
		want int
	}{
		{card(deck.Ace, deck.Spades), false, 1},
		{card(deck.Ace, deck.Spades), true, 11},
		{card(deck.Two, deck.Hearts), false, 2},
		{card(deck.Ten, deck.Clubs), false, 10},
		{card(deck.Jack, deck.Diamonds), false, 11},
		{card(deck.Queen, deck.Diamonds), false, 12},
		{card(deck.King, deck.Diamonds), false, 13},
		// High mode is only meaningful for Aces.
		{card(deck.King, deck.Diamonds), true, 13},
	}
	for _, tc := range cases {
		if got := CardValue(tc.card, tc.high); got != tc.want {
			t.Errorf("CardValue(%v, high=%v) = %d, want %d", tc.card, tc.high, got, tc.want)
		}
	}
}

func TestFaceCardsSumTo36(t *testing.T) {
	t.Parallel()

	sel := []SelectedCard{
		{Card: card(deck.Jack, deck.Spades)},
		{Card: card(deck.Queen, deck.Spades)},
		{Card: card(deck.King, deck.Spades)},
	}
	if got := ComboTotal(sel); got != 36 {
		t.Errorf("J+Q+K = %d, want 36", got)
	}
}

func TestBossTotalCountsAcesLow(t *testing.T) {
	t.Parallel()

	boss := []deck.Card{
		card(deck.Ace, deck.Spades),
		card(deck.King, deck.Hearts),
		card(deck.Five, deck.Clubs),
	}
	if got := BossTotal(boss); got != 19 {
		t.Errorf("boss total = %d, want 19", got)
	}
}

func TestSanitizeSelection(t *testing.T) {
	t.Parallel()

	p := &Player{
		Hand: []deck.Card{
			card(deck.Ace, deck.Spades),
			card(deck.Seven, deck.Hearts),
		},
	}

	sel := sanitizeSelection(p, []Selection{
		{CardID: "AS", High: true},
		{CardID: "AS", High: false}, // duplicate, dropped
		{CardID: "7H", High: true},  // not an Ace, forced low
		{CardID: "KC", High: false}, // not held, dropped
	})

	if len(sel) != 2 {
		t.Fatalf("expected 2 cards after sanitizing, got %d", len(sel))
	}
	if sel[0].Card.ID != "AS" || !sel[0].High {
		t.Errorf("expected high ace first, got %+v", sel[0])
	}
	if sel[1].Card.ID != "7H" || sel[1].High {
		t.Errorf("expected low seven second, got %+v", sel[1])
	}
}

func TestSuitMatchesCappedByBossSuits(t *testing.T) {
	t.Parallel()

	// Two revealed heart boss cards can match at most 2 player hearts,
	// even if the player committed 3.
	boss := []deck.Card{
		card(deck.Two, deck.Hearts),
		card(deck.Three, deck.Hearts),
		card(deck.Four, deck.Spades),
	}
	sel := []SelectedCard{
		{Card: card(deck.Five, deck.Hearts)},
		{Card: card(deck.Six, deck.Hearts)},
		{Card: card(deck.Seven, deck.Hearts)},
	}
	if got := suitMatches(sel, boss); got != 2 {
		t.Errorf("suit matches = %d, want 2", got)
	}
}

func TestComboScoreRanking(t *testing.T) {
	t.Parallel()

	boss := []deck.Card{
		card(deck.Ten, deck.Spades),
		card(deck.Five, deck.Hearts),
	} // total 15

	under := scoreCombo([]SelectedCard{{Card: card(deck.King, deck.Clubs)}}, boss)  // 13, diff 2
	over := scoreCombo([]SelectedCard{{Card: card(deck.Seven, deck.Clubs)}, {Card: card(deck.Ten, deck.Diamonds)}}, boss) // 17, diff 2
	closer := scoreCombo([]SelectedCard{{Card: card(deck.Ten, deck.Diamonds)}, {Card: card(deck.Four, deck.Clubs)}}, boss) // 14, diff 1

	if !closer.beats(under) {
		t.Error("smaller diff should win")
	}
	if !under.beats(over) {
		t.Error("under should beat over on equal diff")
	}
	if over.beats(under) {
		t.Error("over must not beat under on equal diff")
	}

	// Equal diff and under: more suit matches wins.
	suited := scoreCombo([]SelectedCard{{Card: card(deck.King, deck.Spades)}}, boss) // 13, diff 2, 1 suit match
	if !suited.beats(under) {
		t.Error("more suit matches should win the final tie-break")
	}
	if !suited.ties(suited) {
		t.Error("a score should tie itself")
	}
}
