package game

// computePots derives the main and side pot from every player's total
// commitment. The main pot is the sum of all total bets unless an active
// player is all-in, in which case contributions above the shortest all-in
// stack's cap spill into the side pot. Recomputed after every commitment.
func computePots(players []*Player) (pot, side int) {
	cap := -1
	for _, p := range players {
		if p.Active() && p.Chips == 0 {
			if cap == -1 || p.TotalBet < cap {
				cap = p.TotalBet
			}
		}
	}

	if cap == -1 {
		for _, p := range players {
			pot += p.TotalBet
		}
		return pot, 0
	}

	for _, p := range players {
		if p.TotalBet <= cap {
			pot += p.TotalBet
		} else {
			pot += cap
			side += p.TotalBet - cap
		}
	}
	return pot, side
}
