package game

import "fmt"

// Phase represents the stage of the current hand. Waiting means no hand
// session exists.
type Phase int

const (
	Waiting Phase = iota
	Rush
	Charge
	Stomp
	Combo
	Oxtail
)

func (p Phase) String() string {
	return [...]string{"waiting", "rush", "charge", "stomp", "combo", "oxtail"}[p]
}

// IsBetting returns true for phases that run a betting round.
func (p Phase) IsBetting() bool {
	switch p {
	case Rush, Charge, Stomp, Oxtail:
		return true
	}
	return false
}

// Action represents a betting action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction parses a wire action name.
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// turnState is a tagged variant for the two distinct "who acts next"
// protocols: betting rounds walk seats, the combo phase walks a fixed
// submission queue.
type turnState interface {
	isTurnState()
}

// bettingTurn marks the seat due to act in a betting round.
type bettingTurn struct {
	Seat int
}

// comboTurn marks the position in the combo submission queue due to act.
type comboTurn struct {
	Index int
}

func (bettingTurn) isTurnState() {}
func (comboTurn) isTurnState()   {}
