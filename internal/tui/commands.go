package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oxtail-cards/oxtail/internal/server"
)

// commandKind enumerates the player intents typed into the input box.
type commandKind int

const (
	cmdNone commandKind = iota
	cmdSeat
	cmdLeave
	cmdStart
	cmdFold
	cmdCheck
	cmdCall
	cmdRaise
	cmdCombo
	cmdSubmit
	cmdRestart
	cmdClear
	cmdQuit
)

// command is one parsed input line.
type command struct {
	kind   commandKind
	seat   int
	amount int
	picks  []server.ComboPick
}

// parseCommand parses an input line. Card ids are case-insensitive; a
// trailing "!" on a card counts it high ("as!" plays the ace of spades as 11).
func parseCommand(input string) (command, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(parts) == 0 {
		return command{kind: cmdNone}, nil
	}

	switch parts[0] {
	case "seat", "sit":
		if len(parts) != 2 {
			return command{}, fmt.Errorf("usage: seat <1-6>")
		}
		seat, err := strconv.Atoi(parts[1])
		if err != nil {
			return command{}, fmt.Errorf("usage: seat <1-6>")
		}
		return command{kind: cmdSeat, seat: seat}, nil

	case "leave":
		return command{kind: cmdLeave}, nil

	case "start", "deal":
		return command{kind: cmdStart}, nil

	case "fold":
		return command{kind: cmdFold}, nil

	case "check":
		return command{kind: cmdCheck}, nil

	case "call":
		return command{kind: cmdCall}, nil

	case "raise":
		if len(parts) != 2 {
			return command{}, fmt.Errorf("usage: raise <amount>")
		}
		amount, err := strconv.Atoi(parts[1])
		if err != nil || amount <= 0 {
			return command{}, fmt.Errorf("usage: raise <amount>")
		}
		return command{kind: cmdRaise, amount: amount}, nil

	case "combo", "pick":
		return command{kind: cmdCombo, picks: parsePicks(parts[1:])}, nil

	case "submit":
		return command{kind: cmdSubmit}, nil

	case "restart":
		return command{kind: cmdRestart}, nil

	case "clear":
		return command{kind: cmdClear}, nil

	case "quit", "exit":
		return command{kind: cmdQuit}, nil
	}

	return command{}, fmt.Errorf("unknown command %q", parts[0])
}

// parsePicks converts card tokens into wire picks. "combo" with no tokens is
// a valid empty selection.
func parsePicks(tokens []string) []server.ComboPick {
	picks := make([]server.ComboPick, 0, len(tokens))
	for _, tok := range tokens {
		high := strings.HasSuffix(tok, "!")
		picks = append(picks, server.ComboPick{
			CardID: strings.ToUpper(strings.TrimSuffix(tok, "!")),
			High:   high,
		})
	}
	return picks
}
