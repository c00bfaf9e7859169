// Package game implements the core table engine for the boss-battle card
// game: a six-seat, turn-based game where players bet through staged boss
// reveals, privately assemble a scored combo from their hand, and are paid
// from a shared pot according to how closely their combo approaches the
// boss total without exceeding it.
//
// The main type is Table, which owns all player, seat, deck and hand-session
// state. Intents (Join, TakeSeat, StartHand, BetAction, ComboSubmit, ...)
// are synchronous state transitions; each one appends typed Events to an
// internal queue that the host drains with DrainEvents. The engine knows
// nothing about transports: it operates purely on logical player ids.
//
// A Table is a single-writer state machine. Hosts embedding it in a
// concurrent process must serialize intents, one mutex or goroutine per
// table; no operation blocks or suspends internally.
//
// # Hand lifecycle
//
// waiting → rush → charge → stomp → combo → [oxtail → combo]* → waiting
//
// Each betting phase reveals one more boss card. The combo phase runs a
// sequential, turn-gated submission queue; a scoring tie triggers the
// oxtail sudden-death loop while cards remain in the deck.
//
// # Deterministic testing
//
// Pass a seeded *rand.Rand to NewTable for reproducible shuffles, or stack
// the deal exactly with deck.NewStacked via the table's deck factory.
package game
