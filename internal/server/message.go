package server

import (
	"encoding/json"
	"time"

	"github.com/oxtail-cards/oxtail/internal/game"
)

// MessageType identifies a websocket message.
type MessageType string

// Client → Server
const (
	MessageTypeJoin        MessageType = "join"
	MessageTypeTakeSeat    MessageType = "take_seat"
	MessageTypeLeaveSeat   MessageType = "leave_seat"
	MessageTypeStartHand   MessageType = "start_hand"
	MessageTypeBetAction   MessageType = "bet_action"
	MessageTypeComboUpdate MessageType = "combo_update"
	MessageTypeComboSubmit MessageType = "combo_submit"
	MessageTypeRestart     MessageType = "restart"
)

// Server → Client
const (
	MessageTypeJoined   MessageType = "joined"
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypePrivate  MessageType = "private"
	MessageTypeResult   MessageType = "result"
	MessageTypeError    MessageType = "error"
)

func (t MessageType) String() string { return string(t) }

// Message is the base websocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type JoinData struct {
	Name string `json:"name"`
}

type TakeSeatData struct {
	Seat int `json:"seat"`
}

type BetActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// ComboPick is one provisional combo card on the wire.
type ComboPick struct {
	CardID string `json:"cardId"`
	High   bool   `json:"high,omitempty"`
}

type ComboData struct {
	Picks []ComboPick `json:"picks"`
}

// Server → Client payloads

type JoinedData struct {
	PlayerID string `json:"playerId"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func selections(picks []ComboPick) []game.Selection {
	sel := make([]game.Selection, len(picks))
	for i, p := range picks {
		sel[i] = game.Selection{CardID: p.CardID, High: p.High}
	}
	return sel
}
