package tui

import (
	"encoding/json"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/oxtail-cards/oxtail/internal/game"
	"github.com/oxtail-cards/oxtail/internal/server"
)

// Messages delivered into the Bubble Tea program by the client's read loop.
type (
	SnapshotMsg     game.Snapshot
	PrivateMsg      game.PrivateView
	ResultMsg       game.Result
	ServerErrorMsg  server.ErrorData
	DisconnectedMsg struct{ Err error }
)

// Client is the websocket side of the TUI: it writes player intents and
// pushes decoded server messages into the program via the send callback.
type Client struct {
	conn   *websocket.Conn
	logger *log.Logger

	mu sync.Mutex // guards writes; gorilla allows one concurrent writer
}

// Dial connects to the server's /ws endpoint.
func Dial(url string, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:   conn,
		logger: logger.WithPrefix("client"),
	}, nil
}

// Start launches the read loop. Decoded messages are handed to send, which is
// normally tea.Program.Send.
func (c *Client) Start(send func(tea.Msg)) {
	go c.readLoop(send)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop(send func(tea.Msg)) {
	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			send(DisconnectedMsg{Err: err})
			return
		}

		switch msg.Type {
		case server.MessageTypeSnapshot:
			var snap game.Snapshot
			if err := json.Unmarshal(msg.Data, &snap); err == nil {
				send(SnapshotMsg(snap))
			}
		case server.MessageTypePrivate:
			var view game.PrivateView
			if err := json.Unmarshal(msg.Data, &view); err == nil {
				send(PrivateMsg(view))
			}
		case server.MessageTypeResult:
			var result game.Result
			if err := json.Unmarshal(msg.Data, &result); err == nil {
				send(ResultMsg(result))
			}
		case server.MessageTypeError:
			var errData server.ErrorData
			if err := json.Unmarshal(msg.Data, &errData); err == nil {
				send(ServerErrorMsg(errData))
			}
		case server.MessageTypeJoined:
			// Nothing to do; the snapshot that follows carries the state.
		default:
			c.logger.Debug("Ignoring message", "type", msg.Type)
		}
	}
}

func (c *Client) write(msgType server.MessageType, data interface{}) error {
	msg, err := server.NewMessage(msgType, data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Join registers this client's player with the server.
func (c *Client) Join(name string) error {
	return c.write(server.MessageTypeJoin, server.JoinData{Name: name})
}

// TakeSeat requests a seat.
func (c *Client) TakeSeat(seat int) error {
	return c.write(server.MessageTypeTakeSeat, server.TakeSeatData{Seat: seat})
}

// LeaveSeat vacates the player's seat.
func (c *Client) LeaveSeat() error {
	return c.write(server.MessageTypeLeaveSeat, struct{}{})
}

// StartHand asks the server to deal the next hand.
func (c *Client) StartHand() error {
	return c.write(server.MessageTypeStartHand, struct{}{})
}

// Bet sends a betting action.
func (c *Client) Bet(action string, amount int) error {
	return c.write(server.MessageTypeBetAction, server.BetActionData{Action: action, Amount: amount})
}

// ComboUpdate sends the provisional combo selection.
func (c *Client) ComboUpdate(picks []server.ComboPick) error {
	return c.write(server.MessageTypeComboUpdate, server.ComboData{Picks: picks})
}

// ComboSubmit locks in the current combo.
func (c *Client) ComboSubmit(picks []server.ComboPick) error {
	return c.write(server.MessageTypeComboSubmit, server.ComboData{Picks: picks})
}

// Restart resets the whole table.
func (c *Client) Restart() error {
	return c.write(server.MessageTypeRestart, struct{}{})
}
