package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/oxtail-cards/oxtail/internal/tui"
)

// PlayCmd connects to a server and runs the interactive client.
type PlayCmd struct {
	Server string `kong:"default='ws://localhost:8080/ws',help='WebSocket server URL'"`
	Name   string `kong:"help='Display name (defaults to $USER)'"`
	Debug  string `kong:"help='Write debug logs to this file'"`
}

func (c *PlayCmd) Run() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "player"
	}

	// The TUI owns the terminal; logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if c.Debug != "" {
		f, err := os.OpenFile(c.Debug, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	// Pin lipgloss to the terminal's real color capabilities.
	lipgloss.SetColorProfile(termenv.ColorProfile())

	client, err := tui.Dial(c.Server, logger)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.Server, err)
	}
	defer client.Close()

	model := tui.NewModel(name, client, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	client.Start(program.Send)
	if err := client.Join(name); err != nil {
		return fmt.Errorf("join as %s: %w", name, err)
	}

	_, err = program.Run()
	return err
}
