package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/oxtail-cards/oxtail/internal/game"
	"github.com/oxtail-cards/oxtail/internal/randutil"
	"github.com/oxtail-cards/oxtail/internal/server"
)

// ServeCmd runs the websocket game server.
type ServeCmd struct {
	Config string `kong:"default='oxtail.hcl',help='HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(c.Debug, cfg.Server.LogLevel)

	// Seed precedence: flag, then config, then the wall clock.
	var seed int64
	switch {
	case c.Seed != nil:
		seed = *c.Seed
	case cfg.Game.Seed != 0:
		seed = cfg.Game.Seed
	default:
		_, seed = randutil.NewFromTime()
	}
	logger.Info("Seeding RNG", "seed", seed)

	addr := cfg.Addr()
	if c.Addr != "" {
		addr = c.Addr
	}

	table := game.NewTable(cfg.GameConfig(), randutil.New(seed))
	srv := server.NewServer(addr, logger)
	svc := server.NewGameService(table, srv, logger)
	if timeout := cfg.TurnTimeout(); timeout > 0 {
		svc.SetWatchdog(server.NewWatchdog(svc, quartz.NewReal(), timeout, logger))
	}
	srv.SetGameService(svc)

	logger.Info("Starting oxtail server",
		"addr", addr,
		"small_blind", cfg.Game.SmallBlind,
		"big_blind", cfg.Game.BigBlind,
		"starting_chips", cfg.Game.StartingChips,
		"turn_timeout", cfg.TurnTimeout())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		return srv.Stop()
	})

	return g.Wait()
}
