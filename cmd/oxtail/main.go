package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the game server"`
	Play    PlayCmd          `cmd:"" help:"Connect to a server as a player"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("oxtail"),
		kong.Description("Six-seat boss-battle card game server and client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newLogger builds the process logger used by both commands.
func newLogger(debug bool, level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})

	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case level != "":
		if parsed, err := log.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		}
	}
	return logger
}
