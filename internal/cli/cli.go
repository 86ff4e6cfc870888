// Package cli provides the command-line interface for agentsync.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/cleanarch/agentsync/internal/config"
	"github.com/cleanarch/agentsync/internal/logging"
	"github.com/cleanarch/agentsync/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "agentsync",
		Usage:   "Distribute agent definitions to project or home scope",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load()
			if err != nil {
				return ctx, err
			}
			configureColors(cmd, cfg)
			return ctx, configureLogging(cmd, cfg)
		},
		Commands: []*cli.Command{
			syncCommand(),
			scaffoldCommand(),
			validateCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// configureColors sets up color output based on CLI flags and config.
func configureColors(cmd *cli.Command, cfg *config.Config) {
	if cmd.Bool("no-color") || cfg.Output.Color == "never" {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level based on CLI flags and config.
func configureLogging(cmd *cli.Command, cfg *config.Config) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
