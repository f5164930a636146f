package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/thedoc/internal/config"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"thedoc.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Init struct {
		Name  string `help:"Project name used in the generated configuration"`
		Force bool   `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Generate struct {
		Output      string `short:"o" help:"Output directory (overrides configuration)"`
		Incremental bool   `short:"i" help:"Skip generation when no source file changed since the last run"`
		Workers     int    `short:"w" help:"Parallel file passes (overrides configuration)"`
	} `cmd:"" help:"Extract documentation comments and generate the site input tree"`

	Preview struct {
		Port int `short:"p" help:"HTTP port" default:"8000"`
	} `cmd:"" help:"Serve generated documentation locally and regenerate on change"`

	ReleaseNotes struct {
		Repo   string `short:"r" help:"Repository path" default:"."`
		Since  string `help:"Start revision (exclusive); defaults to the latest tag"`
		Name   string `help:"Release name used in the heading" default:"unreleased"`
		Output string `short:"o" help:"Write notes to a file instead of stdout"`
	} `cmd:"" name:"release-notes" help:"Build release notes from conventional-commit history"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	setupLogging(config.LogLevelInfo, config.LogFormatText)

	var err error
	switch ctx.Command() {
	case "init":
		err = runInit(CLI.Config, CLI.Init.Name, CLI.Init.Force)
	case "generate":
		err = withConfig(func(cfg *config.Config) error {
			return runGenerate(signalContext(), cfg, CLI.Generate.Output, CLI.Generate.Incremental, CLI.Generate.Workers)
		})
	case "preview":
		err = withConfig(func(cfg *config.Config) error {
			return runPreview(signalContext(), cfg, CLI.Preview.Port)
		})
	case "release-notes":
		err = runReleaseNotes(CLI.ReleaseNotes.Repo, CLI.ReleaseNotes.Since, CLI.ReleaseNotes.Name, CLI.ReleaseNotes.Output)
	case "version":
		runVersion()
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// withConfig loads the configuration and reconfigures logging from it before
// running the command.
func withConfig(run func(*config.Config) error) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)
	return run(cfg)
}

func setupLogging(level config.LogLevel, format config.LogFormat) {
	slogLevel := slog.LevelInfo
	switch level {
	case config.LogLevelDebug:
		slogLevel = slog.LevelDebug
	case config.LogLevelWarn:
		slogLevel = slog.LevelWarn
	case config.LogLevelError:
		slogLevel = slog.LevelError
	}
	if CLI.Verbose {
		slogLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}
