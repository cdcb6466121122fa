package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/app"
	"github.com/kapu/pokedex-go/internal/config"
	"github.com/kapu/pokedex-go/internal/constants"
	"github.com/kapu/pokedex-go/internal/util"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile  string
		logLevel string
	)

	flagSet := pflag.NewFlagSet("pokedex", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "load configuration from this file instead of ./.env")
	flagSet.StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	showVersion := flagSet.BoolP("version", "v", false, "print the version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if *showVersion {
		fmt.Printf("pokedex %s\n", version)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// Load configuration
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	// Initialize logger
	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Pokédex starting...",
		zap.String("version", version),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("storage", cfg.Storage.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	buildCtx, buildCancel := context.WithTimeout(ctx, constants.BootstrapConfig.Timeout)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		return err
	}
	defer container.Close()

	model, err := container.NewModel(ctx)
	if err != nil {
		logger.Error("Failed to initialize UI", zap.Error(err))
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("UI error", zap.Error(err))
		return err
	}

	logger.Info("Shutdown complete")
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pokedex: browse Pokémon by type and keep track of the ones you caught.

Configuration is read from the environment and an optional .env file.
The caught list is stored in a JSON file by default; set STORAGE_BACKEND
to redis, postgres or memory to keep it elsewhere.

Usage:
  pokedex [flags]

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
