package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/mathduel/internal/config"
	"github.com/udisondev/mathduel/internal/game/battle"
	"github.com/udisondev/mathduel/internal/game/progression"
	"github.com/udisondev/mathduel/internal/rng"
)

const DefaultConfigPath = "config/mathduel.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfgPath := DefaultConfigPath
	if p := os.Getenv("MATHDUEL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if lvl := os.Getenv("MATHDUEL_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	// Logs go to stderr so they don't interleave with the game on stdout.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("mathduel starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"rounds", cfg.Settings.Rounds,
		"seconds_per_round", cfg.Settings.SecondsPerRound)

	game, err := battle.NewGame(rng.New(cfg.Seed), cfg.Settings, progression.NewProfile())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	lines := make(chan string)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return pumpLines(gctx, os.Stdin, lines)
	})

	g.Go(func() error {
		t := newTerminal(os.Stdout, game, cfg.Boss)
		return t.Run(gctx, lines)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("mathduel stopped", "gold", game.Profile().Gold())
	return nil
}

// pumpLines forwards lines from r until ctx is done or r is exhausted,
// then closes out.
//
// A blocked read on stdin cannot be interrupted, so the scanner runs in
// its own goroutine and is abandoned on shutdown.
func pumpLines(ctx context.Context, r io.Reader, out chan<- string) error {
	defer close(out)

	raw := make(chan string)
	done := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case raw <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		case line := <-raw:
			select {
			case out <- line:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
