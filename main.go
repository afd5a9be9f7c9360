package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/valentine/internal/config"
	"github.com/iburimskiy/valentine/internal/game"
	"github.com/iburimskiy/valentine/internal/music"
	"github.com/iburimskiy/valentine/internal/valentine"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "valentine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	track := music.NewTrack(cfg.TrackURL, &http.Client{Timeout: cfg.FetchTimeout}, music.Speaker{}, logger)
	track.Start(ctx)
	defer func() {
		if err := track.Close(); err != nil {
			logger.Warn("close track", slog.String("error", err.Error()))
		}
	}()

	surface := valentine.New(valentine.Options{
		HeartCap:       cfg.HeartCap,
		SpawnInterval:  cfg.SpawnInterval,
		ReapInterval:   cfg.ReapInterval,
		RevealInterval: cfg.RevealInterval,
		Player:         track,
		Logger:         logger,
	})
	if cfg.Autoplay {
		surface.SetMusic(true)
	}

	g := game.New(surface, track, game.NativePrompt, logger)
	defer g.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Valentine - type your name, Enter: send, Ctrl+M: music, F2: prompt, Esc: quit")
	ebiten.SetTPS(config.TPS)

	logger.Info("starting", slog.String("track", cfg.TrackURL), slog.Int("heart_cap", cfg.HeartCap))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
