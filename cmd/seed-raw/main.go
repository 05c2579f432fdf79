package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cartolab/cartolab/internal/seedraw"
	"github.com/cartolab/cartolab/pkg/logger"
)

// Default configuration constants.
const (
	defaultRounds     = 10
	defaultPlayers    = 200
	defaultLatinRatio = 20
	defaultTimeout    = 5 * time.Minute
)

func main() {
	var (
		outputDir  = flag.String("out", "dados/01_raw", "Root directory for generated season data")
		seasons    = flag.String("seasons", "2022,2023,2024,2025", "Comma-separated season years")
		rounds     = flag.Int("rounds", defaultRounds, "Rounds per season")
		players    = flag.Int("players", defaultPlayers, "Players per round file")
		latinRatio = flag.Int("latin", defaultLatinRatio, "Percentage of files written as Latin-1")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	years, err := parseSeasons(*seasons)
	if err != nil {
		os.Stderr.WriteString("invalid -seasons: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &seedraw.Config{
		OutputDir:  *outputDir,
		Seasons:    years,
		Rounds:     *rounds,
		Players:    *players,
		LatinRatio: *latinRatio,
	}

	if _, err := seedraw.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func parseSeasons(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	years := make([]int, 0, len(parts))
	for _, part := range parts {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, nil
}
