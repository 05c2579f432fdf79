package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/adapters/rawcsv"
	"github.com/cartolab/cartolab/internal/adapters/repository"
	"github.com/cartolab/cartolab/internal/config"
	"github.com/cartolab/cartolab/internal/domain/clean"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get().Named("loader")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load .env file if present (local dev), then the regular config layers.
	if err := godotenv.Load(); err != nil {
		log.Debug(ctx, "no .env file found, using environment variables")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		log.Fatal(ctx, "DATABASE_URL is required")
	}

	store, err := repository.NewPostgresStore(ctx, dsn)
	if err != nil {
		log.Fatal(ctx, "database connection failed", logger.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal(ctx, "schema setup failed", logger.Error(err))
	}

	if err := loadClubs(ctx, cfg, store, log); err != nil {
		// Club reference data is best-effort; player rows still load.
		log.Warn(ctx, "club reference load failed", logger.Error(err))
	}

	if err := loadPlayerRounds(ctx, cfg, store, log); err != nil {
		log.Fatal(ctx, "historical load failed", logger.Error(err))
	}
}

func loadClubs(ctx context.Context, cfg *config.Config, store repository.Store, log logger.Logger) error {
	client := cartola.NewClient(
		cartola.WithBaseURL(cfg.CartolaBaseURL),
		cartola.WithTimeout(time.Duration(cfg.CartolaTimeoutSec)*time.Second),
	)
	clubsByID, err := client.Clubs(ctx)
	if err != nil {
		return err
	}

	clubs := make([]cartola.Club, 0, len(clubsByID))
	for _, club := range clubsByID {
		clubs = append(clubs, club)
	}
	n, err := store.UpsertClubs(ctx, clubs)
	if err != nil {
		return err
	}
	log.Info(ctx, "clubs upserted", logger.Int("clubs", n))
	return nil
}

func loadPlayerRounds(ctx context.Context, cfg *config.Config, store repository.Store, log logger.Logger) error {
	seasons, err := rawcsv.DiscoverSeasons(cfg.RawDataPath, cfg.MaxSeasons, cfg.RoundFilePattern)
	if err != nil {
		return err
	}

	total := 0
	for _, season := range seasons {
		var records []roster.RawRecord
		for _, file := range season.Files {
			recs, err := rawcsv.ReadFile(file, season.Year)
			if err != nil {
				log.Warn(ctx, "skipping unreadable raw file",
					logger.String("file", file), logger.Error(err))
				continue
			}
			records = append(records, recs...)
		}
		if len(records) == 0 {
			continue
		}

		rows := clean.Transform(records)
		n, err := store.UpsertPlayerRounds(ctx, rows)
		if err != nil {
			return err
		}
		total += n
		log.Info(ctx, "season loaded",
			logger.Int("year", season.Year),
			logger.Int("rows", n))
	}

	count, err := store.PlayerRoundCount(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "historical load complete",
		logger.Int("rows_upserted", total),
		logger.Int("rows_total", count))
	return nil
}
