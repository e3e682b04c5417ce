package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"roster-app/internal/config"
	"roster-app/internal/seed"
	"roster-app/internal/status"
	"roster-app/internal/store"
	"roster-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	ctx := context.Background()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve time zone")
	}

	slot, err := openSlot(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", string(cfg.Backend())).Msg("failed to open roster slot")
	}
	log.Info().Str("backend", string(cfg.Backend())).Str("slot", cfg.SlotName).Msg("roster slot opened")

	writerCfg := store.DefaultWriterConfig()
	writerCfg.MaxRetries = cfg.WriterMaxRetries
	writerCfg.RetryDelay = cfg.WriterRetryDelay
	roster := store.NewRosterStore(slot, store.RosterOptions{
		Writer:   writerCfg,
		Location: loc,
	})
	teams := roster.Load(ctx)

	if cfg.SeedFile != "" && len(teams) == 0 {
		file, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("failed to load seed file")
		}
		added := seed.Apply(roster, file)
		log.Info().Int("teams", added).Str("file", cfg.SeedFile).Msg("roster seeded")
		if err := roster.Flush(ctx); err != nil {
			log.Error().Err(err).Msg("failed to persist seeded roster")
		}
	}

	server := web.NewServer(roster, status.NewEngine(nil), web.Options{
		WriteKeyHash: cfg.WriteKeyHash,
		CORSOrigins:  cfg.CORSOrigins,
		Location:     loc,
		FlushWrites:  cfg.Lambda,
	})
	handler := server.Routes()

	if cfg.Lambda {
		// The sandbox is frozen between invocations, so every write is flushed
		// before its response is returned.
		log.Info().Msg("starting in lambda mode")
		adapter := httpadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Int("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := roster.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to persist roster on shutdown")
	}
	log.Info().Msg("stopped")
}

func setupLogger(cfg *config.Config) {
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func openSlot(ctx context.Context, cfg *config.Config) (store.Slot, error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		return store.NewPostgresSlot(cfg.PostgresDSN, store.PostgresOptions{
			SlotName:      cfg.SlotName,
			MigrationsDir: cfg.PostgresMigrations,
		})
	case config.BackendSQLite:
		return store.NewSQLiteSlot(cfg.DBPath, store.SQLiteOptions{
			SlotName:      cfg.SlotName,
			MigrationsDir: cfg.DBMigrations,
		})
	case config.BackendS3:
		return store.NewS3Slot(ctx, store.S3Options{
			SlotName:        cfg.SlotName,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	case config.BackendMemory:
		return store.NewMemorySlot(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend())
}
