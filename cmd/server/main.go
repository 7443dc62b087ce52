package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"

	"recipe-hub/cmd/config"
	migration "recipe-hub/cmd/database/migrate"
	"recipe-hub/cmd/database/seed"
	"recipe-hub/internal/utils"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	seedDB := flag.Bool("seed", false, "seed categories, tags and demo recipes, then exit")
	flag.Parse()

	utils.LoadConfig()
	env := utils.GetConfig("APP_ENV")
	utils.InitLogger(env, utils.GetConfig("LOG_LEVEL"))

	if utils.GetConfig("JWT_SECRET") == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if utils.GetConfig("DB_PASSWORD") == "" {
		log.Fatal().Msg("DB_PASSWORD is required")
	}

	if dsn := utils.GetConfig("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      env,
		}); err != nil {
			log.Error().Err(err).Msg("sentry init failed")
		}
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrate || *seedDB {
		if err := migration.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}
	if *seedDB {
		if err := seed.Seed(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		return
	}

	app, cleanup, err := config.NewApp(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	go func() {
		port := utils.GetConfig("APP_PORT")
		log.Info().Str("port", port).Msg("server starting")
		if err := app.Listen(":" + port); err != nil {
			log.Error().Err(err).Msg("server stopped listening")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	cleanup()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("database close error")
		}
	}

	log.Info().Msg("server stopped")
}
