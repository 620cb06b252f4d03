package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/datepoll/internal/config"
	"github.com/vncsmyrnk/datepoll/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	pg := cfg.Postgres
	flag.StringVar(&pg.Host, "db-host", pg.Host, "Database host")
	flag.StringVar(&pg.Port, "db-port", pg.Port, "Database port")
	flag.StringVar(&pg.User, "db-user", pg.User, "Database user")
	flag.StringVar(&pg.Password, "db-pass", pg.Password, "Database password")
	flag.StringVar(&pg.DB, "db-name", pg.DB, "Database name")
	timeout := flag.Duration("timeout", 5*time.Minute, "Job timeout")
	flag.Parse()

	db, err := sql.Open("postgres", pg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Info().Msg("starting vote summarization job")

	if err := summaryService.SummarizeAllVotes(ctx); err != nil {
		log.Fatal().Err(err).Msg("error summarizing votes")
	}

	log.Info().Msg("vote summarization completed")
}
