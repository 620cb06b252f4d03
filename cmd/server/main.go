package main

import (
	"context"
	"database/sql"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vncsmyrnk/datepoll/internal/adapters/handler/http"
	"github.com/vncsmyrnk/datepoll/internal/adapters/oauth/google"
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
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Msg("failed to reach database")
	}

	pollRepo := postgres.NewPollRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	pollService := services.NewPollService(pollRepo, resultRepo)
	viewService := services.NewPollViewService(pollRepo, participantRepo)
	participantService := services.NewParticipantService(pollRepo, participantRepo)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), services.AuthConfig{
		JWTSecret:      cfg.JWTSecret,
		GoogleClientID: cfg.GoogleClientID,
	})

	cookies := http.CookieConfig{
		Domain:   cfg.CookieDomain,
		SameSite: cfg.CookieSameSite,
		Secure:   cfg.CookieSecure,
	}
	handler := http.NewHandler(
		http.NewPollHandler(pollService, viewService),
		http.NewParticipantHandler(participantService),
		http.NewCalendarHandler(cfg.DefaultDuration, cfg.WeekStartsOn),
		http.NewAuthHandler(authService, cfg.AuthRedirectURL, cookies),
		http.NewUserHandler(userService),
		http.NewSessionMiddleware(authService, cookies),
		cfg.AllowedOrigins,
		logger,
	)
	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("shutdown failed")
	}
}
