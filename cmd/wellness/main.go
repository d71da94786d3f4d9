package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	adapthttp "wellness/internal/adapter/http"
	"wellness/internal/adapter/postgres"
	"wellness/internal/app"
	"wellness/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	logRepo := postgres.NewLogRepo(db)

	authService := app.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	logService := app.NewLogService(logRepo)
	trendsService := app.NewTrendsService(logRepo)

	oidcConfig, err := adapthttp.NewOIDCConfig(context.Background(),
		cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	server := adapthttp.New(logService, trendsService, authService, oidcConfig)

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server.Handler()); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
}
