package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/culinary-compass/backend/config"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/types"
)

// issue_token prints a bearer token for the history endpoints.
func main() {
	username := flag.String("username", "", "username to embed in the token")
	userID := flag.String("user-id", "", "user id (random when empty)")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "usage: issue_token -username name [-user-id uuid]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	id := uuid.New()
	if *userID != "" {
		if id, err = uuid.Parse(*userID); err != nil {
			logging.Fatal().Err(err).Msg("invalid user id")
		}
	}

	token, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).
		GenerateToken(&types.TokenClaims{UserID: id, Username: *username})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to generate token")
	}
	fmt.Println(token)
}
