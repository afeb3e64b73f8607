// Command keygen provisions a user and an API key. The plain key is printed
// once and never stored; only its hashes land in the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/versebridge/companion/internal/config"
	"github.com/versebridge/companion/internal/database"
	"github.com/versebridge/companion/internal/models"
	"github.com/versebridge/companion/migrations"
)

func main() {
	email := flag.String("email", "", "email for the new user (required)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := migrations.Run(ctx, db.SQLDB()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	user := &models.User{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	if err := database.NewUserRepository(db).Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	plainKey, key, err := database.NewAPIKeyRepository(db).CreateAPIKey(ctx, user.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create api key")
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("key_id", key.ID.String()).
		Msg("API key created")
	fmt.Printf("user_id: %s\nkey_id:  %s\napi_key: %s\n", user.ID, key.ID, plainKey)
	fmt.Println("Store the api_key now; it cannot be recovered.")
}
