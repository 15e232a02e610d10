package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"barbershop/internal/database"
	"barbershop/internal/domain"
	"barbershop/internal/modules/auth"
	"barbershop/internal/repository"
)

// Seeds the service catalog and default settings, and optionally prints a
// bcrypt hash for ADMIN_PASSWORD_HASH.
func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	dsn := flag.String("dsn", "barbershop.db", "database DSN (sqlite path or postgres:// URL)")
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for the given admin password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		fmt.Println(hash)
		return
	}

	db, err := database.Connect(*dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	ctx := context.Background()

	log.Info().Msg("seeding service catalog")
	serviceRepo := repository.NewServiceRepository(db)
	if err := serviceRepo.Seed(ctx, domain.DefaultServices()); err != nil {
		log.Fatal().Err(err).Msg("seed services")
	}

	var existing int64
	if err := db.Model(&domain.Settings{}).Count(&existing).Error; err != nil {
		log.Fatal().Err(err).Msg("check settings")
	}
	if existing == 0 {
		log.Info().Msg("seeding default settings")
		settingsRepo := repository.NewSettingsRepository(db)
		if err := settingsRepo.Save(ctx, domain.DefaultSettings()); err != nil {
			log.Fatal().Err(err).Msg("seed settings")
		}
	}

	log.Info().Msg("done")
}
