package app

import (
	"log"

	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/repository"
	"blogsite/internal/service"
	"blogsite/internal/session"
)

func App(cfg *config.Config) (*database.DB, *service.Service, *session.Authority) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if cfg.DB.AutoMigrate {
		if err := db.RunMigrations(); err != nil {
			log.Fatalf("could not apply migrations: %v", err)
		}
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo)

	sess := session.New(cfg, session.NewStore(db), repo.Account)

	return db, services, sess
}
