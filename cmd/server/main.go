package main

import (
	"context"
	"fmt"

	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/handler"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/mailer"
	"github.com/devdesk/devdesk/internal/server"
	"github.com/devdesk/devdesk/internal/service"
	"github.com/devdesk/devdesk/internal/store"
	"github.com/devdesk/devdesk/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("devdesk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	mail := mailer.NewSMTPMailer(cfg.Mail, log)
	services := service.NewServices(storages, mail, cfg.App, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(cfg.Workers, storages.UserRepository, store.NewPostgresErrorClassifier(), log)
	background.Run()
	defer background.Stop()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
