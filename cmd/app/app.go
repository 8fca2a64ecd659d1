package app

import (
	"log"

	"borrowbee/internal/config"
	"borrowbee/internal/database"
	"borrowbee/internal/mailer"
	"borrowbee/internal/repository"
	"borrowbee/internal/service"
	"borrowbee/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, smtpMailer, minioClient)

	return db, repo, services
}
