package main

import (
	"log"

	"paisa/internal/infrastructure/postgres"
	httphandlers "paisa/internal/interfaces/http"
	"paisa/internal/shared/auth"
	"paisa/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	TagHandler         *httphandlers.TagHandler
	TransactionHandler *httphandlers.TransactionHandler
	ReportHandler      *httphandlers.ReportHandler

	// Auth
	JWT      *auth.JWT
	UserRepo *postgres.UserRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	userRepo := postgres.NewUserRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		TagHandler:         httphandlers.NewTagHandler(tagRepo),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionRepo),
		ReportHandler:      httphandlers.NewReportHandler(reportRepo),
		JWT:                jwt,
		UserRepo:           userRepo,
	}, nil
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
