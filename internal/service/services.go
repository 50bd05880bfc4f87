package service

import (
	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/mailer"
	"github.com/devdesk/devdesk/internal/store"
)

// Services aggregates all business-logic services of the application.
type Services struct {
	AuthService
}

// NewServices wires the service layer onto the storage layer, the email
// collaborator and the application security parameters.
func NewServices(storages *store.Storages, mail mailer.Mailer, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, mail, cfg, logger),
	}
}
