package handler

import (
	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/handler/http"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, app config.App, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, app, cfg.AllowedOrigins, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
