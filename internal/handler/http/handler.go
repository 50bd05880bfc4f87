package http

import (
	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/service"
)

type Handler struct {
	services *service.Services

	// app carries the cookie lifetimes and the environment flag that
	// decides cookie attributes.
	app config.App

	// allowedOrigins is the list of origins permitted to make
	// credentialed cross-origin requests.
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, allowedOrigins []string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		app:            app,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}
