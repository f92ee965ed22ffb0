package http

import (
	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/logger"
	"github.com/MKhiriev/bullbear-client/models"
)

type Handler struct {
	backend   adapter.AuthBackend
	signKey   string
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewHandler serves backend over HTTP. signKey must be the key backend signs
// its tokens with; it is used to verify bearer tokens on protected routes.
func NewHandler(backend adapter.AuthBackend, signKey string, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend:   backend,
		signKey:   signKey,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
