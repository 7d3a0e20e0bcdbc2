package link

import (
	"log/slog"
	"share-safely/internal/config"
	"share-safely/internal/core/port"
)

type linkService struct {
	uow      port.UnitOfWork
	storage  port.BlobStorage
	recorder port.AccessRecorder
	cfg      config.LinkConfig
	logger   *slog.Logger
}

// NewLinkService creates a new link service
func NewLinkService(uow port.UnitOfWork, storage port.BlobStorage, recorder port.AccessRecorder, cfg config.LinkConfig, logger *slog.Logger) port.LinkService {
	return &linkService{
		uow:      uow,
		storage:  storage,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	}
}
