package workers

import (
	"github.com/devdesk/devdesk/internal/config"
	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker enabled by the
// configuration. A zero OTPCleanupInterval leaves the cleanup worker out.
func NewWorkers(cfg config.Workers, users store.UserRepository, classifier store.ErrorClassificator, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.OTPCleanupInterval > 0 {
		ws.workers = append(ws.workers, newOTPCleanupWorker(cfg.OTPCleanupInterval, users, classifier, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
