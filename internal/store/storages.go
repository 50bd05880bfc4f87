package store

import (
	"github.com/devdesk/devdesk/internal/logger"
)

// Storages aggregates every repository backed by the shared database
// connection. It is the single wiring point handed to the service layer.
type Storages struct {
	UserRepository    UserRepository
	ProjectRepository ProjectRepository
}

// NewStorages constructs all repositories over the given connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, logger),
		ProjectRepository: NewProjectRepository(db, logger),
	}
}
