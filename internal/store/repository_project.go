package store

import (
	"context"
	"fmt"

	"github.com/devdesk/devdesk/internal/logger"
	"github.com/devdesk/devdesk/models"
	"github.com/google/uuid"
)

// projectRepository is the PostgreSQL-backed implementation of
// [ProjectRepository]. Project and task management proper lives outside
// the auth subsystem; this repository covers only what account deletion
// and its tests need.
type projectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProjectRepository constructs a [ProjectRepository] backed by the
// provided database connection and logger.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

// CreateProject persists a new project owned by a user.
func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createProject, project.ID, project.OwnerID, project.Name)
	if err := row.Scan(&project.ID, &project.OwnerID, &project.Name, &project.CreatedAt); err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProject").Msg("error: project insert failed")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return project, nil
}

// CreateTask persists a new task inside a project.
func (r *projectRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, createTask, task.ID, task.ProjectID, task.OwnerID, task.Title, task.Done)
	if err := row.Scan(&task.ID, &task.ProjectID, &task.OwnerID, &task.Title, &task.Done, &task.CreatedAt); err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateTask").Msg("error: task insert failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return task, nil
}

// CountOwnedBy returns how many projects and tasks the user currently
// owns. The cascade-deletion tests assert both drop to zero.
func (r *projectRepository) CountOwnedBy(ctx context.Context, userID string) (int64, int64, error) {
	log := logger.FromContext(ctx)

	var projects, tasks int64
	if err := r.db.QueryRowContext(ctx, countProjectsOwnedBy, userID).Scan(&projects); err != nil {
		log.Err(err).Str("func", "*projectRepository.CountOwnedBy").Msg("error: project count failed")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if err := r.db.QueryRowContext(ctx, countTasksOwnedBy, userID).Scan(&tasks); err != nil {
		log.Err(err).Str("func", "*projectRepository.CountOwnedBy").Msg("error: task count failed")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return projects, tasks, nil
}
