package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskwire/backend/domain"
	"github.com/taskwire/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

// CreateTask inserts a task plus its relationship edges. Referenced parent and
// child ids are not checked here; whether dangling ids are rejected depends on
// the store's foreign-key strictness.
func (uc *UseCase) CreateTask(ctx context.Context, title, description string, parents, children []int64) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrTitleRequired
	}

	created := &domain.Task{
		Title:       title,
		Description: description,
	}
	if err := uc.tasks.Create(ctx, created, parents, children); err != nil {
		return nil, err
	}

	uc.logger.Info("task created",
		zap.Int64("id", created.ID),
		zap.Int64("position", created.Position),
		zap.Int("parents", len(parents)),
		zap.Int("children", len(children)),
	)
	return created, nil
}

// ReorderTasks assigns each id the position equal to its index in ids.
func (uc *UseCase) ReorderTasks(ctx context.Context, ids []int64) error {
	if err := uc.tasks.Reorder(ctx, ids); err != nil {
		return err
	}
	uc.logger.Info("tasks reordered", zap.Int("count", len(ids)))
	return nil
}

func (uc *UseCase) SetTaskDone(ctx context.Context, id int64, done bool) error {
	if err := uc.tasks.SetDone(ctx, id, done); err != nil {
		return err
	}
	uc.logger.Info("task completion updated", zap.Int64("id", id), zap.Bool("done", done))
	return nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id int64) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.Int64("id", id))
	return nil
}
