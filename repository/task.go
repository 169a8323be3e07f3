package repository

import (
	"context"

	"github.com/taskwire/backend/domain"
)

// TaskRepository is the persistence port consumed by the task use case.
type TaskRepository interface {
	// List returns all tasks ordered by position ascending, each with its
	// derived child_tasks/parent_tasks sets populated.
	List(ctx context.Context) ([]domain.Task, error)

	// Create inserts the task and its relationship edges in one
	// transaction. The task's position is assigned as max(position)+1, or
	// 0 when the table is empty. Each id in parents becomes a (parent →
	// new task) edge, each id in children a (new task → child) edge; empty
	// lists insert nothing. The generated id, position and created_at are
	// written back into task.
	Create(ctx context.Context, task *domain.Task, parents, children []int64) error

	// Reorder assigns each id the position equal to its index in ids,
	// atomically for the whole batch. Ids matching no row are skipped.
	Reorder(ctx context.Context, ids []int64) error

	// SetDone updates the completion flag. Returns domain.ErrTaskNotFound
	// when no row matched.
	SetDone(ctx context.Context, id int64, done bool) error

	// Delete removes the task and every relationship row referencing it as
	// parent or child. Returns domain.ErrTaskNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
}
