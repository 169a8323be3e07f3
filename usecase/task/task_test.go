package task

import (
	"context"
	"errors"
	"testing"

	"github.com/taskwire/backend/domain"
)

type stubRepo struct {
	listResult []domain.Task
	err        error

	createdTask    *domain.Task
	createdParents []int64
	createdKids    []int64
	reorderedIDs   []int64
	doneID         int64
	doneValue      bool
	deletedID      int64
	calls          int
}

func (s *stubRepo) List(ctx context.Context) ([]domain.Task, error) {
	s.calls++
	return s.listResult, s.err
}

func (s *stubRepo) Create(ctx context.Context, task *domain.Task, parents, children []int64) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	task.ID = 7
	task.Position = 3
	s.createdTask = task
	s.createdParents = parents
	s.createdKids = children
	return nil
}

func (s *stubRepo) Reorder(ctx context.Context, ids []int64) error {
	s.calls++
	s.reorderedIDs = ids
	return s.err
}

func (s *stubRepo) SetDone(ctx context.Context, id int64, done bool) error {
	s.calls++
	s.doneID = id
	s.doneValue = done
	return s.err
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	s.calls++
	s.deletedID = id
	return s.err
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	repo := &stubRepo{}
	uc := New(repo, nil)

	for _, title := range []string{"", "   "} {
		_, err := uc.CreateTask(context.Background(), title, "", nil, nil)
		if err != domain.ErrTitleRequired {
			t.Errorf("title %q: expected ErrTitleRequired, got %v", title, err)
		}
	}
	if repo.calls != 0 {
		t.Errorf("expected store untouched on validation failure, got %d calls", repo.calls)
	}
}

func TestCreateTaskPassesLinksThrough(t *testing.T) {
	repo := &stubRepo{}
	uc := New(repo, nil)

	created, err := uc.CreateTask(context.Background(), "write tests", "desc", []int64{1, 2}, []int64{3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("expected generated id 7, got %d", created.ID)
	}
	if len(repo.createdParents) != 2 || len(repo.createdKids) != 1 {
		t.Errorf("expected links forwarded, got parents=%v children=%v", repo.createdParents, repo.createdKids)
	}
}

func TestCreateTaskPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	uc := New(&stubRepo{err: storeErr}, nil)

	_, err := uc.CreateTask(context.Background(), "t", "", nil, nil)
	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestReorderTasksForwardsIDs(t *testing.T) {
	repo := &stubRepo{}
	uc := New(repo, nil)

	if err := uc.ReorderTasks(context.Background(), []int64{3, 1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.reorderedIDs) != 3 || repo.reorderedIDs[0] != 3 {
		t.Errorf("expected ids forwarded in order, got %v", repo.reorderedIDs)
	}
}

func TestSetTaskDoneNotFound(t *testing.T) {
	uc := New(&stubRepo{err: domain.ErrTaskNotFound}, nil)

	err := uc.SetTaskDone(context.Background(), 9, true)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND error, got %v", err)
	}
}

func TestDeleteTaskForwardsID(t *testing.T) {
	repo := &stubRepo{}
	uc := New(repo, nil)

	if err := uc.DeleteTask(context.Background(), 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deletedID != 11 {
		t.Errorf("expected delete of id 11, got %d", repo.deletedID)
	}
}
