package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	sqlitelib "modernc.org/sqlite"

	"github.com/taskwire/backend/domain"
	"github.com/taskwire/backend/repository"
)

// timeLayout is the canonical created_at encoding in the tasks table.
const timeLayout = time.RFC3339Nano

// sqliteFKViolation is the extended result code SQLITE_CONSTRAINT_FOREIGNKEY.
const sqliteFKViolation = 787

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT id, title, COALESCE(description, ''), done, position, created_at
	FROM tasks
	ORDER BY position ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children, parents, err := r.relationshipSets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].ChildTasks = setToSlice(children[tasks[i].ID])
		tasks[i].ParentTasks = setToSlice(parents[tasks[i].ID])
	}
	return tasks, nil
}

// relationshipSets aggregates the edge table into per-task id sets. The
// composite primary key already guarantees uniqueness per pair; the map keeps
// the derived lists deduplicated regardless.
func (r *taskRepository) relationshipSets(ctx context.Context) (children, parents map[int64]map[int64]struct{}, err error) {
	rows, err := r.db.QueryContext(ctx, `SELECT parent_id, child_id FROM task_relationships`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	children = make(map[int64]map[int64]struct{})
	parents = make(map[int64]map[int64]struct{})
	for rows.Next() {
		var rel domain.Relationship
		if err := rows.Scan(&rel.ParentID, &rel.ChildID); err != nil {
			return nil, nil, err
		}
		addToSet(children, rel.ParentID, rel.ChildID)
		addToSet(parents, rel.ChildID, rel.ParentID)
	}
	return children, parents, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task, parentIDs, childIDs []int64) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var position int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM tasks`).Scan(&position); err != nil {
		return err
	}

	createdAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (title, description, done, position, created_at) VALUES (?, ?, 0, ?, ?)`,
		task.Title, task.Description, position, createdAt.Format(timeLayout),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, parentID := range parentIDs {
		if err := insertEdge(ctx, tx, parentID, id); err != nil {
			return err
		}
	}
	for _, childID := range childIDs {
		if err := insertEdge(ctx, tx, id, childID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	task.ID = id
	task.Position = position
	task.CreatedAt = createdAt
	return nil
}

func insertEdge(ctx context.Context, tx *sql.Tx, parentID, childID int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO task_relationships (parent_id, child_id) VALUES (?, ?)`,
		parentID, childID,
	)
	if isFKViolation(err) {
		return domain.WrapError(domain.ErrCodeInvalid, "relationship references unknown task", err)
	}
	return err
}

func (r *taskRepository) Reorder(ctx context.Context, ids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for index, id := range ids {
		if _, err := stmt.ExecContext(ctx, index, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *taskRepository) SetDone(ctx context.Context, id int64, done bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET done = ? WHERE id = ?`, boolToInt(done), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Explicit cascade so relationship rows go away even when foreign-key
	// enforcement is configured off.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM task_relationships WHERE parent_id = ? OR child_id = ?`, id, id,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return tx.Commit()
}

func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var (
		task      domain.Task
		done      int64
		createdAt string
	)
	if err := rows.Scan(&task.ID, &task.Title, &task.Description, &done, &task.Position, &createdAt); err != nil {
		return nil, err
	}
	task.Done = done != 0
	ts, err := parseCreatedAt(createdAt)
	if err != nil {
		return nil, err
	}
	task.CreatedAt = ts
	return &task, nil
}

// parseCreatedAt reads the canonical layout, falling back to the legacy
// SQLite CURRENT_TIMESTAMP form for rows written outside this service. Any
// other value is corruption and surfaces as an error.
func parseCreatedAt(raw string) (time.Time, error) {
	if ts, err := time.Parse(timeLayout, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02 15:04:05", raw)
}

func addToSet(sets map[int64]map[int64]struct{}, key, value int64) {
	set, ok := sets[key]
	if !ok {
		set = make(map[int64]struct{})
		sets[key] = set
	}
	set[value] = struct{}{}
}

func setToSlice(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	var serr *sqlitelib.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqliteFKViolation
	}
	return false
}
