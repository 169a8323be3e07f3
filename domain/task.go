package domain

import "time"

// Task is a unit of work with an explicit display position and optional
// parent/child links to other tasks.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`

	// Derived at read time from relationship rows, deduplicated.
	// Always arrays on the wire, never null.
	ChildTasks  []int64 `json:"child_tasks"`
	ParentTasks []int64 `json:"parent_tasks"`
}

// Relationship is a directed parent→child edge between two tasks. A pair
// appears at most once; edges go away when either endpoint is deleted.
type Relationship struct {
	ParentID int64 `json:"parent_id"`
	ChildID  int64 `json:"child_id"`
}
