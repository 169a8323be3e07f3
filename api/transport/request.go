package transport

import (
	"fmt"
	"strings"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ParentTasks []int64 `json:"parentTasks"`
	ChildTasks  []int64 `json:"childTasks"`
}

type ReorderRequest struct {
	Tasks []int64 `json:"tasks"`
}

type SetDoneRequest struct {
	Done Flag `json:"done"`
}

// Flag accepts the loose boolean encodings clients send for the done field:
// true/false, 0/1, and their quoted forms.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(raw) {
	case "1", "true":
		*f = true
	case "0", "false", "null", "":
		*f = false
	default:
		return fmt.Errorf("cannot parse %q as a boolean", raw)
	}
	return nil
}
