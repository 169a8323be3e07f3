package monitor

import "time"

type Status struct {
	Database  bool      `json:"database"`
	TaskCount int       `json:"task_count"`
	LastCheck time.Time `json:"last_check"`
}
