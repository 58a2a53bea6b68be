// Package stats derives aggregate metrics from a snapshot of tasks.
package stats

import "github.com/example/task-statistics/domain/task"

// Summary is the set of metrics computed over one task snapshot.
// It is recomputed on every request and never persisted.
type Summary struct {
	Total          int                   `json:"total"`
	Completed      int                   `json:"completed"`
	Pending        int                   `json:"pending"`
	UrgentActive   int                   `json:"urgentActive"`
	Overdue        int                   `json:"overdue"`
	CompletionRate float64               `json:"completionRate"`
	ByPriority     map[task.Priority]int `json:"byPriority"`
	ByCategory     map[task.Category]int `json:"byCategory"`
}

// Empty returns the summary of an empty collection. Its maps are non-nil so they
// encode as {} rather than null.
func Empty() Summary {
	return Summary{
		ByPriority: map[task.Priority]int{},
		ByCategory: map[task.Category]int{},
	}
}

// IsEmpty reports whether the summary describes no tasks at all.
func (s Summary) IsEmpty() bool {
	return s.Total == 0
}
