package stats

import "github.com/example/task-statistics/domain/task"

// Compute aggregates tasks into a Summary. today is the reference date for the
// overdue check and is fixed for the whole evaluation.
func Compute(tasks []task.Task, today task.Date) Summary {
	if len(tasks) == 0 {
		return Empty()
	}

	s := Empty()
	s.Total = len(tasks)

	for i := range tasks {
		t := &tasks[i]

		if t.Completed {
			s.Completed++
		} else if t.Priority == task.PriorityUrgent {
			s.UrgentActive++
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}
		if t.Priority != "" {
			s.ByPriority[t.Priority]++
		}
		if t.Category != "" {
			s.ByCategory[t.Category]++
		}
	}

	s.Pending = s.Total - s.Completed
	s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	return s
}
