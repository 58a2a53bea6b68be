package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/example/task-statistics/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = task.NewDate(2024, time.June, 10)

func due(offset int) *task.Date {
	d := today.AddDays(offset)
	return &d
}

func TestCompute_Scenario(t *testing.T) {
	tasks := []task.Task{
		{Priority: task.PriorityHigh, Category: task.CategoryWork, Completed: true, DueDate: due(-5)},
		{Priority: task.PriorityUrgent, Category: task.CategoryWork, DueDate: due(-1)},
		{Priority: task.PriorityLow, Category: task.CategoryPersonal},
	}

	s := Compute(tasks, today)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 1, s.UrgentActive)
	assert.Equal(t, 1, s.Overdue)
	assert.InDelta(t, 33.33, s.CompletionRate, 0.01)
	assert.Equal(t, map[task.Priority]int{
		task.PriorityHigh:   1,
		task.PriorityUrgent: 1,
		task.PriorityLow:    1,
	}, s.ByPriority)
	assert.Equal(t, map[task.Category]int{
		task.CategoryWork:     2,
		task.CategoryPersonal: 1,
	}, s.ByCategory)
}

func TestCompute_Empty(t *testing.T) {
	for _, tasks := range [][]task.Task{nil, {}} {
		s := Compute(tasks, today)

		assert.Equal(t, Empty(), s)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, 0.0, s.CompletionRate)

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"total": 0, "completed": 0, "pending": 0, "urgentActive": 0, "overdue": 0,
			"completionRate": 0, "byPriority": {}, "byCategory": {}
		}`, string(data))
	}
}

func TestCompute_Invariants(t *testing.T) {
	tests := []struct {
		name  string
		tasks []task.Task
		rate  float64
	}{
		{
			name:  "all completed",
			tasks: []task.Task{{Completed: true}, {Completed: true}},
			rate:  100,
		},
		{
			name:  "none completed",
			tasks: []task.Task{{}, {}, {}, {}},
			rate:  0,
		},
		{
			name:  "one of four",
			tasks: []task.Task{{Completed: true}, {}, {}, {}},
			rate:  25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compute(tt.tasks, today)
			assert.Equal(t, s.Total, s.Pending+s.Completed)
			assert.InDelta(t, tt.rate, s.CompletionRate, 1e-9)
		})
	}
}

func TestCompute_OverdueRules(t *testing.T) {
	tasks := []task.Task{
		{Completed: true, DueDate: due(-30)},
		{DueDate: due(0)},
		{DueDate: due(1)},
		{},
		{DueDate: due(-1)},
	}

	s := Compute(tasks, today)

	assert.Equal(t, 1, s.Overdue)
}

func TestCompute_CompletedUrgentIsNotActive(t *testing.T) {
	tasks := []task.Task{
		{Priority: task.PriorityUrgent, Completed: true},
		{Priority: task.PriorityUrgent},
		{Priority: task.PriorityHigh},
	}

	s := Compute(tasks, today)

	assert.Equal(t, 1, s.UrgentActive)
	assert.Equal(t, 2, s.ByPriority[task.PriorityUrgent])
}

func TestCompute_OnlyPresentLabels(t *testing.T) {
	s := Compute([]task.Task{{Priority: task.PriorityLow, Category: task.CategoryHealth}}, today)

	assert.Len(t, s.ByPriority, 1)
	assert.Len(t, s.ByCategory, 1)
	assert.NotContains(t, s.ByPriority, task.PriorityMedium)
}

func TestCompute_DoesNotModifyInput(t *testing.T) {
	tasks := []task.Task{{Title: "keep", Priority: task.PriorityLow}}
	Compute(tasks, today)
	assert.Equal(t, "keep", tasks[0].Title)
	assert.Equal(t, task.PriorityLow, tasks[0].Priority)
}
