// Package task defines the task entity, its field rules and the partial-update merge.
package task

import (
	"encoding/json"
	"slices"
	"time"
)

// Priority ranks how pressing a task is.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return slices.Contains(Priorities, p)
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "WORK"
	CategoryPersonal Category = "PERSONAL"
	CategoryStudy    Category = "STUDY"
	CategoryHealth   Category = "HEALTH"
	CategoryOther    Category = "OTHER"
)

// Categories lists every category.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryStudy, CategoryHealth, CategoryOther}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

const (
	DefaultPriority = PriorityMedium
	DefaultCategory = CategoryOther
)

// Task is the core domain entity representing a unit of work.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,notblank,min=3,max=255,title"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	Priority    Priority  `json:"priority" validate:"priority"`
	Category    Category  `json:"category" validate:"category"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	Tags        Tags      `json:"tags" validate:"max=10,dive,min=2,max=20,tag"`
	AssignedTo  string    `json:"assignedTo,omitempty" validate:"omitempty,max=50,ident"`
	UserID      string    `json:"userId" validate:"required,min=3,max=50,ident"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplyDefaults fills the fields that have creation-time defaults.
func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	if t.Tags == nil {
		t.Tags = Tags{}
	}
}

// IsOverdue reports whether the task is still open and its due date lies before today.
func (t *Task) IsOverdue(today Date) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(today)
}

// Tags is a set of tag labels. NewTags and UnmarshalJSON keep it sorted and free of duplicates.
type Tags []string

// NewTags builds a tag set from labels, collapsing duplicates.
func NewTags(labels ...string) Tags {
	tags := Tags(slices.Clone(labels))
	if tags == nil {
		tags = Tags{}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// MarshalJSON encodes a nil set as an empty array.
func (t Tags) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON decodes an array of labels into a set. JSON null yields a nil set.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	if labels == nil {
		*t = nil
		return nil
	}
	*t = NewTags(labels...)
	return nil
}
