package task

import "slices"

// Patch is a sparse set of changes to a stored task. A nil pointer means the
// field was not supplied and the stored value is kept.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Category    *Category `json:"category,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	// Tags replace the stored set only when non-empty; an empty set cannot clear tags.
	Tags       Tags    `json:"tags,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	// Completed has no "not supplied" state and is always applied.
	Completed bool `json:"completed"`
}

// Merge applies partial onto existing and returns the resulting task.
// Identity, ownership and timestamps are never touched. Merge never fails.
func Merge(existing Task, partial Patch) Task {
	merged := existing
	merged.Tags = slices.Clone(existing.Tags)
	if existing.DueDate != nil {
		due := *existing.DueDate
		merged.DueDate = &due
	}

	if partial.Title != nil {
		merged.Title = *partial.Title
	}
	if partial.Description != nil {
		merged.Description = *partial.Description
	}
	if partial.Priority != nil {
		merged.Priority = *partial.Priority
	}
	if partial.Category != nil {
		merged.Category = *partial.Category
	}
	if partial.DueDate != nil {
		due := *partial.DueDate
		merged.DueDate = &due
	}
	if len(partial.Tags) > 0 {
		merged.Tags = NewTags(partial.Tags...)
	}
	if partial.AssignedTo != nil {
		merged.AssignedTo = *partial.AssignedTo
	}
	merged.Completed = partial.Completed

	return merged
}
