package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-statistics/domain/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// taskRecord is the GORM model backing the tasks table. Deletes are hard
// deletes, so there is no DeletedAt column.
type taskRecord struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"size:1000"`
	Priority    string     `gorm:"size:10;not null;index"`
	Category    string     `gorm:"size:10;not null"`
	DueDate     *time.Time `gorm:"index"`
	Tags        []string   `gorm:"serializer:json"`
	AssignedTo  string     `gorm:"size:50"`
	UserID      string     `gorm:"size:50;not null;index"`
	Completed   bool       `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false"`
}

// TableName overrides the default table name.
func (taskRecord) TableName() string {
	return "tasks"
}

func toRecord(t *domain.Task) *taskRecord {
	rec := &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Tags:        []string(t.Tags),
		AssignedTo:  t.AssignedTo,
		UserID:      t.UserID,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Time()
		rec.DueDate = &due
	}
	return rec
}

func (r *taskRecord) toDomain() domain.Task {
	t := domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Category:    domain.Category(r.Category),
		Tags:        domain.NewTags(r.Tags...),
		AssignedTo:  r.AssignedTo,
		UserID:      r.UserID,
		Completed:   r.Completed,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.DueDate != nil {
		due := domain.DateOf(r.DueDate.UTC())
		t.DueDate = &due
	}
	return t
}

// Repository is the GORM implementation of the task store.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

var _ domain.Store = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Save inserts t when it has no id yet and overwrites the stored record otherwise.
// On success t carries the stored id and timestamps.
func (r *Repository) Save(ctx context.Context, t *domain.Task) error {
	now := r.now()

	if t.ID == "" {
		t.ID = uuid.New().String()
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(toRecord(t)).Error; err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return nil
	}

	rec := toRecord(t)
	rec.UpdatedAt = now
	result := r.db.WithContext(ctx).
		Model(&taskRecord{}).
		Where("id = ?", t.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	t.UpdatedAt = now
	return nil
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var rec taskRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	t := rec.toDomain()
	return &t, nil
}

// FindAll retrieves every task, oldest first.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Task, error) {
	var recs []taskRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return toDomainList(recs), nil
}

// FindByOwner retrieves the tasks owned by userID, oldest first.
func (r *Repository) FindByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	var recs []taskRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks for user: %w", err)
	}
	return toDomainList(recs), nil
}

// DeleteByID removes a task permanently.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&taskRecord{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Counts returns the collection counters computed by the database.
func (r *Repository) Counts(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	var err error

	if c.Total, err = r.count(ctx); err != nil {
		return domain.Counts{}, err
	}
	if c.Completed, err = r.count(ctx, "completed = ?", true); err != nil {
		return domain.Counts{}, err
	}
	if c.UrgentActive, err = r.count(ctx, "completed = ? AND priority = ?", false, string(domain.PriorityUrgent)); err != nil {
		return domain.Counts{}, err
	}
	c.Pending = c.Total - c.Completed
	return c, nil
}

func (r *Repository) count(ctx context.Context, conds ...any) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&taskRecord{})
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return n, nil
}

func toDomainList(recs []taskRecord) []domain.Task {
	tasks := make([]domain.Task, 0, len(recs))
	for i := range recs {
		tasks = append(tasks, recs[i].toDomain())
	}
	return tasks
}
