package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const dateLayout = "2006-01-02"

const selectTasksQuery = `
SELECT
  t.id, t.title, t.description, t.project_id, t.assigned_to, t.created_by, t.due_date,
  t.priority, t.status, t.completed_at, t.position, t.created_at, t.updated_at,
  p.name AS project_name,
  p.color AS project_color,
  u.full_name AS assignee_name
FROM tasks t
LEFT JOIN projects p ON p.id = t.project_id
LEFT JOIN users u ON u.id = t.assigned_to
`

type TaskRepository struct {
	base
}

type taskRow struct {
	ID           uint64         `db:"id"`
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	ProjectID    sql.NullInt64  `db:"project_id"`
	AssignedTo   sql.NullInt64  `db:"assigned_to"`
	CreatedBy    uint64         `db:"created_by"`
	DueDate      sql.NullTime   `db:"due_date"`
	Priority     string         `db:"priority"`
	Status       string         `db:"status"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
	Position     int            `db:"position"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	ProjectName  sql.NullString `db:"project_name"`
	ProjectColor sql.NullString `db:"project_color"`
	AssigneeName sql.NullString `db:"assignee_name"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{base: newBase(db)}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO tasks (
  title, description, project_id, assigned_to, created_by, due_date,
  priority, status, completed_at, position, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Title, nullString(task.Description), nullUint64(task.ProjectID), nullUint64(task.AssigneeID),
		task.CreatedBy, nullDate(task.DueDate), string(task.Priority), string(task.Status),
		nullTime(task.CompletedAt), task.Position, createdAt, createdAt,
	)
	if err != nil {
		return referenceError(err)
	}

	task.ID = id
	task.CreatedAt = createdAt
	task.UpdatedAt = createdAt
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectTasksQuery+"WHERE t.id = ?", id); err != nil {
		return domain.Task{}, notFoundOr(err, domain.ErrTaskNotFound)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
UPDATE tasks
SET title = ?, description = ?, project_id = ?, assigned_to = ?, due_date = ?,
    priority = ?, status = ?, completed_at = ?, position = ?, updated_at = ?
WHERE id = ?`,
		task.Title, nullString(task.Description), nullUint64(task.ProjectID), nullUint64(task.AssigneeID),
		nullDate(task.DueDate), string(task.Priority), string(task.Status), nullTime(task.CompletedAt),
		task.Position, r.now(), task.ID,
	)
	return referenceError(err)
}

// Delete relies on the foreign keys to remove subtasks, comments and files.
func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM tasks WHERE id = ?", id, domain.ErrTaskNotFound)
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query, args := buildTaskListQuery(filter)

	var rows []taskRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID uint64) (domain.TaskCounts, error) {
	var row struct {
		Total int `db:"total"`
		Done  int `db:"done"`
	}
	err := r.conn(ctx).GetContext(ctx, &row, `
SELECT COUNT(*) AS total, COALESCE(SUM(status = 'done'), 0) AS done
FROM tasks
WHERE project_id = ?`, projectID)
	if err != nil {
		return domain.TaskCounts{}, err
	}
	return domain.TaskCounts{Total: row.Total, Done: row.Done}, nil
}

func buildTaskListQuery(filter domain.TaskFilter) (string, []interface{}) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.ProjectID != nil {
		conditions = append(conditions, "t.project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, "t.assigned_to = ?")
		args = append(args, *filter.AssigneeID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "t.status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.DueFrom != nil || filter.DueTo != nil || filter.OrderByDueDate {
		conditions = append(conditions, "t.due_date IS NOT NULL")
	}
	if filter.DueFrom != nil {
		conditions = append(conditions, "t.due_date >= ?")
		args = append(args, filter.DueFrom.UTC().Format(dateLayout))
	}
	if filter.DueTo != nil {
		conditions = append(conditions, "t.due_date <= ?")
		args = append(args, filter.DueTo.UTC().Format(dateLayout))
	}
	if filter.HideArchivedBefore != nil {
		conditions = append(conditions, "(p.id IS NULL OR p.archived = FALSE OR p.completed_at IS NULL OR p.completed_at > ?)")
		args = append(args, filter.HideArchivedBefore.UTC())
	}

	var query strings.Builder
	query.WriteString(selectTasksQuery)
	if len(conditions) > 0 {
		query.WriteString("WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
		query.WriteString("\n")
	}
	if filter.OrderByDueDate {
		query.WriteString("ORDER BY t.due_date, t.id")
	} else {
		query.WriteString("ORDER BY t.position, t.created_at DESC, t.id DESC")
	}

	return query.String(), args
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description.String,
		ProjectID:   uint64Ptr(row.ProjectID),
		AssigneeID:  uint64Ptr(row.AssignedTo),
		CreatedBy:   row.CreatedBy,
		DueDate:     timePtr(row.DueDate),
		Priority:    domain.TaskPriority(row.Priority),
		Status:      domain.TaskStatus(row.Status),
		CompletedAt: timePtr(row.CompletedAt),
		Position:    row.Position,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	if task.ProjectID != nil && row.ProjectName.Valid {
		task.Project = &domain.ProjectRef{
			ID:    *task.ProjectID,
			Name:  row.ProjectName.String,
			Color: row.ProjectColor.String,
		}
	}

	if task.AssigneeID != nil && row.AssigneeName.Valid {
		task.Assignee = &domain.UserRef{
			ID:       *task.AssigneeID,
			FullName: row.AssigneeName.String,
		}
	}

	return task
}

func nullDate(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: value.UTC().Format(dateLayout), Valid: true}
}

// referenceError reports a missing project or assignee as not found.
func referenceError(err error) error {
	if isMySQLError(err, mysqlErrNoReferenced) {
		return domain.ErrNotFound
	}
	return err
}
