package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const selectSubtasksQuery = `
SELECT s.id, s.task_id, s.title, s.completed, s.completed_by, s.created_at,
  COALESCE(u.full_name, '') AS completed_by_name
FROM subtasks s
LEFT JOIN users u ON u.id = s.completed_by
`

type SubtaskRepository struct {
	base
}

type subtaskRow struct {
	ID              uint64        `db:"id"`
	TaskID          uint64        `db:"task_id"`
	Title           string        `db:"title"`
	Completed       bool          `db:"completed"`
	CompletedBy     sql.NullInt64 `db:"completed_by"`
	CreatedAt       time.Time     `db:"created_at"`
	CompletedByName string        `db:"completed_by_name"`
}

var _ ports.SubtaskRepository = (*SubtaskRepository)(nil)

func NewSubtaskRepository(db *sqlx.DB) *SubtaskRepository {
	return &SubtaskRepository{base: newBase(db)}
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *domain.Subtask) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO subtasks (task_id, title, completed, completed_by, created_at)
VALUES (?, ?, ?, ?, ?)`,
		subtask.TaskID, subtask.Title, subtask.Completed, nullUint64(subtask.CompletedBy), createdAt,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrNoReferenced) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	subtask.ID = id
	subtask.CreatedAt = createdAt
	return nil
}

func (r *SubtaskRepository) GetByID(ctx context.Context, id uint64) (domain.Subtask, error) {
	var row subtaskRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectSubtasksQuery+"WHERE s.id = ?", id); err != nil {
		return domain.Subtask{}, notFoundOr(err, domain.ErrSubtaskNotFound)
	}
	return mapSubtaskRowToDomainSubtask(row), nil
}

func (r *SubtaskRepository) Update(ctx context.Context, subtask domain.Subtask) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
UPDATE subtasks SET title = ?, completed = ?, completed_by = ? WHERE id = ?`,
		subtask.Title, subtask.Completed, nullUint64(subtask.CompletedBy), subtask.ID,
	)
	return err
}

func (r *SubtaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM subtasks WHERE id = ?", id, domain.ErrSubtaskNotFound)
}

func (r *SubtaskRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.Subtask, error) {
	var rows []subtaskRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, selectSubtasksQuery+"WHERE s.task_id = ? ORDER BY s.id", taskID); err != nil {
		return nil, err
	}

	subtasks := make([]domain.Subtask, 0, len(rows))
	for _, row := range rows {
		subtasks = append(subtasks, mapSubtaskRowToDomainSubtask(row))
	}
	return subtasks, nil
}

func (r *SubtaskRepository) ListByTasks(ctx context.Context, taskIDs []uint64) (map[uint64][]domain.Subtask, error) {
	byTask := make(map[uint64][]domain.Subtask, len(taskIDs))
	if len(taskIDs) == 0 {
		return byTask, nil
	}

	query, args, err := sqlx.In(selectSubtasksQuery+"WHERE s.task_id IN (?) ORDER BY s.id", taskIDs)
	if err != nil {
		return nil, err
	}

	conn := r.conn(ctx)
	var rows []subtaskRow
	if err := conn.SelectContext(ctx, &rows, conn.Rebind(query), args...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], mapSubtaskRowToDomainSubtask(row))
	}
	return byTask, nil
}

func mapSubtaskRowToDomainSubtask(row subtaskRow) domain.Subtask {
	return domain.Subtask{
		ID:              row.ID,
		TaskID:          row.TaskID,
		Title:           row.Title,
		Completed:       row.Completed,
		CompletedBy:     uint64Ptr(row.CompletedBy),
		CreatedAt:       row.CreatedAt,
		CompletedByName: row.CompletedByName,
	}
}
