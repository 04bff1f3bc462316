package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const selectCommentsQuery = `
SELECT c.id, c.task_id, c.user_id, c.content, c.created_at,
  COALESCE(u.full_name, '') AS author_name
FROM comments c
LEFT JOIN users u ON u.id = c.user_id
`

type CommentRepository struct {
	base
}

type commentRow struct {
	ID         uint64    `db:"id"`
	TaskID     uint64    `db:"task_id"`
	UserID     uint64    `db:"user_id"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	AuthorName string    `db:"author_name"`
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{base: newBase(db)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO comments (task_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		comment.TaskID, comment.UserID, comment.Content, createdAt,
	)
	if err != nil {
		if isMySQLError(err, mysqlErrNoReferenced) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	comment.ID = id
	comment.CreatedAt = createdAt
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint64) (domain.Comment, error) {
	var row commentRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectCommentsQuery+"WHERE c.id = ?", id); err != nil {
		return domain.Comment{}, notFoundOr(err, domain.ErrCommentNotFound)
	}
	return mapCommentRowToDomainComment(row), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM comments WHERE id = ?", id, domain.ErrCommentNotFound)
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.Comment, error) {
	var rows []commentRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, selectCommentsQuery+"WHERE c.task_id = ? ORDER BY c.created_at, c.id", taskID); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, mapCommentRowToDomainComment(row))
	}
	return comments, nil
}

func mapCommentRowToDomainComment(row commentRow) domain.Comment {
	return domain.Comment{
		ID:         row.ID,
		TaskID:     row.TaskID,
		UserID:     row.UserID,
		Content:    row.Content,
		CreatedAt:  row.CreatedAt,
		AuthorName: row.AuthorName,
	}
}
