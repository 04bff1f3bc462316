package memory

import (
	"context"
	"sort"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type CommentRepository struct {
	store *Store
}

func NewCommentRepository(store *Store) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.tasks[comment.TaskID]; !ok {
			return domain.ErrTaskNotFound
		}
		comment.ID = t.nextID("comments")
		comment.CreatedAt = r.store.now()
		comment.AuthorName = ""
		t.comments[comment.ID] = *comment
		return nil
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint64) (domain.Comment, error) {
	var comment domain.Comment
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.comments[id]
		if !ok {
			return domain.ErrCommentNotFound
		}
		found.AuthorName = t.fullName(found.UserID)
		comment = found
		return nil
	})
	return comment, err
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.comments[id]; !ok {
			return domain.ErrCommentNotFound
		}
		delete(t.comments, id)
		return nil
	})
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := r.store.read(ctx, func(t *tables) error {
		for _, comment := range t.comments {
			if comment.TaskID == taskID {
				comment.AuthorName = t.fullName(comment.UserID)
				comments = append(comments, comment)
			}
		}
		return nil
	})

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, err
}

var _ ports.CommentRepository = (*CommentRepository)(nil)
