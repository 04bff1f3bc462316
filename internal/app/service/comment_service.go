package service

import (
	"context"
	"strings"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
)

type CommentService struct {
	deps Deps
}

func NewCommentService(deps Deps) *CommentService {
	return &CommentService{deps: deps}
}

// AddComment is open to every authenticated user.
func (s *CommentService) AddComment(ctx context.Context, p domain.Principal, taskID uint64, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrContentRequired
	}

	if _, err := s.deps.Tasks.GetByID(ctx, taskID); err != nil {
		return domain.Comment{}, domain.StorageError(err)
	}

	comment := domain.Comment{TaskID: taskID, UserID: p.UserID, Content: content}
	if err := s.deps.Comments.Create(ctx, &comment); err != nil {
		return domain.Comment{}, domain.StorageError(err)
	}

	created, err := s.deps.Comments.GetByID(ctx, comment.ID)
	if err != nil {
		return domain.Comment{}, domain.StorageError(err)
	}
	return created, nil
}

func (s *CommentService) ListComments(ctx context.Context, _ domain.Principal, taskID uint64) ([]domain.Comment, error) {
	if _, err := s.deps.Tasks.GetByID(ctx, taskID); err != nil {
		return nil, domain.StorageError(err)
	}

	comments, err := s.deps.Comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return comments, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, p domain.Principal, id uint64) error {
	comment, err := s.deps.Comments.GetByID(ctx, id)
	if err != nil {
		return domain.StorageError(err)
	}

	if err := policy.Authorize(policy.CanDeleteComment(p, comment)); err != nil {
		return err
	}

	return domain.StorageError(s.deps.Comments.Delete(ctx, id))
}

var _ ports.CommentService = (*CommentService)(nil)
