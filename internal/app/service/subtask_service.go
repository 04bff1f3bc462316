package service

import (
	"context"
	"strings"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/core/progress"
)

type SubtaskService struct {
	deps Deps
}

func NewSubtaskService(deps Deps) *SubtaskService {
	return &SubtaskService{deps: deps}
}

func (s *SubtaskService) AddSubtask(ctx context.Context, p domain.Principal, taskID uint64, title string) (domain.SubtaskChange, error) {
	var change domain.SubtaskChange
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.deps.Tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.CanEditTask(p, task)); err != nil {
			return err
		}

		title = strings.TrimSpace(title)
		if title == "" {
			return domain.ErrTitleRequired
		}

		subtask := domain.Subtask{TaskID: taskID, Title: title}
		if err := s.deps.Subtasks.Create(ctx, &subtask); err != nil {
			return err
		}

		change, err = s.changeOf(ctx, taskID, &subtask)
		return err
	})
	if err != nil {
		return domain.SubtaskChange{}, domain.StorageError(err)
	}
	return change, nil
}

// ToggleSubtask flips the completion of a subtask. Concurrent toggles of the
// same subtask resolve as last write wins.
func (s *SubtaskService) ToggleSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error) {
	var change domain.SubtaskChange
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		subtask, task, err := s.subtaskWithTask(ctx, p, id)
		if err != nil {
			return err
		}

		subtask.Toggle(p.UserID)
		if err := s.deps.Subtasks.Update(ctx, subtask); err != nil {
			return err
		}

		change, err = s.changeOf(ctx, task.ID, &subtask)
		return err
	})
	if err != nil {
		return domain.SubtaskChange{}, domain.StorageError(err)
	}
	return change, nil
}

func (s *SubtaskService) DeleteSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error) {
	var change domain.SubtaskChange
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		_, task, err := s.subtaskWithTask(ctx, p, id)
		if err != nil {
			return err
		}

		if err := s.deps.Subtasks.Delete(ctx, id); err != nil {
			return err
		}

		change, err = s.changeOf(ctx, task.ID, nil)
		return err
	})
	if err != nil {
		return domain.SubtaskChange{}, domain.StorageError(err)
	}
	return change, nil
}

func (s *SubtaskService) subtaskWithTask(ctx context.Context, p domain.Principal, id uint64) (domain.Subtask, domain.Task, error) {
	subtask, err := s.deps.Subtasks.GetByID(ctx, id)
	if err != nil {
		return domain.Subtask{}, domain.Task{}, err
	}

	task, err := s.deps.Tasks.GetByID(ctx, subtask.TaskID)
	if err != nil {
		return domain.Subtask{}, domain.Task{}, err
	}

	if err := policy.Authorize(policy.CanEditTask(p, task)); err != nil {
		return domain.Subtask{}, domain.Task{}, err
	}
	return subtask, task, nil
}

func (s *SubtaskService) changeOf(ctx context.Context, taskID uint64, subtask *domain.Subtask) (domain.SubtaskChange, error) {
	subtasks, err := s.deps.Subtasks.ListByTask(ctx, taskID)
	if err != nil {
		return domain.SubtaskChange{}, err
	}

	return domain.SubtaskChange{
		Subtask:  subtask,
		TaskID:   taskID,
		Progress: progress.Compute(subtasks),
	}, nil
}

var _ ports.SubtaskService = (*SubtaskService)(nil)
