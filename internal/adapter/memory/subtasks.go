package memory

import (
	"context"
	"sort"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type SubtaskRepository struct {
	store *Store
}

func NewSubtaskRepository(store *Store) *SubtaskRepository {
	return &SubtaskRepository{store: store}
}

func (r *SubtaskRepository) Create(ctx context.Context, subtask *domain.Subtask) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.tasks[subtask.TaskID]; !ok {
			return domain.ErrTaskNotFound
		}
		subtask.ID = t.nextID("subtasks")
		subtask.CreatedAt = r.store.now()
		subtask.CompletedByName = ""
		t.subtasks[subtask.ID] = *subtask
		return nil
	})
}

func (r *SubtaskRepository) GetByID(ctx context.Context, id uint64) (domain.Subtask, error) {
	var subtask domain.Subtask
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.subtasks[id]
		if !ok {
			return domain.ErrSubtaskNotFound
		}
		subtask = t.joinSubtask(found)
		return nil
	})
	return subtask, err
}

func (r *SubtaskRepository) Update(ctx context.Context, subtask domain.Subtask) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.subtasks[subtask.ID]; !ok {
			return domain.ErrSubtaskNotFound
		}
		subtask.CompletedByName = ""
		t.subtasks[subtask.ID] = subtask
		return nil
	})
}

func (r *SubtaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.subtasks[id]; !ok {
			return domain.ErrSubtaskNotFound
		}
		delete(t.subtasks, id)
		return nil
	})
}

func (r *SubtaskRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.Subtask, error) {
	byTask, err := r.ListByTasks(ctx, []uint64{taskID})
	if err != nil {
		return nil, err
	}
	if byTask[taskID] == nil {
		return []domain.Subtask{}, nil
	}
	return byTask[taskID], nil
}

func (r *SubtaskRepository) ListByTasks(ctx context.Context, taskIDs []uint64) (map[uint64][]domain.Subtask, error) {
	wanted := make(map[uint64]bool, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = true
	}

	byTask := make(map[uint64][]domain.Subtask, len(taskIDs))
	err := r.store.read(ctx, func(t *tables) error {
		for _, subtask := range t.subtasks {
			if wanted[subtask.TaskID] {
				byTask[subtask.TaskID] = append(byTask[subtask.TaskID], t.joinSubtask(subtask))
			}
		}
		return nil
	})

	for _, subtasks := range byTask {
		sort.Slice(subtasks, func(i, j int) bool { return subtasks[i].ID < subtasks[j].ID })
	}
	return byTask, err
}

func (t *tables) joinSubtask(subtask domain.Subtask) domain.Subtask {
	if subtask.CompletedBy != nil {
		subtask.CompletedByName = t.fullName(*subtask.CompletedBy)
	}
	return subtask
}

var _ ports.SubtaskRepository = (*SubtaskRepository)(nil)
