package memory

import (
	"context"
	"sort"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.store.write(ctx, func(t *tables) error {
		task.ID = t.nextID("tasks")
		task.CreatedAt = r.store.now()
		task.UpdatedAt = task.CreatedAt
		t.tasks[task.ID] = stored(*task)
		return nil
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	var task domain.Task
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.tasks[id]
		if !ok {
			return domain.ErrTaskNotFound
		}
		task = t.joinTask(found)
		return nil
	})
	return task, err
}

func (r *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	return r.store.write(ctx, func(t *tables) error {
		current, ok := t.tasks[task.ID]
		if !ok {
			return domain.ErrTaskNotFound
		}
		task.CreatedAt = current.CreatedAt
		task.UpdatedAt = r.store.now()
		t.tasks[task.ID] = stored(task)
		return nil
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.tasks[id]; !ok {
			return domain.ErrTaskNotFound
		}
		t.deleteTask(id)
		return nil
	})
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := r.store.read(ctx, func(t *tables) error {
		for _, task := range t.tasks {
			if t.matches(task, filter) {
				tasks = append(tasks, t.joinTask(task))
			}
		}
		return nil
	})

	if filter.OrderByDueDate {
		sort.Slice(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
			return a.ID < b.ID
		})
		return tasks, err
	}

	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return tasks, err
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID uint64) (domain.TaskCounts, error) {
	var counts domain.TaskCounts
	err := r.store.read(ctx, func(t *tables) error {
		for _, task := range t.tasks {
			if task.ProjectID == nil || *task.ProjectID != projectID {
				continue
			}
			counts.Total++
			if task.Status == domain.TaskStatusDone {
				counts.Done++
			}
		}
		return nil
	})
	return counts, err
}

func (t *tables) matches(task domain.Task, filter domain.TaskFilter) bool {
	if filter.ProjectID != nil && (task.ProjectID == nil || *task.ProjectID != *filter.ProjectID) {
		return false
	}
	if filter.AssigneeID != nil && (task.AssigneeID == nil || *task.AssigneeID != *filter.AssigneeID) {
		return false
	}
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.DueFrom != nil || filter.DueTo != nil || filter.OrderByDueDate {
		if task.DueDate == nil {
			return false
		}
		due := day(*task.DueDate)
		if filter.DueFrom != nil && due.Before(day(*filter.DueFrom)) {
			return false
		}
		if filter.DueTo != nil && due.After(day(*filter.DueTo)) {
			return false
		}
	}
	if filter.HideArchivedBefore != nil && task.ProjectID != nil {
		project, ok := t.projects[*task.ProjectID]
		if ok && project.Archived && project.CompletedAt != nil && !project.CompletedAt.After(*filter.HideArchivedBefore) {
			return false
		}
	}
	return true
}

func (t *tables) joinTask(task domain.Task) domain.Task {
	task.Project = t.projectRef(task.ProjectID)
	task.Assignee = t.userRef(task.AssigneeID)
	return task
}

// stored drops the fields that are joined or derived on reads.
func stored(task domain.Task) domain.Task {
	task.Project = nil
	task.Assignee = nil
	task.Subtasks = nil
	task.Comments = nil
	task.Files = nil
	task.Progress = 0
	task.SubtaskProgress = 0
	return task
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
