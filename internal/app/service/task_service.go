package service

import (
	"context"
	"strings"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
	"tasktracker/internal/core/progress"
)

type TaskService struct {
	deps       Deps
	completion *CompletionEngine
}

func NewTaskService(deps Deps, completion *CompletionEngine) *TaskService {
	return &TaskService{deps: deps, completion: completion}
}

func (s *TaskService) CreateTask(ctx context.Context, p domain.Principal, input domain.CreateTaskInput) (domain.Task, error) {
	if err := policy.Authorize(policy.CanCreateTask(p)); err != nil {
		return domain.Task{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Task{}, domain.ErrTitleRequired
	}

	priority, status, err := normalizePriorityAndStatus(input.Priority, input.Status)
	if err != nil {
		return domain.Task{}, err
	}

	subtaskTitles := make([]string, 0, len(input.Subtasks))
	for _, subtaskTitle := range input.Subtasks {
		if trimmed := strings.TrimSpace(subtaskTitle); trimmed != "" {
			subtaskTitles = append(subtaskTitles, trimmed)
		}
	}
	if status == domain.TaskStatusDone && len(subtaskTitles) > 0 {
		return domain.Task{}, domain.ErrSubtasksIncomplete
	}

	task := domain.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		ProjectID:   input.ProjectID,
		AssigneeID:  input.AssigneeID,
		CreatedBy:   p.UserID,
		DueDate:     input.DueDate,
		Priority:    priority,
	}
	task.SetStatus(status, s.deps.now())

	err = s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkReferences(ctx, task.ProjectID, task.AssigneeID); err != nil {
			return err
		}

		if err := s.deps.Tasks.Create(ctx, &task); err != nil {
			return err
		}

		for _, subtaskTitle := range subtaskTitles {
			subtask := domain.Subtask{TaskID: task.ID, Title: subtaskTitle}
			if err := s.deps.Subtasks.Create(ctx, &subtask); err != nil {
				return err
			}
		}

		return s.completion.ReconcileAffected(ctx, task.ProjectID)
	})
	if err != nil {
		return domain.Task{}, domain.StorageError(err)
	}

	return s.load(ctx, task.ID)
}

func (s *TaskService) GetTask(ctx context.Context, _ domain.Principal, id uint64) (domain.Task, error) {
	return s.load(ctx, id)
}

// ListTasks returns tasks in board order with their subtasks and progress.
// Unless includeArchived is set, tasks of projects that left the grace
// window are hidden.
func (s *TaskService) ListTasks(ctx context.Context, _ domain.Principal, filter domain.TaskFilter, includeArchived bool) ([]domain.Task, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if !includeArchived {
		cutoff := s.deps.now().Add(-domain.ArchiveGracePeriod)
		filter.HideArchivedBefore = &cutoff
	}

	tasks, err := s.deps.Tasks.List(ctx, filter)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	if err := s.attachSubtasks(ctx, tasks); err != nil {
		return nil, domain.StorageError(err)
	}
	return tasks, nil
}

func (s *TaskService) MyTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	assignee := p.UserID
	return s.ListTasks(ctx, p, domain.TaskFilter{AssigneeID: &assignee}, false)
}

// UpdateTask applies a full edit. When the task changes project both the old
// and the new project are reconciled.
func (s *TaskService) UpdateTask(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.deps.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.CanEditTask(p, task)); err != nil {
			return err
		}

		title := strings.TrimSpace(input.Title)
		if title == "" {
			return domain.ErrTitleRequired
		}

		priority, status, err := normalizePriorityAndStatus(input.Priority, input.Status)
		if err != nil {
			return err
		}

		if err := s.checkReferences(ctx, input.ProjectID, input.AssigneeID); err != nil {
			return err
		}

		if err := s.ensureCanEnter(ctx, task, status); err != nil {
			return err
		}

		previousProjectID := task.ProjectID

		task.Title = title
		task.Description = strings.TrimSpace(input.Description)
		task.ProjectID = input.ProjectID
		task.AssigneeID = input.AssigneeID
		task.DueDate = input.DueDate
		task.Priority = priority
		task.SetStatus(status, s.deps.now())

		if err := s.deps.Tasks.Update(ctx, task); err != nil {
			return err
		}

		return s.completion.ReconcileAffected(ctx, previousProjectID, task.ProjectID)
	})
	if err != nil {
		return domain.Task{}, domain.StorageError(err)
	}

	return s.load(ctx, id)
}

// MoveTask is the board transition: it changes the status, and optionally
// the position, of a task.
func (s *TaskService) MoveTask(ctx context.Context, p domain.Principal, id uint64, input domain.MoveTaskInput) (domain.Task, error) {
	if !input.Status.Valid() {
		return domain.Task{}, domain.ErrInvalidStatus
	}

	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.deps.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := policy.Authorize(policy.CanEditTask(p, task)); err != nil {
			return err
		}

		if err := s.ensureCanEnter(ctx, task, input.Status); err != nil {
			return err
		}

		task.SetStatus(input.Status, s.deps.now())
		if input.Position != nil {
			task.Position = *input.Position
		}

		if err := s.deps.Tasks.Update(ctx, task); err != nil {
			return err
		}

		return s.completion.ReconcileAffected(ctx, task.ProjectID)
	})
	if err != nil {
		return domain.Task{}, domain.StorageError(err)
	}

	return s.load(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, p domain.Principal, id uint64) error {
	if err := policy.Authorize(policy.CanDeleteTask(p)); err != nil {
		return err
	}

	var blobKeys []string
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		task, err := s.deps.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		files, err := s.deps.Files.ListByTask(ctx, id)
		if err != nil {
			return err
		}
		blobKeys = storageKeys(files)

		if err := s.deps.Tasks.Delete(ctx, id); err != nil {
			return err
		}

		return s.completion.ReconcileAffected(ctx, task.ProjectID)
	})
	if err != nil {
		return domain.StorageError(err)
	}

	s.deps.removeBlobs(ctx, blobKeys)
	return nil
}

// Calendar lists the tasks due within a month, whatever their status or
// project state.
func (s *TaskService) Calendar(ctx context.Context, _ domain.Principal, year int, month int) (domain.CalendarMonth, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return domain.CalendarMonth{}, domain.ErrInvalidMonth
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	tasks, err := s.deps.Tasks.List(ctx, domain.TaskFilter{
		DueFrom:        &first,
		DueTo:          &last,
		OrderByDueDate: true,
	})
	if err != nil {
		return domain.CalendarMonth{}, domain.StorageError(err)
	}
	if err := s.attachSubtasks(ctx, tasks); err != nil {
		return domain.CalendarMonth{}, domain.StorageError(err)
	}

	return domain.CalendarMonth{
		Year:        year,
		Month:       time.Month(month),
		DaysInMonth: last.Day(),
		Tasks:       tasks,
	}, nil
}

// load reads a task with everything a task detail view shows.
func (s *TaskService) load(ctx context.Context, id uint64) (domain.Task, error) {
	task, err := s.deps.Tasks.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, domain.StorageError(err)
	}

	if task.Subtasks, err = s.deps.Subtasks.ListByTask(ctx, id); err != nil {
		return domain.Task{}, domain.StorageError(err)
	}
	if task.Comments, err = s.deps.Comments.ListByTask(ctx, id); err != nil {
		return domain.Task{}, domain.StorageError(err)
	}
	if task.Files, err = s.deps.Files.ListByTask(ctx, id); err != nil {
		return domain.Task{}, domain.StorageError(err)
	}

	progress.Apply(&task)
	return task, nil
}

func (s *TaskService) attachSubtasks(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}

	byTask, err := s.deps.Subtasks.ListByTasks(ctx, ids)
	if err != nil {
		return err
	}

	for i := range tasks {
		tasks[i].Subtasks = byTask[tasks[i].ID]
		progress.Apply(&tasks[i])
	}
	return nil
}

// ensureCanEnter rejects moving a task into done while any of its subtasks
// is still open.
func (s *TaskService) ensureCanEnter(ctx context.Context, task domain.Task, next domain.TaskStatus) error {
	if next != domain.TaskStatusDone || task.Status == domain.TaskStatusDone {
		return nil
	}

	subtasks, err := s.deps.Subtasks.ListByTask(ctx, task.ID)
	if err != nil {
		return err
	}
	for _, subtask := range subtasks {
		if !subtask.Completed {
			return domain.ErrSubtasksIncomplete
		}
	}
	return nil
}

func (s *TaskService) checkReferences(ctx context.Context, projectID, assigneeID *uint64) error {
	if projectID != nil {
		if _, err := s.deps.Projects.GetByID(ctx, *projectID); err != nil {
			return err
		}
	}
	if assigneeID != nil {
		if _, err := s.deps.Users.GetByID(ctx, *assigneeID); err != nil {
			return err
		}
	}
	return nil
}

func normalizePriorityAndStatus(priority domain.TaskPriority, status domain.TaskStatus) (domain.TaskPriority, domain.TaskStatus, error) {
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.Valid() {
		return "", "", domain.ErrInvalidPriority
	}

	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !status.Valid() {
		return "", "", domain.ErrInvalidStatus
	}

	return priority, status, nil
}

func storageKeys(files []domain.File) []string {
	keys := make([]string, 0, len(files))
	for _, file := range files {
		keys = append(keys, file.Filename)
	}
	return keys
}

var _ ports.TaskService = (*TaskService)(nil)
