package ports

import (
	"context"

	"tasktracker/internal/core/domain"
)

// TxManager runs fn as one unit of work. Repositories called with the
// context passed to fn take part in the same transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// ExistsByUsernameOrEmail ignores the user with id excludeID.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uint64) (bool, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uint64) (domain.Project, error)
	// GetForUpdate reads the project and locks it for the rest of the
	// transaction.
	GetForUpdate(ctx context.Context, id uint64) (domain.Project, error)
	Update(ctx context.Context, project domain.Project) error
	// Delete removes the project together with its tasks and files.
	Delete(ctx context.Context, id uint64) error
	ListSummaries(ctx context.Context) ([]domain.ProjectSummary, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uint64) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	// Delete removes the task together with its subtasks, comments and files.
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	CountByProject(ctx context.Context, projectID uint64) (domain.TaskCounts, error)
}

type SubtaskRepository interface {
	Create(ctx context.Context, subtask *domain.Subtask) error
	GetByID(ctx context.Context, id uint64) (domain.Subtask, error)
	Update(ctx context.Context, subtask domain.Subtask) error
	Delete(ctx context.Context, id uint64) error
	ListByTask(ctx context.Context, taskID uint64) ([]domain.Subtask, error)
	ListByTasks(ctx context.Context, taskIDs []uint64) (map[uint64][]domain.Subtask, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uint64) (domain.Comment, error)
	Delete(ctx context.Context, id uint64) error
	ListByTask(ctx context.Context, taskID uint64) ([]domain.Comment, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	GetByID(ctx context.Context, id uint64) (domain.File, error)
	Delete(ctx context.Context, id uint64) error
	ListByTask(ctx context.Context, taskID uint64) ([]domain.File, error)
	ListByProject(ctx context.Context, projectID uint64) ([]domain.File, error)
	// StorageKeysByProject returns the blob keys of the project's files and
	// of the files attached to its tasks.
	StorageKeysByProject(ctx context.Context, projectID uint64) ([]string, error)
}
