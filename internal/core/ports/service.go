package ports

import (
	"context"
	"io"

	"tasktracker/internal/core/domain"
)

type TaskService interface {
	CreateTask(ctx context.Context, p domain.Principal, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, p domain.Principal, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context, p domain.Principal, filter domain.TaskFilter, includeArchived bool) ([]domain.Task, error)
	MyTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error)
	UpdateTask(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	MoveTask(ctx context.Context, p domain.Principal, id uint64, input domain.MoveTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, p domain.Principal, id uint64) error
	Calendar(ctx context.Context, p domain.Principal, year int, month int) (domain.CalendarMonth, error)
}

type SubtaskService interface {
	AddSubtask(ctx context.Context, p domain.Principal, taskID uint64, title string) (domain.SubtaskChange, error)
	ToggleSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error)
	DeleteSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error)
}

type CommentService interface {
	AddComment(ctx context.Context, p domain.Principal, taskID uint64, content string) (domain.Comment, error)
	ListComments(ctx context.Context, p domain.Principal, taskID uint64) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, p domain.Principal, id uint64) error
}

type FileService interface {
	UploadTaskFile(ctx context.Context, p domain.Principal, taskID uint64, input domain.UploadInput) (domain.File, error)
	UploadProjectFile(ctx context.Context, p domain.Principal, projectID uint64, input domain.UploadInput) (domain.File, error)
	ListProjectFiles(ctx context.Context, p domain.Principal, projectID uint64) ([]domain.File, error)
	OpenFile(ctx context.Context, p domain.Principal, id uint64) (domain.File, io.ReadCloser, error)
	DeleteFile(ctx context.Context, p domain.Principal, id uint64) error
	DeleteProjectFile(ctx context.Context, p domain.Principal, id uint64) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, p domain.Principal, input domain.ProjectInput) (domain.Project, error)
	GetProject(ctx context.Context, p domain.Principal, id uint64) (domain.Project, error)
	UpdateProject(ctx context.Context, p domain.Principal, id uint64, input domain.ProjectInput) (domain.Project, error)
	DeleteProject(ctx context.Context, p domain.Principal, id uint64) error
	RestoreProject(ctx context.Context, p domain.Principal, id uint64) (domain.Project, error)
	ListActiveProjects(ctx context.Context, p domain.Principal) ([]domain.ProjectSummary, error)
	ListAllProjects(ctx context.Context, p domain.Principal) (domain.ProjectListing, error)
}

type UserService interface {
	Login(ctx context.Context, username, password string) (domain.LoginResult, error)
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
	CurrentUser(ctx context.Context, p domain.Principal) (domain.User, error)
	ListUsers(ctx context.Context, p domain.Principal) ([]domain.User, error)
	GetUser(ctx context.Context, p domain.Principal, id uint64) (domain.User, error)
	CreateUser(ctx context.Context, p domain.Principal, input domain.CreateUserInput) (domain.User, error)
	UpdateUser(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateUserInput) (domain.User, error)
	DeleteUser(ctx context.Context, p domain.Principal, id uint64) error
	MemberStats(ctx context.Context, p domain.Principal) ([]domain.MemberStats, error)
}
