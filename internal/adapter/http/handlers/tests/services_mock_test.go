package tests

import (
	"context"
	"io"

	"tasktracker/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, p domain.Principal, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, p, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, p domain.Principal, id uint64) (domain.Task, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, p domain.Principal, filter domain.TaskFilter, includeArchived bool) ([]domain.Task, error) {
	args := m.Called(ctx, p, filter, includeArchived)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) MyTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	args := m.Called(ctx, p)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, p, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) MoveTask(ctx context.Context, p domain.Principal, id uint64, input domain.MoveTaskInput) (domain.Task, error) {
	args := m.Called(ctx, p, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *taskServiceMock) Calendar(ctx context.Context, p domain.Principal, year int, month int) (domain.CalendarMonth, error) {
	args := m.Called(ctx, p, year, month)
	return args.Get(0).(domain.CalendarMonth), args.Error(1)
}

type subtaskServiceMock struct {
	mock.Mock
}

func (m *subtaskServiceMock) AddSubtask(ctx context.Context, p domain.Principal, taskID uint64, title string) (domain.SubtaskChange, error) {
	args := m.Called(ctx, p, taskID, title)
	return args.Get(0).(domain.SubtaskChange), args.Error(1)
}

func (m *subtaskServiceMock) ToggleSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.SubtaskChange), args.Error(1)
}

func (m *subtaskServiceMock) DeleteSubtask(ctx context.Context, p domain.Principal, id uint64) (domain.SubtaskChange, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.SubtaskChange), args.Error(1)
}

type commentServiceMock struct {
	mock.Mock
}

func (m *commentServiceMock) AddComment(ctx context.Context, p domain.Principal, taskID uint64, content string) (domain.Comment, error) {
	args := m.Called(ctx, p, taskID, content)
	return args.Get(0).(domain.Comment), args.Error(1)
}

func (m *commentServiceMock) ListComments(ctx context.Context, p domain.Principal, taskID uint64) ([]domain.Comment, error) {
	args := m.Called(ctx, p, taskID)

	var comments []domain.Comment
	if value := args.Get(0); value != nil {
		comments = value.([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *commentServiceMock) DeleteComment(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

type fileServiceMock struct {
	mock.Mock
}

func (m *fileServiceMock) UploadTaskFile(ctx context.Context, p domain.Principal, taskID uint64, input domain.UploadInput) (domain.File, error) {
	args := m.Called(ctx, p, taskID, input)
	return args.Get(0).(domain.File), args.Error(1)
}

func (m *fileServiceMock) UploadProjectFile(ctx context.Context, p domain.Principal, projectID uint64, input domain.UploadInput) (domain.File, error) {
	args := m.Called(ctx, p, projectID, input)
	return args.Get(0).(domain.File), args.Error(1)
}

func (m *fileServiceMock) ListProjectFiles(ctx context.Context, p domain.Principal, projectID uint64) ([]domain.File, error) {
	args := m.Called(ctx, p, projectID)

	var files []domain.File
	if value := args.Get(0); value != nil {
		files = value.([]domain.File)
	}
	return files, args.Error(1)
}

func (m *fileServiceMock) OpenFile(ctx context.Context, p domain.Principal, id uint64) (domain.File, io.ReadCloser, error) {
	args := m.Called(ctx, p, id)

	var content io.ReadCloser
	if value := args.Get(1); value != nil {
		content = value.(io.ReadCloser)
	}
	return args.Get(0).(domain.File), content, args.Error(2)
}

func (m *fileServiceMock) DeleteFile(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *fileServiceMock) DeleteProjectFile(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

type projectServiceMock struct {
	mock.Mock
}

func (m *projectServiceMock) CreateProject(ctx context.Context, p domain.Principal, input domain.ProjectInput) (domain.Project, error) {
	args := m.Called(ctx, p, input)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *projectServiceMock) GetProject(ctx context.Context, p domain.Principal, id uint64) (domain.Project, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *projectServiceMock) UpdateProject(ctx context.Context, p domain.Principal, id uint64, input domain.ProjectInput) (domain.Project, error) {
	args := m.Called(ctx, p, id, input)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *projectServiceMock) DeleteProject(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *projectServiceMock) RestoreProject(ctx context.Context, p domain.Principal, id uint64) (domain.Project, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *projectServiceMock) ListActiveProjects(ctx context.Context, p domain.Principal) ([]domain.ProjectSummary, error) {
	args := m.Called(ctx, p)

	var projects []domain.ProjectSummary
	if value := args.Get(0); value != nil {
		projects = value.([]domain.ProjectSummary)
	}
	return projects, args.Error(1)
}

func (m *projectServiceMock) ListAllProjects(ctx context.Context, p domain.Principal) (domain.ProjectListing, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.ProjectListing), args.Error(1)
}

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(domain.LoginResult), args.Error(1)
}

func (m *userServiceMock) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Principal), args.Error(1)
}

func (m *userServiceMock) CurrentUser(ctx context.Context, p domain.Principal) (domain.User, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) ListUsers(ctx context.Context, p domain.Principal) ([]domain.User, error) {
	args := m.Called(ctx, p)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userServiceMock) GetUser(ctx context.Context, p domain.Principal, id uint64) (domain.User, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) CreateUser(ctx context.Context, p domain.Principal, input domain.CreateUserInput) (domain.User, error) {
	args := m.Called(ctx, p, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) UpdateUser(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateUserInput) (domain.User, error) {
	args := m.Called(ctx, p, id, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userServiceMock) DeleteUser(ctx context.Context, p domain.Principal, id uint64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *userServiceMock) MemberStats(ctx context.Context, p domain.Principal) ([]domain.MemberStats, error) {
	args := m.Called(ctx, p)

	var stats []domain.MemberStats
	if value := args.Get(0); value != nil {
		stats = value.([]domain.MemberStats)
	}
	return stats, args.Error(1)
}
