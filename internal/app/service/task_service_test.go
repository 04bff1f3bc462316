package service_test

import (
	"time"

	"tasktracker/internal/core/domain"
)

func (s *ServiceSuite) TestCompletion_AllTasksDoneArchivesProject() {
	project := s.createProject("Apollo")
	first := s.createTask(domain.CreateTaskInput{Title: "one", ProjectID: ptr(project.ID)})
	second := s.createTask(domain.CreateTaskInput{Title: "two", ProjectID: ptr(project.ID)})
	s.False(s.project(project.ID).Archived)

	s.move(s.manager, first.ID, domain.TaskStatusDone)
	s.False(s.project(project.ID).Archived)

	s.move(s.manager, second.ID, domain.TaskStatusDone)
	completed := s.project(project.ID)
	s.True(completed.Archived)
	s.Require().NotNil(completed.CompletedAt)
	s.Equal(s.clock.Now(), *completed.CompletedAt)

	// New open work reverts the completion.
	s.createTask(domain.CreateTaskInput{Title: "three", ProjectID: ptr(project.ID)})
	reverted := s.project(project.ID)
	s.False(reverted.Archived)
	s.Nil(reverted.CompletedAt)
}

func (s *ServiceSuite) TestCompletion_IsIdempotent() {
	project := s.createProject("Apollo")
	task := s.createTask(domain.CreateTaskInput{Title: "one", ProjectID: ptr(project.ID)})
	s.move(s.manager, task.ID, domain.TaskStatusDone)
	completedAt := *s.project(project.ID).CompletedAt

	s.clock.Advance(time.Hour)
	s.Require().NoError(s.completion.Reconcile(s.ctx, project.ID))
	s.Require().NoError(s.completion.Reconcile(s.ctx, project.ID))
	s.move(s.manager, task.ID, domain.TaskStatusDone)

	again := s.project(project.ID)
	s.True(again.Archived)
	s.Equal(completedAt, *again.CompletedAt)
}

func (s *ServiceSuite) TestCompletion_ProjectWithoutTasksNeverCompletes() {
	project := s.createProject("Empty")
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.completion.Reconcile(s.ctx, project.ID))
	}

	got := s.project(project.ID)
	s.False(got.Archived)
	s.Nil(got.CompletedAt)
}

func (s *ServiceSuite) TestCompletion_DeletingLastOpenTaskCompletesProject() {
	project := s.createProject("Apollo")
	done := s.createTask(domain.CreateTaskInput{Title: "done", ProjectID: ptr(project.ID), Status: domain.TaskStatusDone})
	open := s.createTask(domain.CreateTaskInput{Title: "open", ProjectID: ptr(project.ID)})
	s.Require().NotNil(done.CompletedAt)
	s.False(s.project(project.ID).Archived)

	s.Require().NoError(s.tasks.DeleteTask(s.ctx, s.manager, open.ID))
	s.True(s.project(project.ID).Archived)
}

func (s *ServiceSuite) TestUpdateTask_MoveBetweenProjectsReconcilesBoth() {
	source := s.createProject("Source")
	target := s.createProject("Target")
	task := s.createTask(domain.CreateTaskInput{
		Title:      "moving",
		ProjectID:  ptr(source.ID),
		AssigneeID: ptr(s.member.UserID),
	})
	finished := s.createTask(domain.CreateTaskInput{Title: "finished", ProjectID: ptr(source.ID), Status: domain.TaskStatusDone})
	s.createTask(domain.CreateTaskInput{Title: "target done", ProjectID: ptr(target.ID), Status: domain.TaskStatusDone})
	s.True(s.project(target.ID).Archived)
	s.False(s.project(source.ID).Archived)

	updated, err := s.tasks.UpdateTask(s.ctx, s.member, task.ID, domain.UpdateTaskInput{
		Title:      "moving",
		ProjectID:  ptr(target.ID),
		AssigneeID: ptr(s.member.UserID),
		Priority:   domain.TaskPriorityHigh,
		Status:     domain.TaskStatusTodo,
	})
	s.Require().NoError(err)
	s.Equal(target.ID, *updated.ProjectID)
	s.Equal("Target", updated.Project.Name)

	s.True(s.project(source.ID).Archived, "only %q remains in the source project", finished.Title)
	s.False(s.project(target.ID).Archived)
}

func (s *ServiceSuite) TestUpdateTask_MemberNotAssignedIsUnauthorized() {
	task := s.createTask(domain.CreateTaskInput{Title: "theirs", AssigneeID: ptr(s.other.UserID)})

	_, err := s.tasks.UpdateTask(s.ctx, s.member, task.ID, domain.UpdateTaskInput{Title: "mine now"})
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.tasks.MoveTask(s.ctx, s.member, task.ID, domain.MoveTaskInput{Status: domain.TaskStatusInProgress})
	s.ErrorIs(err, domain.ErrUnauthorized)

	moved := s.move(s.other, task.ID, domain.TaskStatusInProgress)
	s.Equal(domain.TaskStatusInProgress, moved.Status)
}

func (s *ServiceSuite) TestCreateTask_Validation() {
	_, err := s.tasks.CreateTask(s.ctx, s.member, domain.CreateTaskInput{Title: "nope"})
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.tasks.CreateTask(s.ctx, s.manager, domain.CreateTaskInput{Title: "   "})
	s.ErrorIs(err, domain.ErrTitleRequired)

	_, err = s.tasks.CreateTask(s.ctx, s.manager, domain.CreateTaskInput{Title: "x", Priority: "urgent"})
	s.ErrorIs(err, domain.ErrInvalidPriority)

	_, err = s.tasks.CreateTask(s.ctx, s.manager, domain.CreateTaskInput{Title: "x", Status: "blocked"})
	s.ErrorIs(err, domain.ErrValidation)

	_, err = s.tasks.CreateTask(s.ctx, s.manager, domain.CreateTaskInput{Title: "x", ProjectID: ptr(uint64(99))})
	s.ErrorIs(err, domain.ErrProjectNotFound)
}

func (s *ServiceSuite) TestCreateTask_DefaultsAndSubtasks() {
	task := s.createTask(domain.CreateTaskInput{
		Title:    "  Write report ",
		Subtasks: []string{" outline ", "", "draft", "   ", "review"},
	})

	s.Equal("Write report", task.Title)
	s.Equal(domain.TaskPriorityMedium, task.Priority)
	s.Equal(domain.TaskStatusTodo, task.Status)
	s.Equal(s.manager.UserID, task.CreatedBy)
	s.Nil(task.CompletedAt)
	s.Require().Len(task.Subtasks, 3)
	s.Equal("outline", task.Subtasks[0].Title)
	s.Equal("draft", task.Subtasks[1].Title)
	s.Equal("review", task.Subtasks[2].Title)
	s.Equal(0, task.Progress)
}

func (s *ServiceSuite) TestMoveTask_DoneRequiresCompletedSubtasks() {
	task := s.createTask(domain.CreateTaskInput{Title: "checklist", Subtasks: []string{"a", "b"}})

	_, err := s.tasks.MoveTask(s.ctx, s.manager, task.ID, domain.MoveTaskInput{Status: domain.TaskStatusDone})
	s.ErrorIs(err, domain.ErrSubtasksIncomplete)

	_, err = s.tasks.CreateTask(s.ctx, s.manager, domain.CreateTaskInput{
		Title:    "born done",
		Status:   domain.TaskStatusDone,
		Subtasks: []string{"a"},
	})
	s.ErrorIs(err, domain.ErrSubtasksIncomplete)

	for _, subtask := range task.Subtasks {
		_, err := s.subtasks.ToggleSubtask(s.ctx, s.manager, subtask.ID)
		s.Require().NoError(err)
	}

	done := s.move(s.manager, task.ID, domain.TaskStatusDone)
	s.Equal(domain.TaskStatusDone, done.Status)
	s.Require().NotNil(done.CompletedAt)
	s.Equal(100, done.Progress)
}

func (s *ServiceSuite) TestMoveTask_CompletedAtFollowsStatus() {
	task := s.createTask(domain.CreateTaskInput{Title: "flip"})

	done := s.move(s.manager, task.ID, domain.TaskStatusDone)
	s.Require().NotNil(done.CompletedAt)

	s.clock.Advance(time.Hour)
	again, err := s.tasks.MoveTask(s.ctx, s.manager, task.ID, domain.MoveTaskInput{Status: domain.TaskStatusDone, Position: ptr(4)})
	s.Require().NoError(err)
	s.Equal(*done.CompletedAt, *again.CompletedAt)
	s.Equal(4, again.Position)

	reopened := s.move(s.manager, task.ID, domain.TaskStatusInProgress)
	s.Nil(reopened.CompletedAt)

	_, err = s.tasks.MoveTask(s.ctx, s.manager, task.ID, domain.MoveTaskInput{Status: "archived"})
	s.ErrorIs(err, domain.ErrInvalidStatus)
}

func (s *ServiceSuite) TestListTasks_HidesArchivedProjectsAfterGracePeriod() {
	project := s.createProject("Apollo")
	task := s.createTask(domain.CreateTaskInput{Title: "launch", ProjectID: ptr(project.ID)})
	s.createTask(domain.CreateTaskInput{Title: "loose"})
	s.move(s.manager, task.ID, domain.TaskStatusDone)

	visible, err := s.tasks.ListTasks(s.ctx, s.member, domain.TaskFilter{}, false)
	s.Require().NoError(err)
	s.Len(visible, 2)

	s.clock.Advance(domain.ArchiveGracePeriod)
	visible, err = s.tasks.ListTasks(s.ctx, s.member, domain.TaskFilter{}, false)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal("loose", visible[0].Title)

	all, err := s.tasks.ListTasks(s.ctx, s.member, domain.TaskFilter{}, true)
	s.Require().NoError(err)
	s.Len(all, 2)

	listing, err := s.projects.ListAllProjects(s.ctx, s.member)
	s.Require().NoError(err)
	s.Empty(listing.Active)
	s.Require().Len(listing.Archived, 1)
	s.Equal(1, listing.Archived[0].DoneCount)
}

func (s *ServiceSuite) TestListTasks_ProgressAndMine() {
	task := s.createTask(domain.CreateTaskInput{
		Title:      "three steps",
		AssigneeID: ptr(s.member.UserID),
		Subtasks:   []string{"a", "b", "c"},
	})
	s.createTask(domain.CreateTaskInput{Title: "someone else", AssigneeID: ptr(s.other.UserID)})

	_, err := s.subtasks.ToggleSubtask(s.ctx, s.member, task.Subtasks[0].ID)
	s.Require().NoError(err)

	mine, err := s.tasks.MyTasks(s.ctx, s.member)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(task.ID, mine[0].ID)
	s.Equal(33, mine[0].Progress)
	s.Equal("Mia Member", mine[0].Assignee.FullName)

	invalid := domain.TaskStatus("nope")
	_, err = s.tasks.ListTasks(s.ctx, s.member, domain.TaskFilter{Status: &invalid}, false)
	s.ErrorIs(err, domain.ErrInvalidStatus)
}

func (s *ServiceSuite) TestDeleteTask_RemovesAttachments() {
	task := s.createTask(domain.CreateTaskInput{Title: "with file"})
	_, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "notes.txt",
		MimeType:     "text/plain",
		Content:      stringsReader("hello"),
	})
	s.Require().NoError(err)
	s.Len(s.blobs.Keys(), 1)

	s.ErrorIs(s.tasks.DeleteTask(s.ctx, s.member, task.ID), domain.ErrUnauthorized)
	s.Require().NoError(s.tasks.DeleteTask(s.ctx, s.manager, task.ID))
	s.Empty(s.blobs.Keys())

	_, err = s.tasks.GetTask(s.ctx, s.manager, task.ID)
	s.ErrorIs(err, domain.ErrTaskNotFound)
	s.ErrorIs(s.tasks.DeleteTask(s.ctx, s.manager, task.ID), domain.ErrNotFound)
}

func (s *ServiceSuite) TestCalendar() {
	due := func(month time.Month, day int) *time.Time {
		d := time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
		return &d
	}
	s.createTask(domain.CreateTaskInput{Title: "end of feb", DueDate: due(time.February, 28)})
	s.createTask(domain.CreateTaskInput{Title: "late feb", DueDate: due(time.February, 20)})
	s.createTask(domain.CreateTaskInput{Title: "early feb", DueDate: due(time.February, 1), Status: domain.TaskStatusDone})
	s.createTask(domain.CreateTaskInput{Title: "march", DueDate: due(time.March, 1)})
	s.createTask(domain.CreateTaskInput{Title: "undated"})

	month, err := s.tasks.Calendar(s.ctx, s.member, 2026, 2)
	s.Require().NoError(err)
	s.Equal(28, month.DaysInMonth)
	s.Equal(time.February, month.Month)
	s.Require().Len(month.Tasks, 3)
	s.Equal("early feb", month.Tasks[0].Title)
	s.Equal("late feb", month.Tasks[1].Title)
	s.Equal("end of feb", month.Tasks[2].Title)
	s.Equal(100, month.Tasks[0].Progress)

	_, err = s.tasks.Calendar(s.ctx, s.member, 2026, 13)
	s.ErrorIs(err, domain.ErrInvalidMonth)
}

func (s *ServiceSuite) TestCalendar_CarriesSubtaskProgress() {
	due := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	s.createTask(domain.CreateTaskInput{Title: "done one", DueDate: &due, Status: domain.TaskStatusDone})
	half := s.createTask(domain.CreateTaskInput{Title: "half", DueDate: &due, Subtasks: []string{"a", "b"}})
	_, err := s.subtasks.ToggleSubtask(s.ctx, s.manager, half.Subtasks[0].ID)
	s.Require().NoError(err)

	month, err := s.tasks.Calendar(s.ctx, s.member, 2026, 2)
	s.Require().NoError(err)
	s.Require().Len(month.Tasks, 2)

	byTitle := map[string]domain.Task{}
	for _, task := range month.Tasks {
		byTitle[task.Title] = task
	}
	s.Equal(100, byTitle["done one"].Progress)
	s.Equal(50, byTitle["half"].Progress)
	s.Equal(50, byTitle["half"].SubtaskProgress)
	s.Len(byTitle["half"].Subtasks, 2)
}

func (s *ServiceSuite) TestUpdateTask_DoneGuardAndCompletedAt() {
	task := s.createTask(domain.CreateTaskInput{Title: "edit me", Subtasks: []string{"a"}})
	edit := func(status domain.TaskStatus) (domain.Task, error) {
		return s.tasks.UpdateTask(s.ctx, s.manager, task.ID, domain.UpdateTaskInput{
			Title:    "edit me",
			Priority: domain.TaskPriorityLow,
			Status:   status,
		})
	}

	_, err := edit(domain.TaskStatusDone)
	s.ErrorIs(err, domain.ErrSubtasksIncomplete)
	s.ErrorIs(err, domain.ErrValidation)
	unchanged, err := s.tasks.GetTask(s.ctx, s.manager, task.ID)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusTodo, unchanged.Status)
	s.Equal(domain.TaskPriorityMedium, unchanged.Priority)

	_, err = s.subtasks.ToggleSubtask(s.ctx, s.manager, task.Subtasks[0].ID)
	s.Require().NoError(err)

	done, err := edit(domain.TaskStatusDone)
	s.Require().NoError(err)
	s.Require().NotNil(done.CompletedAt)
	s.Equal(s.clock.Now(), *done.CompletedAt)

	reopened, err := edit(domain.TaskStatusInProgress)
	s.Require().NoError(err)
	s.Equal(domain.TaskStatusInProgress, reopened.Status)
	s.Nil(reopened.CompletedAt)
}
