package service_test

import (
	"tasktracker/internal/core/domain"
)

func (s *ServiceSuite) TestSubtasks_ProgressOnEveryChange() {
	task := s.createTask(domain.CreateTaskInput{Title: "steps", AssigneeID: ptr(s.member.UserID)})

	added, err := s.subtasks.AddSubtask(s.ctx, s.member, task.ID, "  first ")
	s.Require().NoError(err)
	s.Equal("first", added.Subtask.Title)
	s.Equal(task.ID, added.TaskID)
	s.Equal(0, added.Progress)

	second, err := s.subtasks.AddSubtask(s.ctx, s.member, task.ID, "second")
	s.Require().NoError(err)

	toggled, err := s.subtasks.ToggleSubtask(s.ctx, s.member, added.Subtask.ID)
	s.Require().NoError(err)
	s.True(toggled.Subtask.Completed)
	s.Equal(s.member.UserID, *toggled.Subtask.CompletedBy)
	s.Equal(50, toggled.Progress)

	deleted, err := s.subtasks.DeleteSubtask(s.ctx, s.member, second.Subtask.ID)
	s.Require().NoError(err)
	s.Nil(deleted.Subtask)
	s.Equal(100, deleted.Progress)

	untoggled, err := s.subtasks.ToggleSubtask(s.ctx, s.member, added.Subtask.ID)
	s.Require().NoError(err)
	s.False(untoggled.Subtask.Completed)
	s.Nil(untoggled.Subtask.CompletedBy)
	s.Equal(0, untoggled.Progress)
}

func (s *ServiceSuite) TestSubtasks_Errors() {
	task := s.createTask(domain.CreateTaskInput{Title: "steps", Subtasks: []string{"only"}})

	_, err := s.subtasks.AddSubtask(s.ctx, s.manager, task.ID, "   ")
	s.ErrorIs(err, domain.ErrTitleRequired)

	_, err = s.subtasks.AddSubtask(s.ctx, s.manager, 404, "ghost")
	s.ErrorIs(err, domain.ErrTaskNotFound)

	_, err = s.subtasks.ToggleSubtask(s.ctx, s.member, task.Subtasks[0].ID)
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.subtasks.DeleteSubtask(s.ctx, s.manager, 404)
	s.ErrorIs(err, domain.ErrSubtaskNotFound)
}
