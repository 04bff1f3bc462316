package service_test

import (
	"time"

	"tasktracker/internal/core/domain"
)

func (s *ServiceSuite) TestComments_AuthorOrManagerDeletes() {
	task := s.createTask(domain.CreateTaskInput{Title: "discuss"})

	comment, err := s.comments.AddComment(s.ctx, s.other, task.ID, " looks good ")
	s.Require().NoError(err)
	s.Equal("looks good", comment.Content)
	s.Equal("Oli Other", comment.AuthorName)

	s.ErrorIs(s.comments.DeleteComment(s.ctx, s.member, comment.ID), domain.ErrUnauthorized)
	s.Require().NoError(s.comments.DeleteComment(s.ctx, s.manager, comment.ID))

	own, err := s.comments.AddComment(s.ctx, s.member, task.ID, "mine")
	s.Require().NoError(err)
	s.Require().NoError(s.comments.DeleteComment(s.ctx, s.member, own.ID))

	s.ErrorIs(s.comments.DeleteComment(s.ctx, s.manager, own.ID), domain.ErrCommentNotFound)
}

func (s *ServiceSuite) TestComments_ListOldestFirst() {
	task := s.createTask(domain.CreateTaskInput{Title: "discuss"})
	for _, content := range []string{"first", "second"} {
		_, err := s.comments.AddComment(s.ctx, s.member, task.ID, content)
		s.Require().NoError(err)
		s.clock.Advance(time.Minute)
	}

	comments, err := s.comments.ListComments(s.ctx, s.member, task.ID)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("first", comments[0].Content)
	s.Equal("second", comments[1].Content)

	_, err = s.comments.AddComment(s.ctx, s.member, task.ID, "  ")
	s.ErrorIs(err, domain.ErrContentRequired)

	_, err = s.comments.ListComments(s.ctx, s.member, 404)
	s.ErrorIs(err, domain.ErrTaskNotFound)
}
