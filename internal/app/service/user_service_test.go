package service_test

import (
	"time"

	"tasktracker/internal/core/domain"
)

func (s *ServiceSuite) TestLogin() {
	result, err := s.users.Login(s.ctx, " mia ", "secret")
	s.Require().NoError(err)
	s.Equal("mia", result.User.Username)
	s.NotEmpty(result.Token)

	_, err = s.users.Login(s.ctx, "mia", "wrong")
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.users.Login(s.ctx, "nobody", "secret")
	s.ErrorIs(err, domain.ErrInvalidCredentials)

	_, err = s.users.Authenticate(s.ctx, "garbage")
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *ServiceSuite) TestAuthenticate_UsesStoredRole() {
	result, err := s.users.Login(s.ctx, "mia", "secret")
	s.Require().NoError(err)

	_, err = s.users.UpdateUser(s.ctx, s.manager, s.member.UserID, domain.UpdateUserInput{
		Username: "mia", Email: "mia@example.com", FullName: "Mia Member", Role: domain.RoleManager,
	})
	s.Require().NoError(err)

	p, err := s.users.Authenticate(s.ctx, result.Token)
	s.Require().NoError(err)
	s.Equal(domain.RoleManager, p.Role)

	s.Require().NoError(s.users.DeleteUser(s.ctx, s.manager, s.member.UserID))
	_, err = s.users.Authenticate(s.ctx, result.Token)
	s.ErrorIs(err, domain.ErrUnauthenticated)
}

func (s *ServiceSuite) TestEnsureBootstrapManager_OnlyWhenEmpty() {
	created, err := s.users.EnsureBootstrapManager(s.ctx, domain.CreateUserInput{
		Username: "second", Email: "second@example.com", FullName: "Second", Password: "secret",
	})
	s.Require().NoError(err)
	s.False(created)

	boss, err := s.users.CurrentUser(s.ctx, s.manager)
	s.Require().NoError(err)
	s.Equal(domain.RoleManager, boss.Role)
}

func (s *ServiceSuite) TestUserManagement() {
	_, err := s.users.CreateUser(s.ctx, s.member, domain.CreateUserInput{})
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.users.CreateUser(s.ctx, s.manager, domain.CreateUserInput{Username: "x"})
	s.ErrorIs(err, domain.ErrUserFieldsRequired)

	_, err = s.users.CreateUser(s.ctx, s.manager, domain.CreateUserInput{
		Username: "mia", Email: "new@example.com", FullName: "Dup", Password: "secret",
	})
	s.ErrorIs(err, domain.ErrDuplicateUser)
	s.ErrorIs(err, domain.ErrConflict)

	_, err = s.users.CreateUser(s.ctx, s.manager, domain.CreateUserInput{
		Username: "kim", Email: "kim@example.com", FullName: "Kim", Password: "secret", Role: "admin",
	})
	s.ErrorIs(err, domain.ErrInvalidRole)

	_, err = s.users.UpdateUser(s.ctx, s.manager, s.manager.UserID, domain.UpdateUserInput{
		Username: "boss", Email: "boss@example.com", FullName: "Zoe Boss", Role: domain.RoleMember,
	})
	s.ErrorIs(err, domain.ErrOwnRoleChange)

	_, err = s.users.UpdateUser(s.ctx, s.manager, s.other.UserID, domain.UpdateUserInput{
		Username: "mia", Email: "oli@example.com", FullName: "Oli Other",
	})
	s.ErrorIs(err, domain.ErrDuplicateUser)

	updated, err := s.users.UpdateUser(s.ctx, s.manager, s.other.UserID, domain.UpdateUserInput{
		Username: "oliver", Email: "oliver@example.com", FullName: "Oliver Other", Password: "changed",
	})
	s.Require().NoError(err)
	s.Equal(domain.RoleMember, updated.Role)
	s.login("oliver", "changed")

	s.ErrorIs(s.users.DeleteUser(s.ctx, s.manager, s.manager.UserID), domain.ErrSelfDeletion)
	s.ErrorIs(s.users.DeleteUser(s.ctx, s.manager, 404), domain.ErrUserNotFound)
	s.ErrorIs(s.users.DeleteUser(s.ctx, s.member, s.other.UserID), domain.ErrUnauthorized)

	_, err = s.users.GetUser(s.ctx, s.member, s.other.UserID)
	s.ErrorIs(err, domain.ErrUnauthorized)
	self, err := s.users.GetUser(s.ctx, s.member, s.member.UserID)
	s.Require().NoError(err)
	s.Equal("mia", self.Username)

	users, err := s.users.ListUsers(s.ctx, s.member)
	s.Require().NoError(err)
	s.Len(users, 3)
}

func (s *ServiceSuite) TestDeleteUser_UnassignsTasks() {
	task := s.createTask(domain.CreateTaskInput{Title: "orphan", AssigneeID: ptr(s.other.UserID)})
	s.Require().NoError(s.users.DeleteUser(s.ctx, s.manager, s.other.UserID))

	reloaded, err := s.tasks.GetTask(s.ctx, s.manager, task.ID)
	s.Require().NoError(err)
	s.Nil(reloaded.AssigneeID)
}

func (s *ServiceSuite) TestMemberStats() {
	day := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	onTime := s.createTask(domain.CreateTaskInput{Title: "on time", AssigneeID: ptr(s.member.UserID), DueDate: day(10)})
	late := s.createTask(domain.CreateTaskInput{Title: "late", AssigneeID: ptr(s.member.UserID), DueDate: day(9)})
	s.createTask(domain.CreateTaskInput{Title: "open", AssigneeID: ptr(s.member.UserID)})
	s.createTask(domain.CreateTaskInput{Title: "other", AssigneeID: ptr(s.other.UserID)})

	s.move(s.member, onTime.ID, domain.TaskStatusDone)
	s.move(s.member, late.ID, domain.TaskStatusDone)

	_, err := s.users.MemberStats(s.ctx, s.member)
	s.ErrorIs(err, domain.ErrUnauthorized)

	stats, err := s.users.MemberStats(s.ctx, s.manager)
	s.Require().NoError(err)
	s.Require().Len(stats, 3)

	s.Equal("Mia Member", stats[0].User.FullName)
	s.Equal(3, stats[0].TaskCount)
	s.Equal(2, stats[0].CompletedCount)
	s.Equal(1, stats[0].OnTimeCount)
	s.Equal(1, stats[0].LateCount)

	s.Equal("Oli Other", stats[1].User.FullName)
	s.Equal(1, stats[1].TaskCount)
	s.Equal(domain.RoleManager, stats[2].User.Role)
}
