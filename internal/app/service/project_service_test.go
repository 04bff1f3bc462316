package service_test

import (
	"time"

	"tasktracker/internal/core/domain"
)

func (s *ServiceSuite) TestProjects_CrudAndPermissions() {
	_, err := s.projects.CreateProject(s.ctx, s.member, domain.ProjectInput{Name: "Nope"})
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.projects.CreateProject(s.ctx, s.manager, domain.ProjectInput{Name: "  "})
	s.ErrorIs(err, domain.ErrNameRequired)

	project := s.createProject(" Apollo ")
	s.Equal("Apollo", project.Name)
	s.Equal(domain.DefaultProjectColor, project.Color)
	s.Equal(s.manager.UserID, project.CreatedBy)

	updated, err := s.projects.UpdateProject(s.ctx, s.manager, project.ID, domain.ProjectInput{
		Name:        "Artemis",
		Description: "moon",
		Color:       "#ff0000",
	})
	s.Require().NoError(err)
	s.Equal("Artemis", updated.Name)
	s.Equal("#ff0000", updated.Color)

	_, err = s.projects.UpdateProject(s.ctx, s.member, project.ID, domain.ProjectInput{Name: "x"})
	s.ErrorIs(err, domain.ErrUnauthorized)

	_, err = s.projects.GetProject(s.ctx, s.member, 404)
	s.ErrorIs(err, domain.ErrProjectNotFound)
}

func (s *ServiceSuite) TestDeleteProject_CascadesTasksAndFiles() {
	project := s.createProject("Apollo")
	task := s.createTask(domain.CreateTaskInput{Title: "launch", ProjectID: ptr(project.ID)})
	for _, upload := range []func() error{
		func() error {
			_, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
				OriginalName: "a.txt", MimeType: "text/plain", Content: stringsReader("a"),
			})
			return err
		},
		func() error {
			_, err := s.files.UploadProjectFile(s.ctx, s.manager, project.ID, domain.UploadInput{
				OriginalName: "b.txt", MimeType: "text/plain", Content: stringsReader("b"),
			})
			return err
		},
	} {
		s.Require().NoError(upload())
	}
	s.Len(s.blobs.Keys(), 2)

	s.ErrorIs(s.projects.DeleteProject(s.ctx, s.member, project.ID), domain.ErrUnauthorized)
	s.Require().NoError(s.projects.DeleteProject(s.ctx, s.manager, project.ID))

	s.Empty(s.blobs.Keys())
	_, err := s.tasks.GetTask(s.ctx, s.manager, task.ID)
	s.ErrorIs(err, domain.ErrTaskNotFound)
}

func (s *ServiceSuite) TestRestoreProject() {
	project := s.createProject("Apollo")
	task := s.createTask(domain.CreateTaskInput{Title: "launch", ProjectID: ptr(project.ID)})
	s.move(s.manager, task.ID, domain.TaskStatusDone)
	s.True(s.project(project.ID).Archived)

	_, err := s.projects.RestoreProject(s.ctx, s.member, project.ID)
	s.ErrorIs(err, domain.ErrUnauthorized)

	restored, err := s.projects.RestoreProject(s.ctx, s.manager, project.ID)
	s.Require().NoError(err)
	s.False(restored.Archived)
	s.Nil(restored.CompletedAt)

	// The next task change completes it again.
	s.move(s.manager, task.ID, domain.TaskStatusDone)
	s.True(s.project(project.ID).Archived)
}

func (s *ServiceSuite) TestListProjects_ActiveAndArchive() {
	zulu := s.createProject("Zulu")
	s.createProject("Alpha")
	old := s.createProject("Old")
	recent := s.createProject("Recent")

	s.createTask(domain.CreateTaskInput{Title: "open", ProjectID: ptr(zulu.ID)})
	s.createTask(domain.CreateTaskInput{Title: "old", ProjectID: ptr(old.ID), Status: domain.TaskStatusDone})
	s.clock.Advance(time.Hour)
	s.createTask(domain.CreateTaskInput{Title: "recent", ProjectID: ptr(recent.ID), Status: domain.TaskStatusDone})

	active, err := s.projects.ListActiveProjects(s.ctx, s.member)
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Old", "Recent", "Zulu"}, projectNames(active))
	s.Equal(1, active[3].TaskCount)
	s.Equal("Zoe Boss", active[3].CreatorName)

	s.clock.Advance(domain.ArchiveGracePeriod)
	listing, err := s.projects.ListAllProjects(s.ctx, s.member)
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "Zulu"}, projectNames(listing.Active))
	s.Equal([]string{"Recent", "Old"}, projectNames(listing.Archived))
}

func projectNames(summaries []domain.ProjectSummary) []string {
	names := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		names = append(names, summary.Name)
	}
	return names
}
