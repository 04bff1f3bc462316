package service_test

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/adapter/memory"
	"tasktracker/internal/core/domain"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func (s *ServiceSuite) TestUpload_MetadataFailureLeavesNoBlob() {
	task := s.createTask(domain.CreateTaskInput{Title: "attach"})

	s.deps.Files = failingFileRepository{FileRepository: memory.NewFileRepository(s.store)}
	s.build()

	_, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "report.pdf",
		MimeType:     "application/pdf",
		Content:      stringsReader("%PDF-1.4"),
	})
	s.ErrorIs(err, domain.ErrFileMetadataFailed)
	s.ErrorIs(err, domain.ErrStorage)
	s.Empty(s.blobs.Keys())
}

func (s *ServiceSuite) TestUpload_BlobFailure() {
	task := s.createTask(domain.CreateTaskInput{Title: "attach"})
	s.blobs.saveErr = errors.New("disk full")

	_, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "report.pdf",
		Content:      stringsReader("data"),
	})
	s.ErrorIs(err, domain.ErrBlobWriteFailed)

	task, err = s.tasks.GetTask(s.ctx, s.manager, task.ID)
	s.Require().NoError(err)
	s.Empty(task.Files)
}

func (s *ServiceSuite) TestUpload_TooLargeIsNotAStorageFailure() {
	task := s.createTask(domain.CreateTaskInput{Title: "attach"})
	s.blobs.saveErr = fmt.Errorf("%w: limit is 4 bytes", domain.ErrFileTooLarge)

	_, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "big.bin",
		Content:      stringsReader("0123456789"),
	})
	s.ErrorIs(err, domain.ErrFileTooLarge)
	s.NotErrorIs(err, domain.ErrStorage)
}

func (s *ServiceSuite) TestUpload_DetectsMimeTypeAndRoundTrips() {
	task := s.createTask(domain.CreateTaskInput{Title: "attach", AssigneeID: ptr(s.member.UserID)})
	content := "\x89PNG\r\n\x1a\n" + strings.Repeat("x", 5000)

	file, err := s.files.UploadTaskFile(s.ctx, s.member, task.ID, domain.UploadInput{
		OriginalName: `C:\Users\mia\picture.png`,
		MimeType:     "application/octet-stream",
		Content:      stringsReader(content),
	})
	s.Require().NoError(err)
	s.Equal("picture.png", file.OriginalName)
	s.Equal("image/png", file.MimeType)
	s.Equal(int64(len(content)), file.Size)
	s.Equal("Mia Member", file.UploaderName)

	opened, reader, err := s.files.OpenFile(s.ctx, s.other, file.ID)
	s.Require().NoError(err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	s.Require().NoError(err)
	s.Equal(content, string(data))
	s.Equal(file.ID, opened.ID)

	_, err = s.files.UploadTaskFile(s.ctx, s.other, task.ID, domain.UploadInput{Content: stringsReader("x")})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *ServiceSuite) TestDeleteFile_Permissions() {
	task := s.createTask(domain.CreateTaskInput{Title: "attach", AssigneeID: ptr(s.member.UserID)})
	file, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "a.txt",
		MimeType:     "text/plain",
		Content:      stringsReader("a"),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.files.DeleteFile(s.ctx, s.other, file.ID), domain.ErrUnauthorized)
	s.Require().NoError(s.files.DeleteFile(s.ctx, s.member, file.ID))
	s.Empty(s.blobs.Keys())

	_, _, err = s.files.OpenFile(s.ctx, s.manager, file.ID)
	s.ErrorIs(err, domain.ErrFileNotFound)
}

func (s *ServiceSuite) TestProjectFiles() {
	project := s.createProject("Docs")

	_, err := s.files.UploadProjectFile(s.ctx, s.member, project.ID, domain.UploadInput{Content: stringsReader("x")})
	s.ErrorIs(err, domain.ErrUnauthorized)

	file, err := s.files.UploadProjectFile(s.ctx, s.manager, project.ID, domain.UploadInput{
		OriginalName: "plan.txt",
		MimeType:     "text/plain",
		Content:      stringsReader("plan"),
	})
	s.Require().NoError(err)
	s.True(file.IsProjectFile())

	files, err := s.files.ListProjectFiles(s.ctx, s.member, project.ID)
	s.Require().NoError(err)
	s.Len(files, 1)

	task := s.createTask(domain.CreateTaskInput{Title: "attach"})
	taskFile, err := s.files.UploadTaskFile(s.ctx, s.manager, task.ID, domain.UploadInput{
		OriginalName: "a.txt",
		MimeType:     "text/plain",
		Content:      stringsReader("a"),
	})
	s.Require().NoError(err)
	s.ErrorIs(s.files.DeleteProjectFile(s.ctx, s.manager, taskFile.ID), domain.ErrFileNotFound)

	s.ErrorIs(s.files.DeleteFile(s.ctx, s.member, file.ID), domain.ErrUnauthorized)
	s.Require().NoError(s.files.DeleteProjectFile(s.ctx, s.manager, file.ID))

	_, err = s.files.UploadProjectFile(s.ctx, s.manager, 404, domain.UploadInput{Content: stringsReader("x")})
	s.ErrorIs(err, domain.ErrProjectNotFound)
}
