package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
)

const (
	defaultMimeType = "application/octet-stream"
	sniffLength     = 3072
)

type FileService struct {
	deps Deps
}

func NewFileService(deps Deps) *FileService {
	return &FileService{deps: deps}
}

func (s *FileService) UploadTaskFile(ctx context.Context, p domain.Principal, taskID uint64, input domain.UploadInput) (domain.File, error) {
	task, err := s.deps.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return domain.File{}, domain.StorageError(err)
	}

	if err := policy.Authorize(policy.CanEditTask(p, task)); err != nil {
		return domain.File{}, err
	}

	return s.store(ctx, domain.File{TaskID: &taskID, UserID: p.UserID}, input)
}

func (s *FileService) UploadProjectFile(ctx context.Context, p domain.Principal, projectID uint64, input domain.UploadInput) (domain.File, error) {
	if err := policy.Authorize(policy.CanManageProjectFiles(p)); err != nil {
		return domain.File{}, err
	}

	if _, err := s.deps.Projects.GetByID(ctx, projectID); err != nil {
		return domain.File{}, domain.StorageError(err)
	}

	return s.store(ctx, domain.File{ProjectID: &projectID, UserID: p.UserID}, input)
}

func (s *FileService) ListProjectFiles(ctx context.Context, _ domain.Principal, projectID uint64) ([]domain.File, error) {
	if _, err := s.deps.Projects.GetByID(ctx, projectID); err != nil {
		return nil, domain.StorageError(err)
	}

	files, err := s.deps.Files.ListByProject(ctx, projectID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return files, nil
}

// OpenFile returns the file metadata and a reader over its contents. The
// caller closes the reader.
func (s *FileService) OpenFile(ctx context.Context, _ domain.Principal, id uint64) (domain.File, io.ReadCloser, error) {
	file, err := s.deps.Files.GetByID(ctx, id)
	if err != nil {
		return domain.File{}, nil, domain.StorageError(err)
	}

	content, err := s.deps.Blobs.Open(ctx, file.Filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.File{}, nil, domain.ErrFileNotFound
		}
		return domain.File{}, nil, domain.StorageError(err)
	}
	return file, content, nil
}

// DeleteFile removes a task attachment. Project files go through the
// manager-only project file rule.
func (s *FileService) DeleteFile(ctx context.Context, p domain.Principal, id uint64) error {
	file, err := s.deps.Files.GetByID(ctx, id)
	if err != nil {
		return domain.StorageError(err)
	}

	if file.IsProjectFile() {
		if err := policy.Authorize(policy.CanManageProjectFiles(p)); err != nil {
			return err
		}
	} else {
		task, err := s.deps.Tasks.GetByID(ctx, *file.TaskID)
		if err != nil {
			return domain.StorageError(err)
		}
		if err := policy.Authorize(policy.CanDeleteTaskFile(p, file, task)); err != nil {
			return err
		}
	}

	return s.remove(ctx, file)
}

func (s *FileService) DeleteProjectFile(ctx context.Context, p domain.Principal, id uint64) error {
	if err := policy.Authorize(policy.CanManageProjectFiles(p)); err != nil {
		return err
	}

	file, err := s.deps.Files.GetByID(ctx, id)
	if err != nil {
		return domain.StorageError(err)
	}
	if !file.IsProjectFile() {
		return domain.ErrFileNotFound
	}

	return s.remove(ctx, file)
}

// store writes the blob first and the metadata second. A failed metadata
// insert deletes the blob again so no orphaned content is left behind.
func (s *FileService) store(ctx context.Context, file domain.File, input domain.UploadInput) (domain.File, error) {
	if input.Content == nil {
		return domain.File{}, domain.ErrFileRequired
	}

	mimeType, content, err := detectMimeType(input.MimeType, input.Content)
	if err != nil {
		return domain.File{}, fmt.Errorf("%w: %w", domain.ErrBlobWriteFailed, err)
	}

	file.OriginalName = originalName(input.OriginalName)
	file.MimeType = mimeType

	key, size, err := s.deps.Blobs.Save(ctx, content, file.OriginalName)
	if errors.Is(err, domain.ErrFileTooLarge) {
		return domain.File{}, err
	}
	if err != nil {
		return domain.File{}, fmt.Errorf("%w: %w", domain.ErrBlobWriteFailed, err)
	}
	file.Filename = key
	file.Size = size

	if err := s.deps.Files.Create(ctx, &file); err != nil {
		if deleteErr := s.deps.Blobs.Delete(ctx, key); deleteErr != nil {
			zap.L().Error("failed to delete stored file after metadata failure",
				zap.String("key", key), zap.Error(deleteErr))
		}
		return domain.File{}, fmt.Errorf("%w: %w", domain.ErrFileMetadataFailed, err)
	}

	created, err := s.deps.Files.GetByID(ctx, file.ID)
	if err != nil {
		return file, nil
	}
	return created, nil
}

func (s *FileService) remove(ctx context.Context, file domain.File) error {
	if err := s.deps.Files.Delete(ctx, file.ID); err != nil {
		return domain.StorageError(err)
	}
	s.deps.removeBlobs(ctx, []string{file.Filename})
	return nil
}

// detectMimeType trusts a specific declared type and otherwise sniffs the
// first bytes of content. The returned reader still yields all of content.
func detectMimeType(declared string, content io.Reader) (string, io.Reader, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != defaultMimeType {
		return declared, content, nil
	}

	header := make([]byte, sniffLength)
	n, err := io.ReadFull(content, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	header = header[:n]

	return mimetype.Detect(header).String(), io.MultiReader(bytes.NewReader(header), content), nil
}

func originalName(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return name
}

var _ ports.FileService = (*FileService)(nil)
