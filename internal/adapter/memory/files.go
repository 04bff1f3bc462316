package memory

import (
	"context"
	"sort"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type FileRepository struct {
	store *Store
}

func NewFileRepository(store *Store) *FileRepository {
	return &FileRepository{store: store}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	return r.store.write(ctx, func(t *tables) error {
		if file.TaskID != nil {
			if _, ok := t.tasks[*file.TaskID]; !ok {
				return domain.ErrTaskNotFound
			}
		}
		if file.ProjectID != nil {
			if _, ok := t.projects[*file.ProjectID]; !ok {
				return domain.ErrProjectNotFound
			}
		}
		file.ID = t.nextID("files")
		file.CreatedAt = r.store.now()
		file.UploaderName = ""
		t.files[file.ID] = *file
		return nil
	})
}

func (r *FileRepository) GetByID(ctx context.Context, id uint64) (domain.File, error) {
	var file domain.File
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.files[id]
		if !ok {
			return domain.ErrFileNotFound
		}
		found.UploaderName = t.fullName(found.UserID)
		file = found
		return nil
	})
	return file, err
}

func (r *FileRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.files[id]; !ok {
			return domain.ErrFileNotFound
		}
		delete(t.files, id)
		return nil
	})
}

func (r *FileRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.File, error) {
	return r.list(ctx, func(file domain.File) bool {
		return file.TaskID != nil && *file.TaskID == taskID
	})
}

func (r *FileRepository) ListByProject(ctx context.Context, projectID uint64) ([]domain.File, error) {
	return r.list(ctx, func(file domain.File) bool {
		return file.ProjectID != nil && *file.ProjectID == projectID
	})
}

func (r *FileRepository) StorageKeysByProject(ctx context.Context, projectID uint64) ([]string, error) {
	keys := []string{}
	err := r.store.read(ctx, func(t *tables) error {
		for _, file := range t.files {
			if file.ProjectID != nil && *file.ProjectID == projectID {
				keys = append(keys, file.Filename)
				continue
			}
			if file.TaskID == nil {
				continue
			}
			task, ok := t.tasks[*file.TaskID]
			if ok && task.ProjectID != nil && *task.ProjectID == projectID {
				keys = append(keys, file.Filename)
			}
		}
		return nil
	})
	sort.Strings(keys)
	return keys, err
}

func (r *FileRepository) list(ctx context.Context, keep func(domain.File) bool) ([]domain.File, error) {
	files := []domain.File{}
	err := r.store.read(ctx, func(t *tables) error {
		for _, file := range t.files {
			if keep(file) {
				file.UploaderName = t.fullName(file.UserID)
				files = append(files, file)
			}
		}
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		if !files[i].CreatedAt.Equal(files[j].CreatedAt) {
			return files[i].CreatedAt.After(files[j].CreatedAt)
		}
		return files[i].ID > files[j].ID
	})
	return files, err
}

var _ ports.FileRepository = (*FileRepository)(nil)
