package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const selectFilesQuery = `
SELECT f.id, f.task_id, f.project_id, f.user_id, f.filename, f.original_name, f.file_size, f.mime_type, f.created_at,
  COALESCE(u.full_name, '') AS uploader_name
FROM files f
LEFT JOIN users u ON u.id = f.user_id
`

type FileRepository struct {
	base
}

type fileRow struct {
	ID           uint64        `db:"id"`
	TaskID       sql.NullInt64 `db:"task_id"`
	ProjectID    sql.NullInt64 `db:"project_id"`
	UserID       uint64        `db:"user_id"`
	Filename     string        `db:"filename"`
	OriginalName string        `db:"original_name"`
	FileSize     int64         `db:"file_size"`
	MimeType     string        `db:"mime_type"`
	CreatedAt    time.Time     `db:"created_at"`
	UploaderName string        `db:"uploader_name"`
}

var _ ports.FileRepository = (*FileRepository)(nil)

func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{base: newBase(db)}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO files (task_id, project_id, user_id, filename, original_name, file_size, mime_type, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullUint64(file.TaskID), nullUint64(file.ProjectID), file.UserID, file.Filename,
		file.OriginalName, file.Size, file.MimeType, createdAt,
	)
	if err != nil {
		return referenceError(err)
	}

	file.ID = id
	file.CreatedAt = createdAt
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uint64) (domain.File, error) {
	var row fileRow
	if err := r.conn(ctx).GetContext(ctx, &row, selectFilesQuery+"WHERE f.id = ?", id); err != nil {
		return domain.File{}, notFoundOr(err, domain.ErrFileNotFound)
	}
	return mapFileRowToDomainFile(row), nil
}

func (r *FileRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM files WHERE id = ?", id, domain.ErrFileNotFound)
}

func (r *FileRepository) ListByTask(ctx context.Context, taskID uint64) ([]domain.File, error) {
	return r.list(ctx, selectFilesQuery+"WHERE f.task_id = ? ORDER BY f.created_at DESC, f.id DESC", taskID)
}

func (r *FileRepository) ListByProject(ctx context.Context, projectID uint64) ([]domain.File, error) {
	return r.list(ctx, selectFilesQuery+"WHERE f.project_id = ? ORDER BY f.created_at DESC, f.id DESC", projectID)
}

func (r *FileRepository) StorageKeysByProject(ctx context.Context, projectID uint64) ([]string, error) {
	keys := []string{}
	err := r.conn(ctx).SelectContext(ctx, &keys, `
SELECT f.filename
FROM files f
LEFT JOIN tasks t ON t.id = f.task_id
WHERE f.project_id = ? OR t.project_id = ?
ORDER BY f.filename`, projectID, projectID)
	return keys, err
}

func (r *FileRepository) list(ctx context.Context, query string, id uint64) ([]domain.File, error) {
	var rows []fileRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, query, id); err != nil {
		return nil, err
	}

	files := make([]domain.File, 0, len(rows))
	for _, row := range rows {
		files = append(files, mapFileRowToDomainFile(row))
	}
	return files, nil
}

func mapFileRowToDomainFile(row fileRow) domain.File {
	return domain.File{
		ID:           row.ID,
		TaskID:       uint64Ptr(row.TaskID),
		ProjectID:    uint64Ptr(row.ProjectID),
		UserID:       row.UserID,
		Filename:     row.Filename,
		OriginalName: row.OriginalName,
		Size:         row.FileSize,
		MimeType:     row.MimeType,
		CreatedAt:    row.CreatedAt,
		UploaderName: row.UploaderName,
	}
}
