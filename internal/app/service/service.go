package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/ports"
)

// Deps groups the collaborators shared by the application services.
type Deps struct {
	Tx       ports.TxManager
	Users    ports.UserRepository
	Projects ports.ProjectRepository
	Tasks    ports.TaskRepository
	Subtasks ports.SubtaskRepository
	Comments ports.CommentRepository
	Files    ports.FileRepository
	Blobs    ports.BlobStore
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now()
}

// removeBlobs deletes stored contents whose metadata is already gone.
// Failures leave an orphaned blob behind and are only logged.
func (d Deps) removeBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := d.Blobs.Delete(ctx, key); err != nil {
			zap.L().Warn("failed to delete stored file", zap.String("key", key), zap.Error(err))
		}
	}
}
