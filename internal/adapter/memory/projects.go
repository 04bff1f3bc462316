package memory

import (
	"context"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.store.write(ctx, func(t *tables) error {
		project.ID = t.nextID("projects")
		project.CreatedAt = r.store.now()
		t.projects[project.ID] = *project
		return nil
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (domain.Project, error) {
	var project domain.Project
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.projects[id]
		if !ok {
			return domain.ErrProjectNotFound
		}
		project = found
		return nil
	})
	return project, err
}

// GetForUpdate needs no extra locking: units of work already run one at a
// time.
func (r *ProjectRepository) GetForUpdate(ctx context.Context, id uint64) (domain.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.projects[project.ID]; !ok {
			return domain.ErrProjectNotFound
		}
		t.projects[project.ID] = project
		return nil
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.projects[id]; !ok {
			return domain.ErrProjectNotFound
		}
		delete(t.projects, id)

		for taskID, task := range t.tasks {
			if task.ProjectID != nil && *task.ProjectID == id {
				t.deleteTask(taskID)
			}
		}
		for fileID, file := range t.files {
			if file.ProjectID != nil && *file.ProjectID == id {
				delete(t.files, fileID)
			}
		}
		return nil
	})
}

func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]domain.ProjectSummary, error) {
	summaries := []domain.ProjectSummary{}
	err := r.store.read(ctx, func(t *tables) error {
		byProject := make(map[uint64]*domain.ProjectSummary, len(t.projects))
		for _, project := range t.projects {
			summaries = append(summaries, domain.ProjectSummary{
				Project:     project,
				CreatorName: t.fullName(project.CreatedBy),
			})
		}
		for i := range summaries {
			byProject[summaries[i].ID] = &summaries[i]
		}

		for _, task := range t.tasks {
			if task.ProjectID == nil {
				continue
			}
			if summary, ok := byProject[*task.ProjectID]; ok {
				summary.TaskCount++
				if task.Status == domain.TaskStatusDone {
					summary.DoneCount++
				}
			}
		}
		for _, file := range t.files {
			if file.ProjectID == nil {
				continue
			}
			if summary, ok := byProject[*file.ProjectID]; ok {
				summary.FileCount++
			}
		}
		return nil
	})
	return summaries, err
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
