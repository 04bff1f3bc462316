package service

import (
	"context"
	"sort"
	"strings"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
)

type ProjectService struct {
	deps Deps
}

func NewProjectService(deps Deps) *ProjectService {
	return &ProjectService{deps: deps}
}

func (s *ProjectService) CreateProject(ctx context.Context, p domain.Principal, input domain.ProjectInput) (domain.Project, error) {
	if err := policy.Authorize(policy.CanManageProjects(p)); err != nil {
		return domain.Project{}, err
	}

	project, err := applyProjectInput(domain.Project{CreatedBy: p.UserID}, input)
	if err != nil {
		return domain.Project{}, err
	}

	if err := s.deps.Projects.Create(ctx, &project); err != nil {
		return domain.Project{}, domain.StorageError(err)
	}
	return s.GetProject(ctx, p, project.ID)
}

func (s *ProjectService) GetProject(ctx context.Context, _ domain.Principal, id uint64) (domain.Project, error) {
	project, err := s.deps.Projects.GetByID(ctx, id)
	if err != nil {
		return domain.Project{}, domain.StorageError(err)
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, p domain.Principal, id uint64, input domain.ProjectInput) (domain.Project, error) {
	if err := policy.Authorize(policy.CanManageProjects(p)); err != nil {
		return domain.Project{}, err
	}

	var updated domain.Project
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		project, err := s.deps.Projects.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if updated, err = applyProjectInput(project, input); err != nil {
			return err
		}
		return s.deps.Projects.Update(ctx, updated)
	})
	if err != nil {
		return domain.Project{}, domain.StorageError(err)
	}
	return updated, nil
}

// DeleteProject removes the project with its tasks and files. Stored
// contents are deleted once the rows are gone.
func (s *ProjectService) DeleteProject(ctx context.Context, p domain.Principal, id uint64) error {
	if err := policy.Authorize(policy.CanManageProjects(p)); err != nil {
		return err
	}

	var blobKeys []string
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.deps.Projects.GetForUpdate(ctx, id); err != nil {
			return err
		}

		keys, err := s.deps.Files.StorageKeysByProject(ctx, id)
		if err != nil {
			return err
		}
		blobKeys = keys

		return s.deps.Projects.Delete(ctx, id)
	})
	if err != nil {
		return domain.StorageError(err)
	}

	s.deps.removeBlobs(ctx, blobKeys)
	return nil
}

// RestoreProject reactivates a project without looking at its tasks.
func (s *ProjectService) RestoreProject(ctx context.Context, p domain.Principal, id uint64) (domain.Project, error) {
	if err := policy.Authorize(policy.CanManageProjects(p)); err != nil {
		return domain.Project{}, err
	}

	var restored domain.Project
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		project, err := s.deps.Projects.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		project.Restore()
		restored = project
		return s.deps.Projects.Update(ctx, project)
	})
	if err != nil {
		return domain.Project{}, domain.StorageError(err)
	}
	return restored, nil
}

// ListActiveProjects returns the projects shown in active views, by name.
func (s *ProjectService) ListActiveProjects(ctx context.Context, p domain.Principal) ([]domain.ProjectSummary, error) {
	listing, err := s.ListAllProjects(ctx, p)
	if err != nil {
		return nil, err
	}
	return listing.Active, nil
}

// ListAllProjects splits projects into active ones, by name, and archived
// ones, most recently completed first.
func (s *ProjectService) ListAllProjects(ctx context.Context, _ domain.Principal) (domain.ProjectListing, error) {
	summaries, err := s.deps.Projects.ListSummaries(ctx)
	if err != nil {
		return domain.ProjectListing{}, domain.StorageError(err)
	}

	now := s.deps.now()
	listing := domain.ProjectListing{
		Active:   []domain.ProjectSummary{},
		Archived: []domain.ProjectSummary{},
	}
	for _, summary := range summaries {
		if summary.InArchive(now) {
			listing.Archived = append(listing.Archived, summary)
			continue
		}
		listing.Active = append(listing.Active, summary)
	}

	sort.SliceStable(listing.Active, func(i, j int) bool {
		return listing.Active[i].Name < listing.Active[j].Name
	})
	sort.SliceStable(listing.Archived, func(i, j int) bool {
		return listing.Archived[i].CompletedAt.After(*listing.Archived[j].CompletedAt)
	})

	return listing, nil
}

func applyProjectInput(project domain.Project, input domain.ProjectInput) (domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Project{}, domain.ErrNameRequired
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = domain.DefaultProjectColor
	}

	project.Name = name
	project.Description = strings.TrimSpace(input.Description)
	project.Color = color
	return project, nil
}

var _ ports.ProjectService = (*ProjectService)(nil)
