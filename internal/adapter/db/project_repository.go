package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const selectProjectsQuery = `
SELECT id, name, description, color, created_by, archived, completed_at, created_at
FROM projects
WHERE id = ?
`

const listProjectSummariesQuery = `
SELECT
  p.id, p.name, p.description, p.color, p.created_by, p.archived, p.completed_at, p.created_at,
  (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count,
  (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id AND t.status = 'done') AS done_count,
  (SELECT COUNT(*) FROM files f WHERE f.project_id = p.id) AS file_count,
  COALESCE(u.full_name, '') AS creator_name
FROM projects p
LEFT JOIN users u ON u.id = p.created_by
ORDER BY p.name, p.id;
`

type ProjectRepository struct {
	base
}

type projectRow struct {
	ID          uint64         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Color       string         `db:"color"`
	CreatedBy   uint64         `db:"created_by"`
	Archived    bool           `db:"archived"`
	CompletedAt sql.NullTime   `db:"completed_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

type projectSummaryRow struct {
	projectRow
	TaskCount   int    `db:"task_count"`
	DoneCount   int    `db:"done_count"`
	FileCount   int    `db:"file_count"`
	CreatorName string `db:"creator_name"`
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{base: newBase(db)}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	createdAt := r.now()
	id, err := r.insert(ctx, `
INSERT INTO projects (name, description, color, created_by, archived, completed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		project.Name, nullString(project.Description), project.Color, project.CreatedBy,
		project.Archived, nullTime(project.CompletedAt), createdAt,
	)
	if err != nil {
		return err
	}

	project.ID = id
	project.CreatedAt = createdAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (domain.Project, error) {
	return r.get(ctx, selectProjectsQuery, id)
}

func (r *ProjectRepository) GetForUpdate(ctx context.Context, id uint64) (domain.Project, error) {
	return r.get(ctx, selectProjectsQuery+"FOR UPDATE", id)
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
UPDATE projects
SET name = ?, description = ?, color = ?, archived = ?, completed_at = ?
WHERE id = ?`,
		project.Name, nullString(project.Description), project.Color,
		project.Archived, nullTime(project.CompletedAt), project.ID,
	)
	return err
}

// Delete relies on the foreign keys to remove the project's tasks and files.
func (r *ProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.deleteByID(ctx, "DELETE FROM projects WHERE id = ?", id, domain.ErrProjectNotFound)
}

func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]domain.ProjectSummary, error) {
	var rows []projectSummaryRow
	if err := r.conn(ctx).SelectContext(ctx, &rows, listProjectSummariesQuery); err != nil {
		return nil, err
	}

	summaries := make([]domain.ProjectSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ProjectSummary{
			Project:     mapProjectRowToDomainProject(row.projectRow),
			TaskCount:   row.TaskCount,
			DoneCount:   row.DoneCount,
			FileCount:   row.FileCount,
			CreatorName: row.CreatorName,
		})
	}
	return summaries, nil
}

func (r *ProjectRepository) get(ctx context.Context, query string, id uint64) (domain.Project, error) {
	var row projectRow
	if err := r.conn(ctx).GetContext(ctx, &row, query, id); err != nil {
		return domain.Project{}, notFoundOr(err, domain.ErrProjectNotFound)
	}
	return mapProjectRowToDomainProject(row), nil
}

func mapProjectRowToDomainProject(row projectRow) domain.Project {
	return domain.Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Color:       row.Color,
		CreatedBy:   row.CreatedBy,
		Archived:    row.Archived,
		CompletedAt: timePtr(row.CompletedAt),
		CreatedAt:   row.CreatedAt,
	}
}
