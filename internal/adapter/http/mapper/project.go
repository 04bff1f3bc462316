package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToProjectItem(project domain.Project) dto.ProjectItem {
	item := dto.ProjectItem{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		CreatedBy:   project.CreatedBy,
		Archived:    project.Archived,
		CreatedAt:   project.CreatedAt.Format(dateTimeLayout),
	}
	if project.CompletedAt != nil {
		value := project.CompletedAt.Format(dateTimeLayout)
		item.CompletedAt = &value
	}
	return item
}

func ToProjectSummaryItems(summaries []domain.ProjectSummary) []dto.ProjectSummaryItem {
	items := make([]dto.ProjectSummaryItem, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, dto.ProjectSummaryItem{
			ProjectItem: ToProjectItem(summary.Project),
			TaskCount:   summary.TaskCount,
			DoneCount:   summary.DoneCount,
			FileCount:   summary.FileCount,
			CreatorName: summary.CreatorName,
		})
	}
	return items
}

func ToProjectListResponse(listing domain.ProjectListing) dto.ProjectListResponse {
	return dto.ProjectListResponse{
		Active:   ToProjectSummaryItems(listing.Active),
		Archived: ToProjectSummaryItems(listing.Archived),
	}
}
