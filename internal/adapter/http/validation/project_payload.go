package validation

import (
	"strings"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func BuildProjectInput(req dto.ProjectRequest) domain.ProjectInput {
	return domain.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       strings.TrimSpace(req.Color),
	}
}
