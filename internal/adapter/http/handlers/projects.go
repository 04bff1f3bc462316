package handlers

import (
	"net/http"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListActiveProjects lists the projects still shown on the board, including
// completed ones inside their grace window.
func (h *ProjectHandler) ListActiveProjects(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListActiveProjects(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to list active projects")
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectSummaryItems(projects))
}

func (h *ProjectHandler) ListAllProjects(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	listing, err := h.projectService.ListAllProjects(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectListResponse(listing))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), p, projectID)
	if err != nil {
		respondError(c, err, "failed to get project", zap.Uint64("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), p, validation.BuildProjectInput(req))
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if _, ok := bindJSON(c, &req); !ok {
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), p, projectID, validation.BuildProjectInput(req))
	if err != nil {
		respondError(c, err, "failed to update project", zap.Uint64("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), p, projectID); err != nil {
		respondError(c, err, "failed to delete project", zap.Uint64("project_id", projectID))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) RestoreProject(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.RestoreProject(c.Request.Context(), p, projectID)
	if err != nil {
		respondError(c, err, "failed to restore project", zap.Uint64("project_id", projectID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectItem(project))
}
