package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	tenantService  TenantServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, tenantService TenantServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		tenantService:  tenantService,
	}
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" || req.Key == "" {
		c.BadRequest("name and key are required")
		return
	}

	ctx := context.Background()

	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.Create(ctx, teamID, req.Name, req.Key)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.NewProjectResponse(project))
}

func (h *ProjectHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	ctx := context.Background()

	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	projects, err := h.projectService.ListByTeam(ctx, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = dto.NewProjectResponse(&projects[i])
	}
	_ = c.JSON(200, response)
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireRole(ctx, userID, teamID, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	if err := h.projectService.Delete(ctx, projectID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}
