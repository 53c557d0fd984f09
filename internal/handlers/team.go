package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type TeamHandler struct {
	teamService   TeamServiceInterface
	tenantService TenantServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface, tenantService TenantServiceInterface) *TeamHandler {
	return &TeamHandler{
		teamService:   teamService,
		tenantService: tenantService,
	}
}

func (h *TeamHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" || req.Slug == "" {
		c.BadRequest("name and slug are required")
		return
	}

	team, err := h.teamService.Create(context.Background(), req.Name, req.Slug, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.NewTeamResponse(team, models.RoleOwner))
}

func (h *TeamHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	teams, roles, err := h.teamService.GetUserTeams(context.Background(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		response[i] = dto.NewTeamResponse(&teams[i], roles[i])
	}
	_ = c.JSON(200, response)
}

func (h *TeamHandler) Get(c *drift.Context) {
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

	team, err := h.teamService.GetForUser(ctx, teamID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	role, err := h.tenantService.MembershipRole(ctx, userID, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.NewTeamResponse(team, role))
}

func (h *TeamHandler) AddMember(c *drift.Context) {
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

	var req dto.AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.UserID == uuid.Nil {
		c.BadRequest("user_id is required")
		return
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleMember
	}

	ctx := context.Background()

	if err := h.tenantService.RequireRole(ctx, userID, teamID, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	if err := h.teamService.AddMember(ctx, teamID, req.UserID, role); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}

func (h *TeamHandler) RemoveMember(c *drift.Context) {
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
	memberID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	ctx := context.Background()

	if err := h.tenantService.RequireRole(ctx, userID, teamID, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	if err := h.teamService.RemoveMember(ctx, teamID, memberID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}
