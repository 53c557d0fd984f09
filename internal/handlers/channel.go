package handlers

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type ChannelHandler struct {
	channelService ChannelServiceInterface
	messageService MessageServiceInterface
	tenantService  TenantServiceInterface
	publisher      *Publisher
}

func NewChannelHandler(channelService ChannelServiceInterface, messageService MessageServiceInterface, tenantService TenantServiceInterface, publisher *Publisher) *ChannelHandler {
	return &ChannelHandler{
		channelService: channelService,
		messageService: messageService,
		tenantService:  tenantService,
		publisher:      publisher,
	}
}

func (h *ChannelHandler) Create(c *drift.Context) {
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

	var req dto.CreateChannelRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	channel, err := h.channelService.Create(ctx, projectID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.NewChannelResponse(channel))
}

func (h *ChannelHandler) List(c *drift.Context) {
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
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	channels, err := h.channelService.ListByProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ChannelResponse, len(channels))
	for i := range channels {
		response[i] = dto.NewChannelResponse(&channels[i])
	}
	_ = c.JSON(200, response)
}

func (h *ChannelHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	channelID, err := uuid.Parse(c.Param("channelId"))
	if err != nil {
		c.BadRequest("invalid channel id")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForChannel(ctx, channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireRole(ctx, userID, teamID, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	if err := h.channelService.Delete(ctx, channelID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}

func (h *ChannelHandler) ListMessages(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	channelID, err := uuid.Parse(c.Param("channelId"))
	if err != nil {
		c.BadRequest("invalid channel id")
		return
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.BadRequest("invalid limit")
			return
		}
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForChannel(ctx, channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	messages, err := h.messageService.ListByChannel(ctx, channelID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		response[i] = dto.NewMessageResponse(&messages[i])
	}
	_ = c.JSON(200, response)
}

func (h *ChannelHandler) SendMessage(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	channelID, err := uuid.Parse(c.Param("channelId"))
	if err != nil {
		c.BadRequest("invalid channel id")
		return
	}

	var req dto.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Body == "" {
		c.BadRequest("body is required")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForChannel(ctx, channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	msg, err := h.messageService.Create(ctx, channelID, userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.NewMessageResponse(msg)
	h.publisher.MessageAdded(ctx, teamID, response)

	_ = c.JSON(201, response)
}
