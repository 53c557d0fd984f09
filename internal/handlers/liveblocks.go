package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/liveblocks"
	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type LiveblocksHandler struct {
	client        LiveblocksInterface
	tenantService TenantServiceInterface
}

func NewLiveblocksHandler(client LiveblocksInterface, tenantService TenantServiceInterface) *LiveblocksHandler {
	return &LiveblocksHandler{
		client:        client,
		tenantService: tenantService,
	}
}

// Authorize exchanges a session for a Liveblocks room token. The room names
// a document; the caller must be a member of the team that owns it.
func (h *LiveblocksHandler) Authorize(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.LiveblocksAuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	documentID, err := liveblocks.ParseRoom(req.Room)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForDocument(ctx, documentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.client.AuthorizeUser(ctx, userID, req.Room)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.LiveblocksAuthResponse{Token: token})
}
