package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

type DocumentHandler struct {
	documentService DocumentServiceInterface
	tenantService   TenantServiceInterface
}

func NewDocumentHandler(documentService DocumentServiceInterface, tenantService TenantServiceInterface) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		tenantService:   tenantService,
	}
}

// guardDocument resolves the document's team and checks membership. Every
// document operation goes through here so a document outside the caller's
// teams is indistinguishable from a missing one.
func (h *DocumentHandler) guardDocument(ctx context.Context, c *drift.Context, userID uuid.UUID) (uuid.UUID, bool) {
	documentID, err := uuid.Parse(c.Param("documentId"))
	if err != nil {
		c.BadRequest("invalid document id")
		return uuid.Nil, false
	}

	teamID, err := h.tenantService.TeamIDForDocument(ctx, documentID)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return documentID, true
}

func (h *DocumentHandler) Create(c *drift.Context) {
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

	var req dto.CreateDocumentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" {
		c.BadRequest("title is required")
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

	doc, err := h.documentService.Create(ctx, projectID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) List(c *drift.Context) {
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

	docs, err := h.documentService.ListByProject(ctx, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.DocumentResponse, len(docs))
	for i := range docs {
		response[i] = dto.NewDocumentResponse(&docs[i])
	}
	_ = c.JSON(200, response)
}

func (h *DocumentHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	ctx := context.Background()

	documentID, ok := h.guardDocument(ctx, c, userID)
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(ctx, documentID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == nil && req.Content == nil {
		c.BadRequest("nothing to update")
		return
	}

	ctx := context.Background()

	documentID, ok := h.guardDocument(ctx, c, userID)
	if !ok {
		return
	}

	doc, err := h.documentService.Update(ctx, documentID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) UpdateContent(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	var req dto.UpdateDocumentContentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	documentID, ok := h.guardDocument(ctx, c, userID)
	if !ok {
		return
	}

	doc, err := h.documentService.UpdateContent(ctx, documentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, dto.NewDocumentResponse(doc))
}

func (h *DocumentHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("unauthenticated")
		return
	}

	documentID, err := uuid.Parse(c.Param("documentId"))
	if err != nil {
		c.BadRequest("invalid document id")
		return
	}

	ctx := context.Background()

	teamID, err := h.tenantService.TeamIDForDocument(ctx, documentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantService.RequireRole(ctx, userID, teamID, models.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	if err := h.documentService.Delete(ctx, documentID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]bool{"ok": true})
}
