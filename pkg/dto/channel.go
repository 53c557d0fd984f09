package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/models"
)

type CreateChannelRequest struct {
	Name string `json:"name"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type ChannelResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewChannelResponse(c *models.Channel) ChannelResponse {
	return ChannelResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

type MessageResponse struct {
	ID        uuid.UUID     `json:"id"`
	ChannelID uuid.UUID     `json:"channel_id"`
	Body      string        `json:"body"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
	if m.Author != nil {
		author := NewUserResponse(m.Author)
		resp.Author = &author
	}
	return resp
}
