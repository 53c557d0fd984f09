package liveblocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devconnect/devconnect-api/internal/apperrors"
)

const defaultBaseURL = "https://api.liveblocks.io"

// Client mints room-scoped session tokens against the Liveblocks REST API.
type Client struct {
	secret     string
	baseURL    string
	httpClient *http.Client
}

func New(secret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		secret:  secret,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RoomForDocument builds the room identifier for a document.
func RoomForDocument(documentID uuid.UUID) string {
	return "doc:" + documentID.String()
}

// ParseRoom extracts the document id from a "doc:<id>" room identifier.
// Fails with ErrInvalidRoom on any other shape.
func ParseRoom(room string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(room, "doc:")
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidRoom
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidRoom
	}
	return id, nil
}

type authorizeRequest struct {
	UserID      string              `json:"userId"`
	Permissions map[string][]string `json:"permissions"`
}

type authorizeResponse struct {
	Token string `json:"token"`
}

// AuthorizeUser requests a session token granting full access to room for
// the given user. Access checks happen before this call; the token itself
// is scoped to exactly one room.
func (c *Client) AuthorizeUser(ctx context.Context, userID uuid.UUID, room string) (string, error) {
	body, err := json.Marshal(authorizeRequest{
		UserID: userID.String(),
		Permissions: map[string][]string{
			room: {"room:write"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode authorize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/authorize-user", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build authorize request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("liveblocks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("liveblocks returned status %d", resp.StatusCode)
	}

	var parsed authorizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode liveblocks response: %w", err)
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("liveblocks returned an empty token")
	}

	return parsed.Token, nil
}
