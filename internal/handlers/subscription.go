package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/websocket"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/pubsub"
	"github.com/devconnect/devconnect-api/internal/services"
)

const (
	subPingInterval = 30 * time.Second
	subWriteTimeout = 10 * time.Second
	subReadTimeout  = 60 * time.Second
	subSendBuffer   = 256
)

// Subscription kinds a client can ask for. messageAdded is keyed by
// channel, the task kinds by project.
const (
	SubMessageAdded = "messageAdded"
	SubTaskAdded    = "taskAdded"
	SubTaskUpdated  = "taskUpdated"
)

type SubscribeMessage struct {
	Type         string `json:"type"`
	ID           string `json:"id,omitempty"`
	Token        string `json:"token,omitempty"`
	Subscription string `json:"subscription,omitempty"`
	ChannelID    string `json:"channel_id,omitempty"`
	ProjectID    string `json:"project_id,omitempty"`
}

type SubscriptionHandler struct {
	bus           pubsub.Bus
	tenantService TenantServiceInterface
	jwtService    *services.JWTService
}

func NewSubscriptionHandler(bus pubsub.Bus, tenantService TenantServiceInterface, jwtService *services.JWTService) *SubscriptionHandler {
	return &SubscriptionHandler{
		bus:           bus,
		tenantService: tenantService,
		jwtService:    jwtService,
	}
}

// subClient is one websocket connection. Writes go through the send channel
// so the write pump is the only goroutine touching the conn for output.
type subClient struct {
	userID uuid.UUID
	send   chan []byte
	subs   map[string]pubsub.Subscription
}

func (cl *subClient) enqueue(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case cl.send <- data:
	default:
		logrus.Warn("subscription client send buffer full, dropping frame")
	}
}

// Connect upgrades to a websocket and serves the subscription protocol.
// Identity comes from a bearer header, a token query param, or a
// connection_init frame sent before the first subscribe.
func (h *SubscriptionHandler) Connect(c *drift.Context) {
	userID, authed := middleware.BearerUserID(c, h.jwtService)
	if !authed {
		if token := c.QueryParam("token"); token != "" {
			claims, err := h.jwtService.Validate(token)
			if err != nil {
				c.Unauthorized("invalid token")
				return
			}
			userID = claims.UserID
			authed = true
		}
	}

	conn, err := websocket.Upgrade(c)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := &subClient{
		userID: userID,
		send:   make(chan []byte, subSendBuffer),
		subs:   make(map[string]pubsub.Subscription),
	}

	if authed {
		client.enqueue(map[string]string{"type": "connection_ack"})
	}

	done := make(chan struct{})

	// Write pump
	go func() {
		ticker := time.NewTicker(subPingInterval)
		defer ticker.Stop()
		defer func() {
			if err := conn.Close(websocket.CloseNormalClosure, ""); err != nil {
				logrus.WithError(err).Debug("websocket close")
			}
		}()

		for {
			select {
			case msg, ok := <-client.send:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(subWriteTimeout))
				if err := conn.WriteText(string(msg)); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.Ping(nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	// Read pump (blocks until disconnect)
	defer func() {
		close(done)
		for _, sub := range client.subs {
			_ = sub.Close()
		}
	}()

	for {
		_ = conn.SetReadDeadline(time.Now().Add(subReadTimeout))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if msgType != websocket.TextMessage {
			continue
		}

		var msg SubscribeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.enqueue(map[string]string{
				"type":    "error",
				"message": "invalid message format",
			})
			continue
		}

		switch msg.Type {
		case "connection_init":
			h.handleInit(client, msg)
		case "subscribe":
			h.handleSubscribe(client, msg)
		case "unsubscribe":
			h.handleUnsubscribe(client, msg)
		case "ping":
			client.enqueue(map[string]string{"type": "pong"})
		default:
			client.enqueue(map[string]string{
				"type":     "error",
				"message":  "unknown message type",
				"ref_type": msg.Type,
			})
		}
	}
}

func (h *SubscriptionHandler) handleInit(client *subClient, msg SubscribeMessage) {
	if client.userID != uuid.Nil {
		client.enqueue(map[string]string{"type": "connection_ack"})
		return
	}

	claims, err := h.jwtService.Validate(msg.Token)
	if err != nil {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "invalid token",
			"ref_type": "connection_init",
		})
		return
	}

	client.userID = claims.UserID
	client.enqueue(map[string]string{"type": "connection_ack"})
}

// handleSubscribe checks access once, at subscribe time; the topic carries
// the team id, so later events need no further checks.
func (h *SubscriptionHandler) handleSubscribe(client *subClient, msg SubscribeMessage) {
	if client.userID == uuid.Nil {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "unauthenticated",
			"ref_type": "subscribe",
		})
		return
	}
	if msg.ID == "" {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "id is required",
			"ref_type": "subscribe",
		})
		return
	}
	if _, exists := client.subs[msg.ID]; exists {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "subscription id already in use",
			"ref_type": "subscribe",
		})
		return
	}

	ctx := context.Background()

	topic, err := h.topicFor(ctx, client.userID, msg)
	if err != nil {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  err.Error(),
			"ref_type": "subscribe",
		})
		return
	}

	sub, err := h.bus.Subscribe(ctx, topic)
	if err != nil {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "subscribe failed",
			"ref_type": "subscribe",
		})
		return
	}
	client.subs[msg.ID] = sub

	// Event pump for this subscription
	go func(id, kind string) {
		for ev := range sub.Events() {
			client.enqueue(map[string]any{
				"type":         "event",
				"id":           id,
				"subscription": kind,
				"payload":      json.RawMessage(ev.Payload),
			})
		}
	}(msg.ID, msg.Subscription)

	client.enqueue(map[string]string{
		"type": "subscribed",
		"id":   msg.ID,
	})
}

func (h *SubscriptionHandler) handleUnsubscribe(client *subClient, msg SubscribeMessage) {
	sub, ok := client.subs[msg.ID]
	if !ok {
		client.enqueue(map[string]string{
			"type":     "error",
			"message":  "unknown subscription id",
			"ref_type": "unsubscribe",
		})
		return
	}

	_ = sub.Close()
	delete(client.subs, msg.ID)

	client.enqueue(map[string]string{
		"type": "unsubscribed",
		"id":   msg.ID,
	})
}

// topicFor resolves the subscription target to its team, checks membership
// and returns the topic name to listen on.
func (h *SubscriptionHandler) topicFor(ctx context.Context, userID uuid.UUID, msg SubscribeMessage) (string, error) {
	switch msg.Subscription {
	case SubMessageAdded:
		channelID, err := uuid.Parse(msg.ChannelID)
		if err != nil {
			return "", errInvalidTarget("channel_id")
		}
		teamID, err := h.tenantService.TeamIDForChannel(ctx, channelID)
		if err != nil {
			return "", err
		}
		if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
			return "", err
		}
		return pubsub.MessageTopic(teamID, channelID), nil

	case SubTaskAdded, SubTaskUpdated:
		projectID, err := uuid.Parse(msg.ProjectID)
		if err != nil {
			return "", errInvalidTarget("project_id")
		}
		teamID, err := h.tenantService.TeamIDForProject(ctx, projectID)
		if err != nil {
			return "", err
		}
		if err := h.tenantService.RequireMember(ctx, userID, teamID); err != nil {
			return "", err
		}
		if msg.Subscription == SubTaskAdded {
			return pubsub.TaskAddedTopic(teamID, projectID), nil
		}
		return pubsub.TaskUpdatedTopic(teamID, projectID), nil

	default:
		return "", errInvalidTarget("subscription")
	}
}

func errInvalidTarget(field string) error {
	return fmt.Errorf("invalid %s", field)
}
