package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect-api/internal/pubsub"
	"github.com/devconnect/devconnect-api/pkg/dto"
)

// Publisher pushes mutation events onto the bus. Publishing is best-effort:
// a failure after a committed write is logged, never surfaced to the caller
// and never rolled back.
type Publisher struct {
	bus pubsub.Bus
}

func NewPublisher(bus pubsub.Bus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) MessageAdded(ctx context.Context, teamID uuid.UUID, msg dto.MessageResponse) {
	p.publish(ctx, pubsub.MessageTopic(teamID, msg.ChannelID), msg)
}

func (p *Publisher) TaskAdded(ctx context.Context, teamID uuid.UUID, task dto.TaskResponse) {
	p.publish(ctx, pubsub.TaskAddedTopic(teamID, task.ProjectID), task)
}

func (p *Publisher) TaskUpdated(ctx context.Context, teamID uuid.UUID, task dto.TaskResponse) {
	p.publish(ctx, pubsub.TaskUpdatedTopic(teamID, task.ProjectID), task)
}

func (p *Publisher) publish(ctx context.Context, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).WithField("topic", topic).Error("failed to encode event")
		return
	}
	if err := p.bus.Publish(ctx, topic, data); err != nil {
		logrus.WithError(err).WithField("topic", topic).Error("failed to publish event")
	}
}
