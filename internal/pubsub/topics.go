package pubsub

import (
	"fmt"

	"github.com/google/uuid"
)

// Topics are team-scoped so an event can never cross a tenant boundary:
// the team id is resolved (and the caller's membership checked) before a
// topic name is ever built.

func MessageTopic(teamID, channelID uuid.UUID) string {
	return fmt.Sprintf("team:%s:message:%s", teamID, channelID)
}

func TaskAddedTopic(teamID, projectID uuid.UUID) string {
	return fmt.Sprintf("team:%s:task.added:%s", teamID, projectID)
}

func TaskUpdatedTopic(teamID, projectID uuid.UUID) string {
	return fmt.Sprintf("team:%s:task.updated:%s", teamID, projectID)
}
