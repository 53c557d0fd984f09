package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/tests/testutil"
)

func TestTaskService_Integration_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTaskService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	project := fixtures.CreateProject(t, team)

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	task, err := svc.Create(ctx, project.ID, "Ship it", "the big one", 1, &due, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusTodo, task.Status)
	require.NotNil(t, task.CreatedBy)
	assert.Equal(t, owner.ID, *task.CreatedBy)

	task, err = svc.UpdateStatus(ctx, task.ID, models.StatusDoing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDoing, task.Status)

	title := "Ship it already"
	task, err = svc.Update(ctx, task.ID, services.TaskUpdate{Title: &title, ClearDueAt: true})
	require.NoError(t, err)
	assert.Equal(t, "Ship it already", task.Title)
	assert.Nil(t, task.DueAt)

	tasks, err := svc.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestTaskService_Integration_Assignees(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTaskService(tdb.DB)
	ctx := context.Background()

	owner := fixtures.CreateUser(t)
	helper := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, owner)
	fixtures.AddMember(t, team, helper, models.RoleMember)
	project := fixtures.CreateProject(t, team)

	task, err := svc.Create(ctx, project.ID, "Pair on this", "", 2, nil, owner.ID)
	require.NoError(t, err)

	task, err = svc.ReplaceAssignees(ctx, task.ID, []uuid.UUID{owner.ID, helper.ID})
	require.NoError(t, err)
	assert.Len(t, task.Assignees, 2)

	task, err = svc.ReplaceAssignees(ctx, task.ID, []uuid.UUID{helper.ID})
	require.NoError(t, err)
	require.Len(t, task.Assignees, 1)
	assert.Equal(t, helper.ID, task.Assignees[0].ID)

	task, err = svc.ReplaceAssignees(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, task.Assignees)
}
