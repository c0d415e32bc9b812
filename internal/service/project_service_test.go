package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsgarage/inventory-api/internal/model"
)

// harness wires the three fakes the way main wires the real layers.
type harness struct {
	users    *fakeUserStore
	parts    *fakePartStore
	projects *fakeProjectStore

	userSvc *UserService
	partSvc *PartService
	projSvc *ProjectService
}

func newHarness() *harness {
	users := newFakeUserStore()
	parts := newFakePartStore()
	projects := newFakeProjectStore(parts, users)
	parts.projTab = projects

	userSvc := newUserService(users)
	partSvc := NewPartService(parts)
	return &harness{
		users:    users,
		parts:    parts,
		projects: projects,
		userSvc:  userSvc,
		partSvc:  partSvc,
		projSvc:  NewProjectService(projects, partSvc, userSvc),
	}
}

func (h *harness) registerUser(t *testing.T, username string) model.User {
	t.Helper()
	u, err := h.userSvc.Register(context.Background(), username, "Tr0ub4dor&3xyz", "Tr0ub4dor&3xyz")
	require.NoError(t, err)
	return u
}

func TestCreateProjectRequiresOwner(t *testing.T) {
	ctx := context.Background()
	h := newHarness()

	_, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", 0)
	require.ErrorIs(t, err, model.ErrOwnerRequired)

	_, err = h.projSvc.CreateProject(ctx, "Daily Driver", "", 77)
	require.ErrorIs(t, err, model.ErrOwnerRequired, "unresolvable user id")

	assert.Empty(t, h.projects.projects, "no project row without an owner")

	owner := h.registerUser(t, "alice_smith")
	id, err := h.projSvc.CreateProject(ctx, "Daily Driver", "the commuter car", owner.ID)
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestAddPartToProjectIntegrity(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)
	_, err = h.partSvc.Create(ctx, 1001, "Tire", "New", "")
	require.NoError(t, err)

	// Both directions of a missing endpoint fail and write nothing.
	require.ErrorIs(t, h.projSvc.AddPartToProject(ctx, 555, 1001), model.ErrIntegrity)
	require.ErrorIs(t, h.projSvc.AddPartToProject(ctx, projID, 9999), model.ErrIntegrity)
	assert.Empty(t, h.projects.parts, "no association row on integrity failure")

	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))
	// Re-adding the same association is accepted silently.
	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))
	assert.Len(t, h.projects.parts, 1)
}

func TestAddUserToProjectIntegrity(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")
	other := h.registerUser(t, "bobby_tables")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)

	require.ErrorIs(t, h.projSvc.AddUserToProject(ctx, 555, other.ID), model.ErrIntegrity)
	require.ErrorIs(t, h.projSvc.AddUserToProject(ctx, projID, 999), model.ErrIntegrity)

	require.NoError(t, h.projSvc.AddUserToProject(ctx, projID, other.ID))

	list, err := h.projSvc.ListProjectsForUser(ctx, "bobby_tables")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, projID, list[0].ID)
}

func TestProjectScenarioCreateListDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	alice := h.registerUser(t, "alice_wonder")

	_, err := h.partSvc.Create(ctx, 1001, "Tire", "New", "")
	require.NoError(t, err)

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", alice.ID)
	require.NoError(t, err)

	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))

	parts, err := h.projSvc.ListPartsInProject(ctx, projID)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, uint64(1001), parts[0].PartNumber)
	assert.Equal(t, "Tire", parts[0].Name)
	assert.Equal(t, "New", parts[0].Condition)

	require.NoError(t, h.projSvc.DeleteProject(ctx, projID))

	_, err = h.projSvc.ListPartsInProject(ctx, projID)
	require.ErrorIs(t, err, model.ErrNotFound)

	_, ok, err := h.projSvc.GetProject(ctx, projID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, h.projects.parts, "no dangling part associations")
	assert.Empty(t, h.projects.owners, "no dangling user associations")
}

func TestDeletePartRemovesProjectAssociations(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)
	_, err = h.partSvc.Create(ctx, 1001, "Tire", "New", "")
	require.NoError(t, err)
	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))

	require.NoError(t, h.partSvc.Delete(ctx, 1001))

	parts, err := h.projSvc.ListPartsInProject(ctx, projID)
	require.NoError(t, err)
	assert.Empty(t, parts, "deleted part never reappears in the project")
}

func TestListPartsInProjectDanglingReferenceIsIntegrityFault(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)
	_, err = h.partSvc.Create(ctx, 1001, "Tire", "", "")
	require.NoError(t, err)
	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))

	// Corrupt the table behind the service's back: drop the part row
	// while keeping the association.
	delete(h.parts.parts, 1001)

	_, err = h.projSvc.ListPartsInProject(ctx, projID)
	require.ErrorIs(t, err, model.ErrIntegrity, "dangling reference is a fault, not a silent skip")
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)

	require.ErrorIs(t, h.projSvc.UpdateProject(ctx, "Track Car", "slicks on", 555), model.ErrNotFound)
	require.ErrorIs(t, h.projSvc.UpdateProject(ctx, "", "", projID), model.ErrValidation)

	require.NoError(t, h.projSvc.UpdateProject(ctx, "Track Car", "slicks on", projID))
	p, ok, err := h.projSvc.GetProject(ctx, projID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Track Car", p.Name)
	assert.Equal(t, "slicks on", p.Description)
}

func TestDeletePartFromProjectIdempotent(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	owner := h.registerUser(t, "alice_smith")

	projID, err := h.projSvc.CreateProject(ctx, "Daily Driver", "", owner.ID)
	require.NoError(t, err)
	_, err = h.partSvc.Create(ctx, 1001, "Tire", "", "")
	require.NoError(t, err)
	require.NoError(t, h.projSvc.AddPartToProject(ctx, projID, 1001))

	require.NoError(t, h.projSvc.DeletePartFromProject(ctx, projID, 1001))
	require.NoError(t, h.projSvc.DeletePartFromProject(ctx, projID, 1001), "second removal is a no-op")

	parts, err := h.projSvc.ListPartsInProject(ctx, projID)
	require.NoError(t, err)
	assert.Empty(t, parts)
}
