package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/talentscout/pkg/domain"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot()
		require.NoError(t, snap.Record.Commit(domain.FieldFullName, "Jane Doe"))
		require.NoError(t, snap.Record.Commit(domain.FieldEmail, "jane@example.com"))
		snap.Cursor = 2

		require.NoError(t, store.Save(ctx, sessionID, snap), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, 2, loaded.Cursor)
		assert.True(t, loaded.Active)
		assert.False(t, loaded.QuestionsGenerated)
		name, ok := loaded.Record.Get(domain.FieldFullName)
		assert.True(t, ok)
		assert.Equal(t, "Jane Doe", name)
		assert.NoError(t, loaded.Validate())
	})

	t.Run("Tech Stack Round Trip", func(t *testing.T) {
		id := sessionID + "-stack"
		snap := domain.NewSnapshot()
		for _, spec := range domain.Fields()[:domain.FieldCount-1] {
			require.NoError(t, snap.Record.Commit(spec.Field, "v"))
		}
		require.NoError(t, snap.Record.CommitTechStack([]string{"Go", "Redis"}))
		snap.Cursor = domain.FieldCount
		require.NoError(t, store.Save(ctx, id, snap))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		techs, ok := loaded.Record.TechStack()
		assert.True(t, ok)
		assert.Equal(t, []string{"Go", "Redis"}, techs)
	})

	t.Run("Load Returns Independent Copy", func(t *testing.T) {
		id := sessionID + "-copy"
		require.NoError(t, store.Save(ctx, id, domain.NewSnapshot()))
		defer func() { _ = store.Delete(ctx, id) }()

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.NoError(t, first.Record.Commit(domain.FieldFullName, "Mutated"))
		first.Cursor = 1

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 0, second.Cursor)
		assert.False(t, second.Record.Has(domain.FieldFullName))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSnapshot()))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot())
		_ = store.Save(ctx, id2, domain.NewSnapshot())
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
