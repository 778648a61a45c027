package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/domain"
)

// RunConversationStoreContract runs a suite of tests verifying that a
// ConversationStore implementation adheres to the interface contract.
func RunConversationStoreContract(t *testing.T, store ConversationStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		conv := domain.NewConversation(id)
		conv.Append(domain.RoleUser, "nearest hospital in Adyar")
		conv.Append(domain.RoleAssistant, "Found: Fortis Malar Hospital | Distance: 0.567 km | ETA: 1 min")
		conv.TurnCount = 1
		conv.LastQuery = "nearest hospital in Adyar"
		conv.LastResult = domain.NewTextResult("ok")

		err := store.Save(ctx, conv)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, conv.ID, loaded.ID)
		assert.Equal(t, 1, loaded.TurnCount)
		require.Len(t, loaded.Messages, 2)
		assert.Equal(t, domain.RoleUser, loaded.Messages[0].Role)
		assert.Equal(t, conv.Messages[1].Content, loaded.Messages[1].Content)
	})

	t.Run("Load preserves submission order", func(t *testing.T) {
		conv := domain.NewConversation(id + "-order")
		for i := 0; i < 3; i++ {
			conv.Append(domain.RoleUser, "q")
			conv.Append(domain.RoleAssistant, "a")
		}
		require.NoError(t, store.Save(ctx, conv))
		defer func() { _ = store.Delete(ctx, conv.ID) }()

		loaded, err := store.Load(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Messages, 6)
		for i, turn := range loaded.Messages {
			want := domain.RoleUser
			if i%2 == 1 {
				want = domain.RoleAssistant
			}
			assert.Equal(t, want, turn.Role, "turn %d", i)
		}
	})

	t.Run("Save isolates caller mutations", func(t *testing.T) {
		conv := domain.NewConversation(id + "-iso")
		conv.Append(domain.RoleUser, "original")
		require.NoError(t, store.Save(ctx, conv))
		defer func() { _ = store.Delete(ctx, conv.ID) }()

		conv.Messages[0].Content = "mutated"

		loaded, err := store.Load(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", loaded.Messages[0].Content)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewConversation(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound, "Load after Delete should return ErrConversationNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, domain.NewConversation(id1))
		_ = store.Save(ctx, domain.NewConversation(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
