package memory_test

import (
	"testing"

	"github.com/helioscommand/helios/pkg/adapters/memory"
	"github.com/helioscommand/helios/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunConversationStoreContract(t, store)
}
