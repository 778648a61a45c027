package domain

// Role identifies the author of a turn record.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single immutable record in the conversation log.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Status defines the current mode of a conversation's state machine.
type Status string

const (
	StatusIdle       Status = "idle"       // No query in flight
	StatusProcessing Status = "processing" // One query in flight
)

// Conversation holds the per-conversation state. It is owned exclusively by
// one conversation ID; turns are never shared across conversations.
//
// Invariant: TurnCount == len(Messages)/2 once every user turn has a paired
// assistant turn, and Messages ordering reflects submission order.
type Conversation struct {
	// ID is the opaque conversation identifier. Immutable, survives Reset.
	ID string `json:"id"`

	// TurnCount increments exactly once per completed orchestration step,
	// whether the handler succeeded or failed.
	TurnCount int `json:"turn_count"`

	// LastQuery is the text of the most recent user input.
	LastQuery string `json:"last_query,omitempty"`

	// LastResult is the structured outcome of the most recent handler
	// invocation (success payload or error payload).
	LastResult *Result `json:"last_result,omitempty"`

	// Messages is the append-only ordered log of turn records.
	Messages []Turn `json:"messages"`

	// Status is transient bookkeeping for the Idle -> Processing -> Idle
	// cycle; persisted conversations are always idle.
	Status Status `json:"-"`
}

// NewConversation creates an idle conversation with zero turns.
func NewConversation(id string) *Conversation {
	return &Conversation{
		ID:       id,
		Status:   StatusIdle,
		Messages: []Turn{},
	}
}

// Append adds a turn record to the log.
func (c *Conversation) Append(role Role, content string) {
	c.Messages = append(c.Messages, Turn{Role: role, Content: content})
}

// Reset reinitializes all state to initial values while preserving the ID.
func (c *Conversation) Reset() {
	c.TurnCount = 0
	c.LastQuery = ""
	c.LastResult = nil
	c.Messages = []Turn{}
	c.Status = StatusIdle
}

// Context returns up to max most recent turns, oldest first, for handlers
// that need conversation history (e.g. email composition).
func (c *Conversation) Context(max int) []Turn {
	if max <= 0 || len(c.Messages) <= max {
		out := make([]Turn, len(c.Messages))
		copy(out, c.Messages)
		return out
	}
	out := make([]Turn, max)
	copy(out, c.Messages[len(c.Messages)-max:])
	return out
}
