// Package orchestrate is the conversational core: it receives raw user text,
// maintains per-conversation state, routes each message to the right intent
// handler and persists the outcome. Two interchangeable execution strategies
// are provided, a plain function call chain and a node pipeline; both produce
// identical responses for the same input.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/helioscommand/helios/internal/flow"
	"github.com/helioscommand/helios/pkg/classify"
	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/handle"
	"github.com/helioscommand/helios/pkg/observability"
	"github.com/helioscommand/helios/pkg/ports"
	"github.com/helioscommand/helios/pkg/session"
)

// ExecutionMode selects the orchestration strategy.
type ExecutionMode string

const (
	// ModeDirect routes each message with plain function calls.
	ModeDirect ExecutionMode = "direct"

	// ModeGraph routes each message through a node pipeline whose state is
	// carried as untyped context between nodes.
	ModeGraph ExecutionMode = "graph"
)

// DefaultGreeting opens interactive sessions.
const DefaultGreeting = "Hello! I am Helios, your healthcare assistant. " +
	"I can find the nearest hospital, locate nearby pharmacies and medical shops, " +
	"or send an urgent email on your behalf. How can I help you today?"

// confirmedReply answers an affirmative follow-up: the user confirmed the
// previous answer resolved their need.
const confirmedReply = "Thanks for confirming. Take care and get well soon!"

// Metric labels for routing outcomes that do not map to a single intent.
const (
	labelConfirm  = "confirm"
	labelEscalate = "escalate"
)

// Orchestrator coordinates classification, handler dispatch and conversation
// persistence. Safe for concurrent use; calls that share a conversation ID
// are serialized, calls on different conversations run in parallel.
type Orchestrator struct {
	classifier *classify.Classifier
	registry   *handle.Registry
	store      ports.ConversationStore
	locks      *session.Locks
	logger     *slog.Logger
	metrics    *observability.Metrics
	greeting   string

	mode ExecutionMode
	exec executor
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithExecutionMode selects the routing strategy. The default is ModeDirect.
// If the pipeline for ModeGraph cannot be built the orchestrator logs a
// warning and falls back to ModeDirect.
func WithExecutionMode(mode ExecutionMode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithGreeting overrides the interactive session opener.
func WithGreeting(greeting string) Option {
	return func(o *Orchestrator) {
		if greeting != "" {
			o.greeting = greeting
		}
	}
}

// New builds an orchestrator. Every routable intent must have a registered
// handler; a missing handler is a construction error, not a runtime surprise.
func New(classifier *classify.Classifier, registry *handle.Registry, store ports.ConversationStore, opts ...Option) (*Orchestrator, error) {
	if classifier == nil {
		return nil, fmt.Errorf("orchestrate: classifier is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("orchestrate: handler registry is required")
	}
	if store == nil {
		return nil, fmt.Errorf("orchestrate: conversation store is required")
	}

	o := &Orchestrator{
		classifier: classifier,
		registry:   registry,
		store:      store,
		locks:      session.NewLocks(),
		logger:     slog.New(slog.DiscardHandler),
		greeting:   DefaultGreeting,
		mode:       ModeDirect,
	}
	for _, opt := range opts {
		opt(o)
	}

	for _, intent := range domain.Intents() {
		if _, err := registry.Lookup(intent); err != nil {
			return nil, fmt.Errorf("orchestrate: %w", err)
		}
	}

	o.exec = directExecutor{o: o}
	if o.mode == ModeGraph {
		pipeline, err := o.buildPipeline()
		if err != nil {
			o.logger.Warn("pipeline build failed, using direct execution", "err", err)
			o.mode = ModeDirect
		} else {
			o.exec = graphExecutor{o: o, pipeline: pipeline}
		}
	}

	return o, nil
}

// Mode reports the effective execution strategy.
func (o *Orchestrator) Mode() ExecutionMode {
	return o.mode
}

// Greeting returns the session opener line.
func (o *Orchestrator) Greeting() string {
	return o.greeting
}

// ProcessQuery runs one orchestration step for a conversation: load or
// create state, append the user turn, route, append the assistant turn and
// persist. The returned string is the user-facing response. Handler failures
// become error responses, never returned errors; the error return covers
// store and infrastructure failures only.
func (o *Orchestrator) ProcessQuery(ctx context.Context, id, query string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("orchestrate: conversation id is required")
	}

	var response string
	err := o.locks.WithLock(ctx, id, func(ctx context.Context) error {
		conv, err := o.loadOrCreate(ctx, id)
		if err != nil {
			return err
		}

		conv.Status = domain.StatusProcessing
		conv.Append(domain.RoleUser, query)

		start := time.Now()
		result, label, err := o.exec.execute(ctx, conv, query)
		if err != nil {
			// Only the pipeline plumbing can fail here; handler errors are
			// already folded into the result.
			o.logger.Error("execution failed", "conversation", id, "err", err)
			result = domain.NewErrorResult(err)
			label = "internal"
		}
		o.metrics.ObserveQuery(label, result.OK(), time.Since(start))

		response = handle.FormatResult(result)
		conv.Append(domain.RoleAssistant, response)
		conv.TurnCount++
		conv.LastQuery = query
		conv.LastResult = result
		conv.Status = domain.StatusIdle

		return o.store.Save(ctx, conv)
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

// History returns the ordered turn log of a conversation.
func (o *Orchestrator) History(ctx context.Context, id string) ([]domain.Turn, error) {
	conv, err := o.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return conv.Context(0), nil
}

// Reset clears a conversation's turns and counters while keeping its ID.
func (o *Orchestrator) Reset(ctx context.Context, id string) error {
	return o.locks.WithLock(ctx, id, func(ctx context.Context) error {
		conv, err := o.store.Load(ctx, id)
		if err != nil {
			return err
		}
		conv.Reset()
		return o.store.Save(ctx, conv)
	})
}

func (o *Orchestrator) loadOrCreate(ctx context.Context, id string) (*domain.Conversation, error) {
	conv, err := o.store.Load(ctx, id)
	switch {
	case err == nil:
		return conv, nil
	case errors.Is(err, domain.ErrConversationNotFound):
		return domain.NewConversation(id), nil
	default:
		return nil, err
	}
}

// route is the single routing policy shared by both executors. It never
// returns an error; failures are folded into the error payload.
//
// A follow-up message on an established conversation is first checked for a
// yes/no confirmation: yes closes the loop with an acknowledgment, no
// escalates the previous request over email. Everything else is classified
// and dispatched to its intent handler.
func (o *Orchestrator) route(ctx context.Context, conv *domain.Conversation, query string) (*domain.Result, string) {
	if conv.TurnCount > 0 {
		switch classify.DetectConfirmation(query) {
		case classify.ConfirmYes:
			return domain.NewTextResult(confirmedReply), labelConfirm
		case classify.ConfirmNo:
			return o.escalate(ctx, conv, query), labelEscalate
		}
	}

	intent := o.classifier.Classify(query)
	return o.dispatch(ctx, conv, query, intent, intent), string(intent)
}

// escalate dispatches the email handler on behalf of a user whose previous
// request was not resolved. The original query drives location extraction
// and subject selection, not the literal "no".
func (o *Orchestrator) escalate(ctx context.Context, conv *domain.Conversation, query string) *domain.Result {
	original := query
	if conv.LastQuery != "" {
		original = conv.LastQuery
	}
	return o.dispatch(ctx, conv, original, domain.IntentEmail, o.classifier.Classify(original))
}

// dispatch resolves and invokes the handler for handlerIntent. reqIntent is
// the intent the handler sees on the request; for escalation it carries the
// originally classified intent while handlerIntent names the email handler.
func (o *Orchestrator) dispatch(ctx context.Context, conv *domain.Conversation, query string, handlerIntent, reqIntent domain.Intent) *domain.Result {
	h, err := o.registry.Lookup(handlerIntent)
	if err != nil {
		o.logger.Error("handler lookup failed", "intent", handlerIntent, "err", err)
		return domain.NewErrorResult(err)
	}

	result, err := h.Handle(ctx, ports.Request{
		ConversationID: conv.ID,
		Query:          query,
		Intent:         reqIntent,
		History:        conv.Context(0),
	})
	if err != nil {
		o.logger.Warn("handler failed", "intent", handlerIntent, "err", err)
		return domain.NewErrorResult(err)
	}
	return result
}

// executor is the routing strategy boundary. Both implementations delegate
// to route; they differ only in how the call is threaded.
type executor interface {
	execute(ctx context.Context, conv *domain.Conversation, query string) (*domain.Result, string, error)
}

type directExecutor struct {
	o *Orchestrator
}

func (e directExecutor) execute(ctx context.Context, conv *domain.Conversation, query string) (*domain.Result, string, error) {
	result, label := e.o.route(ctx, conv, query)
	return result, label, nil
}

// Pipeline state keys.
const (
	routeNodeID       = "route"
	stateConversation = "conversation"
	stateQuery        = "query"
	stateResult       = "result"
	stateIntent       = "intent"
)

type graphExecutor struct {
	o        *Orchestrator
	pipeline *flow.Pipeline
}

func (o *Orchestrator) buildPipeline() (*flow.Pipeline, error) {
	return flow.New([]flow.Node{
		{ID: flow.StartNodeID, Next: routeNodeID},
		{ID: routeNodeID, Run: o.routeNode, Next: flow.EndNodeID},
		{ID: flow.EndNodeID},
	}, flow.WithLogger(o.logger))
}

// routeNode runs the shared routing policy inside the pipeline. The result
// is flattened into the untyped pipeline context so downstream nodes see
// plain state rather than domain types.
func (o *Orchestrator) routeNode(ctx context.Context, st *flow.State) error {
	conv, ok := st.Context[stateConversation].(*domain.Conversation)
	if !ok {
		return fmt.Errorf("state is missing the conversation")
	}
	query, ok := st.Context[stateQuery].(string)
	if !ok {
		return fmt.Errorf("state is missing the query")
	}

	result, label := o.route(ctx, conv, query)

	payload := make(map[string]any)
	if err := mapstructure.Decode(result, &payload); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	st.Context[stateResult] = payload
	st.Context[stateIntent] = label
	return nil
}

func (e graphExecutor) execute(ctx context.Context, conv *domain.Conversation, query string) (*domain.Result, string, error) {
	st := flow.NewState()
	st.Context[stateConversation] = conv
	st.Context[stateQuery] = query

	st, err := e.pipeline.Run(ctx, st)
	if err != nil {
		return nil, "", err
	}

	payload, ok := st.Context[stateResult].(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("pipeline produced no result")
	}
	var result domain.Result
	if err := mapstructure.Decode(payload, &result); err != nil {
		return nil, "", fmt.Errorf("decode result: %w", err)
	}
	label, _ := st.Context[stateIntent].(string)
	return &result, label, nil
}
