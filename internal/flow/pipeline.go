// Package flow implements a minimal directed execution pipeline: named nodes
// between fixed start and end markers, each transforming a shared state. The
// orchestrator uses it as its graph-structured execution strategy.
package flow

import (
	"context"
	"fmt"
	"log/slog"
)

// Reserved marker node IDs. Every pipeline runs from StartNodeID and must
// reach EndNodeID.
const (
	StartNodeID = "start"
	EndNodeID   = "end"
)

// State is the mutable context threaded through a pipeline run.
type State struct {
	// Context holds untyped values exchanged between nodes.
	Context map[string]any

	// History tracks the node path taken, for debugging and tests.
	History []string
}

// NewState creates an empty pipeline state.
func NewState() *State {
	return &State{Context: make(map[string]any)}
}

// NodeFunc is a node body. It may read and mutate the state's context.
type NodeFunc func(ctx context.Context, st *State) error

// Node is a single stage with one outgoing edge.
type Node struct {
	ID   string
	Run  NodeFunc // nil for marker nodes
	Next string   // empty only on the end marker
}

// Pipeline is a validated, immutable node graph. Safe for concurrent runs;
// all per-run data lives in State.
type Pipeline struct {
	nodes  map[string]Node
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a structured logger for node transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New builds a pipeline from a node list and validates its shape: the start
// and end markers must exist, every edge must point at a defined node, and
// the start marker must reach the end without revisiting a node.
func New(nodes []Node, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		nodes:  make(map[string]Node, len(nodes)),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("pipeline node with empty ID")
		}
		if _, dup := p.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate pipeline node %q", n.ID)
		}
		p.nodes[n.ID] = n
	}

	if _, ok := p.nodes[StartNodeID]; !ok {
		return nil, fmt.Errorf("pipeline is missing the %q marker", StartNodeID)
	}
	if _, ok := p.nodes[EndNodeID]; !ok {
		return nil, fmt.Errorf("pipeline is missing the %q marker", EndNodeID)
	}

	// Walk the single path from start, checking edges and cycle-freedom.
	seen := make(map[string]bool, len(p.nodes))
	for id := StartNodeID; ; {
		if seen[id] {
			return nil, fmt.Errorf("pipeline cycle detected at node %q", id)
		}
		seen[id] = true

		node := p.nodes[id]
		if id == EndNodeID {
			if node.Next != "" {
				return nil, fmt.Errorf("end marker must not have an outgoing edge")
			}
			break
		}
		if node.Next == "" {
			return nil, fmt.Errorf("node %q has no outgoing edge", id)
		}
		if _, ok := p.nodes[node.Next]; !ok {
			return nil, fmt.Errorf("node %q points at undefined node %q", id, node.Next)
		}
		id = node.Next
	}

	for id := range p.nodes {
		if !seen[id] {
			return nil, fmt.Errorf("node %q is unreachable from %q", id, StartNodeID)
		}
	}

	return p, nil
}

// Run executes the pipeline from the start marker to the end marker,
// mutating and returning the given state. The first node error aborts the
// run.
func (p *Pipeline) Run(ctx context.Context, st *State) (*State, error) {
	if st == nil {
		st = NewState()
	}
	if st.Context == nil {
		st.Context = make(map[string]any)
	}

	for id := StartNodeID; ; {
		node := p.nodes[id]
		st.History = append(st.History, id)
		p.logger.Debug("pipeline node", "node", id)

		if node.Run != nil {
			if err := node.Run(ctx, st); err != nil {
				return st, fmt.Errorf("node %q: %w", id, err)
			}
		}

		if id == EndNodeID {
			return st, nil
		}
		id = node.Next
	}
}
