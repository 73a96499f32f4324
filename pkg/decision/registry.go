package decision

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Result is the outcome of evaluating a graph.
type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations,omitempty"`
	Trace      []Step      `json:"-"`
}

// First returns the first violation, if any.
func (r Result) First() (Violation, bool) {
	if len(r.Violations) == 0 {
		return Violation{}, false
	}
	return r.Violations[0], true
}

// Registry binds operation names to graphs. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	graphs map[string]Node
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{graphs: make(map[string]Node)}
}

// Register binds op to root, replacing any previous graph.
func (r *Registry) Register(op string, root Node) error {
	if op == "" {
		return errors.New(errors.ErrCodeInvalidInput, "operation name is required")
	}
	if err := root.Check(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "graph %s", op)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphs[op] = root
	return nil
}

// Lookup returns the graph bound to op.
func (r *Registry) Lookup(op string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.graphs[op]
	return n, ok
}

// Operations returns the registered operation names, sorted.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.graphs))
}

// Evaluate runs the graph bound to op against ctx. An unregistered op is a
// programming error and returns GRAPH_NOT_FOUND.
func (r *Registry) Evaluate(op string, ctx *Context) (Result, error) {
	root, ok := r.Lookup(op)
	if !ok {
		return Result{}, errors.NotFound(errors.ErrCodeGraphNotFound, "operation", op, r.Operations())
	}
	if ctx.Operation == "" {
		ctx.Operation = op
	}

	var res Result
	if v := eval(root, ctx, &res.Trace); v != nil {
		res.Violations = []Violation{*v}
		return res, nil
	}
	res.Valid = true
	return res, nil
}
