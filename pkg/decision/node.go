// Package decision gates every tiling mutation behind a declarative
// precondition graph.
//
// A graph is a tree of [Node] values of four kinds:
//
//   - Condition: a predicate plus a violation built only when it fails
//   - Action: always succeeds; records bookkeeping in the context
//   - Sequence: children in order, stopping at the first failure
//   - Selector: children in order, stopping at the first success
//
// A single interpreter walks the tree. When every child of a Selector fails,
// the Selector reports the violation of its last child.
//
// A [Registry] binds operation names to graphs. [Registry.Evaluate] returns
// the expected rejections as [Violation] values inside the [Result]; only a
// missing graph is reported as an error.
package decision

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Kind tags the variant of a Node.
type Kind int

const (
	KindCondition Kind = iota
	KindAction
	KindSequence
	KindSelector
)

func (k Kind) String() string {
	switch k {
	case KindCondition:
		return "condition"
	case KindAction:
		return "action"
	case KindSequence:
		return "sequence"
	case KindSelector:
		return "selector"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Predicate tests a context.
type Predicate func(*Context) bool

// ViolationFunc builds the violation reported when a condition fails.
type ViolationFunc func(*Context) Violation

// Effect performs bookkeeping on a context.
type Effect func(*Context)

// Node is one vertex of a decision graph. Only the fields of its Kind are
// meaningful.
type Node struct {
	Kind      Kind
	Name      string
	Predicate Predicate
	Violation ViolationFunc
	Effect    Effect
	Children  []Node
}

// Condition returns a node that passes when pred holds.
func Condition(name string, pred Predicate, v ViolationFunc) Node {
	return Node{Kind: KindCondition, Name: name, Predicate: pred, Violation: v}
}

// Action returns a node that runs effect and always passes.
func Action(name string, effect Effect) Node {
	return Node{Kind: KindAction, Name: name, Effect: effect}
}

// Sequence returns a node that passes when every child passes.
func Sequence(name string, children ...Node) Node {
	return Node{Kind: KindSequence, Name: name, Children: children}
}

// Selector returns a node that passes when any child passes.
func Selector(name string, children ...Node) Node {
	return Node{Kind: KindSelector, Name: name, Children: children}
}

// Check reports structural mistakes in a graph: conditions without a
// predicate or violation, and composites without children.
func (n Node) Check() error {
	switch n.Kind {
	case KindCondition:
		if n.Predicate == nil || n.Violation == nil {
			return errors.New(errors.ErrCodeInternal, "condition %q needs a predicate and a violation", n.Name)
		}
	case KindAction:
	case KindSequence, KindSelector:
		if len(n.Children) == 0 {
			return errors.New(errors.ErrCodeInternal, "%s %q has no children", n.Kind, n.Name)
		}
		for _, c := range n.Children {
			if err := c.Check(); err != nil {
				return err
			}
		}
	default:
		return errors.New(errors.ErrCodeInternal, "node %q has unknown kind %d", n.Name, int(n.Kind))
	}
	return nil
}

// Step records one visited node.
type Step struct {
	Node   string `json:"node"`
	Kind   string `json:"kind"`
	Passed bool   `json:"passed"`
}

// eval walks n depth-first. The returned violation is non-nil exactly when
// the node fails.
func eval(n Node, ctx *Context, trace *[]Step) *Violation {
	var v *Violation
	switch n.Kind {
	case KindCondition:
		if !n.Predicate(ctx) {
			built := n.Violation(ctx)
			v = &built
		}
	case KindAction:
		if n.Effect != nil {
			n.Effect(ctx)
		}
	case KindSequence:
		for _, c := range n.Children {
			if v = eval(c, ctx, trace); v != nil {
				break
			}
		}
	case KindSelector:
		for _, c := range n.Children {
			if v = eval(c, ctx, trace); v == nil {
				break
			}
		}
	}
	*trace = append(*trace, Step{Node: n.Name, Kind: n.Kind.String(), Passed: v == nil})
	return v
}
