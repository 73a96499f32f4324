package decision

import (
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func pass(name string) Node {
	return Condition(name, func(*Context) bool { return true }, func(*Context) Violation {
		panic("violation built for a passing condition")
	})
}

func fail(name string, code Code) Node {
	return Condition(name, func(*Context) bool { return false }, func(*Context) Violation {
		return Violate(code, "%s failed", name)
	})
}

func evaluate(t *testing.T, root Node) Result {
	t.Helper()
	r := NewRegistry()
	if err := r.Register("op", root); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	s, err := tiling.Initial("root")
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Evaluate("op", NewContext(s, "", Params{}, config.Default()))
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	return res
}

func TestInterpreter(t *testing.T) {
	tests := []struct {
		name  string
		root  Node
		valid bool
		code  Code
	}{
		{"condition pass", pass("a"), true, ""},
		{"condition fail", fail("a", CodeTileLocked), false, CodeTileLocked},
		{"action", Action("noop", nil), true, ""},
		{"sequence pass", Sequence("s", pass("a"), pass("b")), true, ""},
		{"sequence stops at first", Sequence("s", pass("a"), fail("b", CodeLastTile), fail("c", CodeMinSize)), false, CodeLastTile},
		{"selector first success", Selector("s", fail("a", CodeLastTile), pass("b")), true, ""},
		{"selector last violation", Selector("s", fail("a", CodeLastTile), fail("b", CodeMinSize)), false, CodeMinSize},
		{"nested", Sequence("s", Selector("t", fail("a", CodeLastTile), pass("b")), fail("c", CodeOverlap)), false, CodeOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.root)
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", res.Valid, tt.valid)
			}
			if tt.valid {
				if len(res.Violations) != 0 {
					t.Errorf("Violations = %v, want none", res.Violations)
				}
				return
			}
			if len(res.Violations) != 1 {
				t.Fatalf("len(Violations) = %d, want 1", len(res.Violations))
			}
			if res.Violations[0].Code != tt.code {
				t.Errorf("Code = %s, want %s", res.Violations[0].Code, tt.code)
			}
		})
	}
}

func TestActionRunsInOrder(t *testing.T) {
	var order []string
	record := func(name string) Node {
		return Action(name, func(c *Context) { order = append(order, name) })
	}
	res := evaluate(t, Sequence("s", record("a"), record("b"), fail("c", CodeLastTile), record("d")))
	if res.Valid {
		t.Error("Valid = true, want false")
	}
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("actions ran %v, want [a b]", order)
	}
}

func TestTrace(t *testing.T) {
	res := evaluate(t, Sequence("root", pass("a"), fail("b", CodeLastTile)))
	want := []Step{
		{Node: "a", Kind: "condition", Passed: true},
		{Node: "b", Kind: "condition", Passed: false},
		{Node: "root", Kind: "sequence", Passed: false},
	}
	if len(res.Trace) != len(want) {
		t.Fatalf("Trace = %v, want %v", res.Trace, want)
	}
	for i := range want {
		if res.Trace[i] != want[i] {
			t.Errorf("Trace[%d] = %+v, want %+v", i, res.Trace[i], want[i])
		}
	}
}

func TestRegisterRejectsMalformedGraphs(t *testing.T) {
	tests := []struct {
		name string
		root Node
	}{
		{"empty sequence", Sequence("s")},
		{"empty selector", Selector("s")},
		{"condition without predicate", Node{Kind: KindCondition, Name: "c"}},
		{"nested", Sequence("s", Selector("t"))},
		{"unknown kind", Node{Kind: Kind(9), Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewRegistry().Register("op", tt.root); err == nil {
				t.Error("Register() error = nil, want error")
			}
		})
	}
}

func TestEvaluateUnknownGraph(t *testing.T) {
	s, _ := tiling.Initial("root")
	_, err := Builtin().Evaluate("splitt", NewContext(s, "", Params{}, config.Default()))
	if !errors.Is(err, errors.ErrCodeGraphNotFound) {
		t.Fatalf("Evaluate() error = %v, want %s", err, errors.ErrCodeGraphNotFound)
	}
	if !strings.Contains(err.Error(), `"split"`) {
		t.Errorf("Evaluate() error = %v, want suggestion for split", err)
	}
}

func TestBuiltinOperations(t *testing.T) {
	got := strings.Join(Builtin().Operations(), ",")
	want := "delete,insert,resize,seam-resize,split,validate"
	if got != want {
		t.Errorf("Operations() = %s, want %s", got, want)
	}
}
