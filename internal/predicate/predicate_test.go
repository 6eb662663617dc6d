package predicate

import (
	"testing"

	"github.com/oakwood-commons/objex/internal/provider"
	"github.com/oakwood-commons/objex/pkg/explore"
)

func node(t *testing.T, handle any, name string) *explore.Node {
	t.Helper()
	e := explore.New(provider.New())
	return e.NewRoot(handle, name)
}

func TestBuiltinLookup(t *testing.T) {
	p, ok := Builtin("callable")
	if !ok {
		t.Fatalf("callable must be a known builtin")
	}
	if p.Name != "callable" || p.Test == nil {
		t.Fatalf("builtin predicate incomplete: %+v", p)
	}
	if _, ok := Builtin("nope"); ok {
		t.Fatalf("unknown name must not resolve")
	}
}

func TestBuiltinNamesSortedAndComplete(t *testing.T) {
	names := BuiltinNames()
	if len(names) != len(builtins) {
		t.Fatalf("expected %d names, got %d", len(builtins), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestBuiltinTests(t *testing.T) {
	callable, _ := Builtin("callable")
	mapping, _ := Builtin("mapping")
	sequence, _ := Builtin("sequence")
	documented, _ := Builtin("documented")

	fn := node(t, TestBuiltinTests, "fn")
	m := node(t, map[string]int{"a": 1}, "m")
	seq := node(t, []int{1, 2}, "seq")

	if !callable.Test(fn) || callable.Test(m) {
		t.Fatalf("callable builtin misclassified")
	}
	if !mapping.Test(m) || mapping.Test(seq) {
		t.Fatalf("mapping builtin misclassified")
	}
	if !sequence.Test(seq) || sequence.Test(m) {
		t.Fatalf("sequence builtin misclassified")
	}
	if documented.Test(m) {
		t.Fatalf("a plain map carries no documentation")
	}
}

func TestRegistryCompileAndEval(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	p, err := r.Compile(`name.startsWith("ba") && length >= 2`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Name != `name.startsWith("ba") && length >= 2` {
		t.Fatalf("predicate must carry its expression as the name, got %q", p.Name)
	}

	match := node(t, []int{1, 2, 3}, "bars")
	miss := node(t, []int{1, 2, 3}, "foos")
	if !p.Test(match) {
		t.Fatalf("expected %q to match", match.Name)
	}
	if p.Test(miss) {
		t.Fatalf("expected %q not to match", miss.Name)
	}
}

func TestRegistryCompileRejectsBadExpressions(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, err := r.Compile(""); err == nil {
		t.Fatalf("empty expression must fail")
	}
	if _, err := r.Compile("name +"); err == nil {
		t.Fatalf("syntax error must fail compilation")
	}
	if _, err := r.Compile(`name + "x"`); err == nil {
		t.Fatalf("non-bool expression must fail compilation")
	}
	if _, err := r.Compile("nosuchvar"); err == nil {
		t.Fatalf("unknown variable must fail compilation")
	}
}

func TestRegistryFactVariables(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	p, err := r.Compile(`type.contains("map") && selectable && !callable`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !p.Test(node(t, map[string]int{"a": 1}, "m")) {
		t.Fatalf("fact variables must be bound from the node")
	}
	if p.Test(node(t, 7, "n")) {
		t.Fatalf("scalar must not match")
	}
}

func TestRegistryPredicateFiltersCollection(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	p, err := r.Compile(`name == "Balance"`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	e := explore.New(provider.New())
	root := e.NewRoot(struct {
		Name    string
		Balance int
	}{"alice", 3}, "acct")
	e.Cache(root)
	e.SetPredicates(root, []explore.Predicate{p})

	got := root.FilteredPublic()
	if len(got) != 1 || got[0].Name != "Balance" {
		t.Fatalf("filtered members = %v", got)
	}
}
