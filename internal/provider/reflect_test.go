package provider

import (
	"strings"
	"testing"

	"github.com/oakwood-commons/objex/pkg/explore"
)

type account struct {
	Name    string
	Balance int
	secret  string //nolint:unused // exercised through reflection
}

func (a account) Describe() string { return a.Name }

type boom struct{}

func (boom) String() string { panic("boom") }

type documented struct{}

func (documented) Doc() string { return "a documented value" }

func TestMembersStructFieldsAndMethods(t *testing.T) {
	p := New()
	names := p.Members(account{Name: "x"})

	want := map[string]bool{"Name": false, "Balance": false, "secret": false, "Describe": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Fatalf("member %q missing from enumeration %v", n, names)
		}
	}
}

func TestMemberFetch(t *testing.T) {
	p := New()
	a := account{Name: "alice", Balance: 12, secret: "hidden"}

	v, err := p.Member(a, "Name")
	if err != nil {
		t.Fatalf("expected Name fetch to succeed, got %v", err)
	}
	if v != "alice" {
		t.Fatalf("Name = %v, want alice", v)
	}

	m, err := p.Member(a, "Describe")
	if err != nil {
		t.Fatalf("expected method fetch to succeed, got %v", err)
	}
	if fn, ok := m.(func() string); !ok || fn() != "alice" {
		t.Fatalf("expected bound method returning alice, got %T", m)
	}

	if _, err := p.Member(a, "secret"); err == nil {
		t.Fatalf("unexported field must fail per-name")
	}
	if _, err := p.Member(a, "Missing"); err == nil {
		t.Fatalf("unknown member must fail per-name")
	}
	if _, err := p.Member(nil, "x"); err == nil {
		t.Fatalf("nil handle must fail")
	}
}

func TestContainerKinds(t *testing.T) {
	p := New()
	cases := []struct {
		name   string
		handle any
		want   explore.ContainerKind
	}{
		{"map", map[string]int{}, explore.KindMapping},
		{"set", map[string]struct{}{}, explore.KindSet},
		{"slice", []int{1}, explore.KindSequence},
		{"array", [2]int{}, explore.KindSequence},
		{"ptr to slice", &[]int{}, explore.KindSequence},
		{"scalar", 42, explore.KindNone},
		{"struct", account{}, explore.KindNone},
		{"nil", nil, explore.KindNone},
	}
	for _, tc := range cases {
		if got := p.ContainerKind(tc.handle); got != tc.want {
			t.Fatalf("%s: kind = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEntriesMappingSortedByKeyLabel(t *testing.T) {
	p := New()
	entries := p.Entries(map[string]int{"b": 2, "a": 1, "c": 3})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{`"a"`, `"b"`, `"c"`} {
		if entries[i].KeyLabel != want {
			t.Fatalf("entries[%d].KeyLabel = %q, want %q", i, entries[i].KeyLabel, want)
		}
	}
	if entries[1].Handle != 2 {
		t.Fatalf("entry handle = %v, want 2", entries[1].Handle)
	}
}

func TestEntriesSequence(t *testing.T) {
	p := New()
	entries := p.Entries([]string{"x", "y"})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].KeyLabel != "0" || entries[1].KeyLabel != "1" {
		t.Fatalf("sequence key labels wrong: %v", entries)
	}
	if entries[1].Handle != "y" {
		t.Fatalf("sequence handle = %v, want y", entries[1].Handle)
	}
}

func TestEntriesSetStableWithinPass(t *testing.T) {
	p := New()
	set := map[string]struct{}{"b": {}, "a": {}}
	first := p.Entries(set)
	second := p.Entries(set)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 set entries")
	}
	for i := range first {
		if first[i].Handle != second[i].Handle {
			t.Fatalf("set enumeration must be stable across passes")
		}
	}
}

func TestDescribeScalar(t *testing.T) {
	p := New()
	f := p.Describe("hello")
	if f.TypeLabel != "string" {
		t.Fatalf("type label = %q", f.TypeLabel)
	}
	if f.Repr != `"hello"` {
		t.Fatalf("repr = %q", f.Repr)
	}
	if f.Length != "5" {
		t.Fatalf("string must report its length, got %q", f.Length)
	}
	if !f.Builtin {
		t.Fatalf("predeclared string must be flagged builtin")
	}
	if f.Doc != explore.NoDoc {
		t.Fatalf("doc must default to the sentinel, got %q", f.Doc)
	}
}

func TestDescribeFunc(t *testing.T) {
	p := New()
	f := p.Describe(TestDescribeFunc)
	if !f.Callable || !f.Function {
		t.Fatalf("plain function must be callable+function, got %+v", f)
	}
	if f.Method {
		t.Fatalf("plain function must not be flagged method")
	}
}

func TestDescribeDegradesPanickingRepr(t *testing.T) {
	p := New()
	// fmt recovers String panics itself; either way Describe must survive
	// and still fill the other fields.
	f := p.Describe(boom{})
	if f.TypeLabel == "" {
		t.Fatalf("type label must survive a panicking String method")
	}
	if f.Repr == "" {
		t.Fatalf("repr must degrade, not vanish")
	}
}

func TestDescribeDocumented(t *testing.T) {
	p := New()
	f := p.Describe(documented{})
	if f.Doc != "a documented value" {
		t.Fatalf("doc = %q", f.Doc)
	}
}

func TestDescribeNilHasNoLength(t *testing.T) {
	p := New()
	f := p.Describe(nil)
	if f.Length != "" {
		t.Fatalf("nil must have no well-defined size, got %q", f.Length)
	}
	if f.TypeLabel != "nil" {
		t.Fatalf("type label = %q", f.TypeLabel)
	}
}

func TestSelectable(t *testing.T) {
	p := New()
	cases := []struct {
		name   string
		handle any
		want   bool
	}{
		{"map", map[string]int{}, true},
		{"slice", []int{}, true},
		{"struct", account{}, true},
		{"ptr to struct", &account{}, true},
		{"int", 7, false},
		{"string", "s", false},
		{"func", TestSelectable, false},
		{"nil", nil, false},
		{"nil ptr", (*account)(nil), false},
	}
	for _, tc := range cases {
		if got := p.Selectable(tc.handle); got != tc.want {
			t.Fatalf("%s: selectable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestExploreRoundTrip(t *testing.T) {
	// End-to-end over the real provider: the mapping scenario from the
	// navigation core driven by live Go values.
	e := explore.New(New())
	root := e.NewRoot(map[string]any{"a": 1, "b": []any{1, 2, 3}}, "data")
	s := e.NewStack(root)

	entries := root.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 root entries, got %d", len(entries))
	}
	if entries[0].Key != `"a"` || entries[1].Key != `"b"` {
		t.Fatalf("unexpected entry order: %q, %q", entries[0].Key, entries[1].Key)
	}

	s.Current().Sel.Cursor = 1
	child := s.Current().Selected()
	if child == nil || !s.Push(child) {
		t.Fatalf("expected to drill into the list entry")
	}
	if got := len(child.Entries()); got != 3 {
		t.Fatalf("list node must cache 3 entries, got %d", got)
	}
	if child.PathLabel != `data["b"]` {
		t.Fatalf("path label = %q", child.PathLabel)
	}

	if !s.Pop() {
		t.Fatalf("pop must succeed")
	}
	if s.Current().Sel.Cursor != 1 {
		t.Fatalf("pop must restore the prior cursor, got %d", s.Current().Sel.Cursor)
	}
}

func TestExploreStructMembers(t *testing.T) {
	e := explore.New(New())
	root := e.NewRoot(account{Name: "alice", Balance: 3, secret: "x"}, "acct")
	e.Cache(root)

	var names []string
	for _, m := range root.Public() {
		names = append(names, m.Name)
	}
	// "secret" is enumerated but unfetchable, so it is skipped.
	if strings.Join(names, ",") != "Balance,Describe,Name" {
		t.Fatalf("public members = %v", names)
	}
	for _, m := range root.Public() {
		if m.Name == "Describe" && !m.Node.Facts.Callable {
			t.Fatalf("bound method member must be callable")
		}
	}
}
