package explore

import "testing"

func selectionFixture(t *testing.T) (*Engine, *Frame) {
	t.Helper()
	e := newTestEngine()
	h := &obj{
		attrNames: []string{"a", "b", "c", "d", "e"},
		attrs: map[string]any{
			"a": scalar("a"),
			"b": callableObj("b"),
			"c": scalar("c"),
			"d": callableObj("d"),
			"e": scalar("e"),
		},
		selectable: true,
	}
	s := e.NewStack(e.NewRoot(h, "root"))
	return e, s.Current()
}

func TestMoveDownClampsAtBottom(t *testing.T) {
	_, f := selectionFixture(t)
	for i := 0; i < 20; i++ {
		f.MoveDown(3)
	}
	if f.Sel.Cursor != 4 {
		t.Fatalf("cursor = %d after over-shooting down, want 4", f.Sel.Cursor)
	}
	// Cursor stays inside the 3-line viewport.
	if f.Sel.Scroll != 2 {
		t.Fatalf("scroll = %d, want 2", f.Sel.Scroll)
	}
}

func TestMoveUpClampsAtTop(t *testing.T) {
	_, f := selectionFixture(t)
	f.MoveDown(3)
	for i := 0; i < 20; i++ {
		f.MoveUp()
	}
	if f.Sel.Cursor != 0 || f.Sel.Scroll != 0 {
		t.Fatalf("cursor/scroll = %d/%d after over-shooting up, want 0/0", f.Sel.Cursor, f.Sel.Scroll)
	}
}

func TestMoveTopBottom(t *testing.T) {
	_, f := selectionFixture(t)
	f.MoveBottom(3)
	if f.Sel.Cursor != 4 {
		t.Fatalf("MoveBottom cursor = %d, want 4", f.Sel.Cursor)
	}
	if f.Sel.Scroll != 2 {
		t.Fatalf("MoveBottom scroll = %d, want 2", f.Sel.Scroll)
	}
	f.MoveTop()
	if f.Sel.Cursor != 0 || f.Sel.Scroll != 0 {
		t.Fatalf("MoveTop must reset cursor and scroll")
	}
}

func TestSelectedReturnsCursorNode(t *testing.T) {
	_, f := selectionFixture(t)
	f.MoveDown(10)
	n := f.Selected()
	if n == nil || n.Name != "b" {
		t.Fatalf("expected selection 'b', got %v", n)
	}
}

func TestToggleCollectionResetsCursor(t *testing.T) {
	e := newTestEngine()
	h := &obj{
		attrNames: []string{"pub", "_priv1", "_priv2"},
		attrs: map[string]any{
			"pub":    scalar("p"),
			"_priv1": scalar("p1"),
			"_priv2": scalar("p2"),
		},
		selectable: true,
	}
	s := e.NewStack(e.NewRoot(h, "root"))
	f := s.Current()

	if f.Sel.Collection != CollectionPublic {
		t.Fatalf("non-container node must default to the public view")
	}
	f.MoveDown(10) // clamped inside the 1-element public view
	f.ToggleCollection()
	if f.Sel.Collection != CollectionPrivate {
		t.Fatalf("toggle must switch to private")
	}
	if f.Sel.Cursor != 0 || f.Sel.Scroll != 0 {
		t.Fatalf("toggle must reset the cursor, got %d/%d", f.Sel.Cursor, f.Sel.Scroll)
	}
	if f.Len() != 2 {
		t.Fatalf("private view length = %d, want 2", f.Len())
	}
	f.ToggleCollection()
	if f.Sel.Collection != CollectionPublic {
		t.Fatalf("second toggle must switch back to public")
	}
}

func TestToggleCollectionFromEntriesGoesPublic(t *testing.T) {
	e := newTestEngine()
	h := mappingObj("m", RawEntry{KeyLabel: `"k"`, Handle: scalar("v")})
	s := e.NewStack(e.NewRoot(h, "root"))
	f := s.Current()
	if f.Sel.Collection != CollectionEntries {
		t.Fatalf("container frame must default to entries")
	}
	f.ToggleCollection()
	if f.Sel.Collection != CollectionPublic {
		t.Fatalf("toggle from entries must land on public")
	}
}

func TestEmptyFilteredCollectionHasNoSelection(t *testing.T) {
	e, f := selectionFixture(t)
	f.MoveBottom(10)

	// A predicate nothing matches empties the view; the cursor must clamp
	// to a defined no-selection state instead of going out of bounds.
	e.SetPredicates(f.Node, []Predicate{{
		Name: "none",
		Test: func(*Node) bool { return false },
	}})

	if f.Len() != 0 {
		t.Fatalf("expected empty filtered view, got %d", f.Len())
	}
	if n := f.Selected(); n != nil {
		t.Fatalf("empty collection must have no selection, got %v", n)
	}
	if f.Sel.Cursor != 0 {
		t.Fatalf("cursor must clamp to 0 on an empty view, got %d", f.Sel.Cursor)
	}

	e.ClearPredicates(f.Node)
	if f.Selected() == nil {
		t.Fatalf("clearing predicates must restore a selection")
	}
}

func TestClampAfterShrinkingFilter(t *testing.T) {
	e, f := selectionFixture(t)
	f.MoveBottom(10) // cursor 4
	e.SetPredicates(f.Node, []Predicate{callables()})
	if f.Len() != 2 {
		t.Fatalf("expected 2 callables, got %d", f.Len())
	}
	n := f.Selected()
	if n == nil {
		t.Fatalf("shrunk view must still have a selection")
	}
	if f.Sel.Cursor != 1 {
		t.Fatalf("cursor must clamp to the new last index, got %d", f.Sel.Cursor)
	}
}
