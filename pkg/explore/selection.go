package explore

// Collection selects which of a node's child collections a frame is
// currently browsing.
type Collection int

const (
	CollectionPublic Collection = iota
	CollectionPrivate
	CollectionEntries
)

func (c Collection) String() string {
	switch c {
	case CollectionPrivate:
		return "private"
	case CollectionEntries:
		return "entries"
	default:
		return "public"
	}
}

// PreviewMode selects what the overview pane previews for the selected child.
type PreviewMode int

const (
	PreviewRepr PreviewMode = iota
	PreviewSource
)

// OverviewMode selects the overview pane composition.
type OverviewMode int

const (
	OverviewAll OverviewMode = iota
	OverviewDoc
	OverviewValue
)

// Selection is the per-frame view state: the active collection, a cursor
// into its filtered view, a derived scroll offset, and the overview toggles.
type Selection struct {
	Collection Collection
	Cursor     int
	Scroll     int
	Preview    PreviewMode
	Overview   OverviewMode
}

// Frame pairs a node with its saved view state; one entry of a Stack.
type Frame struct {
	Node *Node
	Sel  Selection
}

func newFrame(n *Node) *Frame {
	col := CollectionPublic
	if n.Kind != KindNone {
		col = CollectionEntries
	}
	return &Frame{Node: n, Sel: Selection{Collection: col}}
}

// Len returns the length of the active filtered collection.
func (f *Frame) Len() int {
	switch f.Sel.Collection {
	case CollectionPrivate:
		return len(f.Node.FilteredPrivate())
	case CollectionEntries:
		return len(f.Node.FilteredEntries())
	default:
		return len(f.Node.FilteredPublic())
	}
}

// Line returns the display line for index i of the active filtered
// collection, or "" out of range.
func (f *Frame) Line(i int) string {
	if i < 0 || i >= f.Len() {
		return ""
	}
	switch f.Sel.Collection {
	case CollectionPrivate:
		return f.Node.FilteredPrivate()[i].Name
	case CollectionEntries:
		return f.Node.FilteredEntries()[i].Display
	default:
		return f.Node.FilteredPublic()[i].Name
	}
}

// At returns the child node at index i of the active filtered collection,
// or nil out of range.
func (f *Frame) At(i int) *Node {
	if i < 0 || i >= f.Len() {
		return nil
	}
	switch f.Sel.Collection {
	case CollectionPrivate:
		return f.Node.FilteredPrivate()[i].Node
	case CollectionEntries:
		return f.Node.FilteredEntries()[i].Node
	default:
		return f.Node.FilteredPublic()[i].Node
	}
}

// Selected returns the child under the cursor, or nil when the active
// collection is empty. Callers must guard against nil.
func (f *Frame) Selected() *Node {
	f.Clamp()
	return f.At(f.Sel.Cursor)
}

// MoveUp moves the cursor one line up, clamped at the first entry.
func (f *Frame) MoveUp() {
	f.Clamp()
	if f.Sel.Cursor > 0 {
		f.Sel.Cursor--
	}
	if f.Sel.Cursor < f.Sel.Scroll {
		f.Sel.Scroll = f.Sel.Cursor
	}
}

// MoveDown moves the cursor one line down, clamped at the last entry, and
// keeps the cursor inside the visible window of the given size.
func (f *Frame) MoveDown(viewport int) {
	f.Clamp()
	if f.Sel.Cursor < f.Len()-1 {
		f.Sel.Cursor++
	}
	f.scrollTo(viewport)
}

// MoveTop jumps to the first entry.
func (f *Frame) MoveTop() {
	f.Sel.Cursor = 0
	f.Sel.Scroll = 0
}

// MoveBottom jumps to the last entry.
func (f *Frame) MoveBottom(viewport int) {
	if n := f.Len(); n > 0 {
		f.Sel.Cursor = n - 1
	} else {
		f.Sel.Cursor = 0
	}
	f.scrollTo(viewport)
}

// ToggleCollection switches between the public and private views. The
// cursor does not carry across collections; it resets to the top. From the
// entries view it switches to public.
func (f *Frame) ToggleCollection() {
	if f.Sel.Collection == CollectionPublic {
		f.Sel.Collection = CollectionPrivate
	} else {
		f.Sel.Collection = CollectionPublic
	}
	f.Sel.Cursor = 0
	f.Sel.Scroll = 0
}

// Clamp forces the cursor back into the bounds of the active filtered
// collection; an empty collection pins the cursor at zero with no selection.
func (f *Frame) Clamp() {
	n := f.Len()
	if n == 0 {
		f.Sel.Cursor = 0
		f.Sel.Scroll = 0
		return
	}
	if f.Sel.Cursor > n-1 {
		f.Sel.Cursor = n - 1
	}
	if f.Sel.Cursor < 0 {
		f.Sel.Cursor = 0
	}
	if f.Sel.Scroll > f.Sel.Cursor {
		f.Sel.Scroll = f.Sel.Cursor
	}
	if f.Sel.Scroll < 0 {
		f.Sel.Scroll = 0
	}
}

func (f *Frame) scrollTo(viewport int) {
	if viewport <= 0 {
		return
	}
	if f.Sel.Cursor >= f.Sel.Scroll+viewport {
		f.Sel.Scroll = f.Sel.Cursor - viewport + 1
	}
	if f.Sel.Cursor < f.Sel.Scroll {
		f.Sel.Scroll = f.Sel.Cursor
	}
}
