// Package explore implements the navigation core of the object explorer: a
// lazily-populated cache tree over an arbitrary object graph, a predicate
// filter engine over cached children, and a navigation stack that preserves
// per-level view state across drill-in and back-out.
//
// The package is oblivious to how facts about objects are obtained; callers
// supply a Provider (see internal/provider for the reflect-backed one).
package explore

// ContainerKind classifies a handle as one of the recognized container
// shapes, or KindNone for everything else.
type ContainerKind int

const (
	KindNone ContainerKind = iota
	KindMapping
	KindSequence
	KindSet
)

func (k ContainerKind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindSet:
		return "set"
	default:
		return "none"
	}
}

// NoDoc is the sentinel stored in Facts.Doc when a handle carries no
// documentation, or when retrieving it failed.
const NoDoc = "None"

// Facts is the provider's description of a single handle. Every field is
// best-effort: a provider that fails to derive one field degrades that field
// alone (empty Length, empty Source, NoDoc) and still returns the rest.
type Facts struct {
	TypeLabel string
	Repr      string
	Doc       string
	Length    string // "" when the object has no well-defined size
	Source    string // "" when no source listing is available

	Callable bool
	Class    bool
	Function bool
	Method   bool
	Module   bool
	Builtin  bool
}

// RawEntry is one container entry as reported by a provider: a formatted
// key or index label plus the entry's handle.
type RawEntry struct {
	KeyLabel string
	Handle   any
}

// Provider answers introspection queries about live object handles.
//
// Members may report names that Member later refuses to fetch; callers must
// treat a Member error as "skip this name", not as a failure of the whole
// enumeration. Describe must not fail: field derivation errors degrade the
// affected field only.
type Provider interface {
	// Members enumerates member names of the handle, in no particular order.
	Members(handle any) []string

	// Member fetches a single member by name. It fails per-name.
	Member(handle any, name string) (any, error)

	// ContainerKind reports whether the handle is a recognized container.
	ContainerKind(handle any) ContainerKind

	// Entries lists the container entries of the handle. Mapping entries
	// follow the provider's native order; set-like entries only need to be
	// stable for a single enumeration.
	Entries(handle any) []RawEntry

	// Describe derives display facts for the handle.
	Describe(handle any) Facts

	// Selectable reports whether the handle can be drilled into.
	Selectable(handle any) bool
}
