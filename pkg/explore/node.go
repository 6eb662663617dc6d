package explore

import (
	"sort"
	"strings"

	"github.com/go-logr/logr"
)

// weakRefMember is a reflection pseudo-member some providers report for
// every handle; it is never a real child and is excluded from caching.
const weakRefMember = "__weakref__"

// Member pairs an attribute name with its cached child node.
type Member struct {
	Name string
	Node *Node
}

// Entry is one cached container entry: a pre-rendered display line, the
// formatted key or index, and the child node.
type Entry struct {
	Display string
	Key     string
	Node    *Node
}

// Node is the cached representation of one object at one path in the
// exploration tree. Children are materialized at most once, on the first
// Cache call, and owned by their parent; the parent back-reference exists
// only for path-label construction.
type Node struct {
	Handle    any
	Name      string
	PathLabel string
	Facts     Facts
	Kind      ContainerKind

	parent     *Node
	selectable bool
	cached     bool

	public  []Member
	private []Member
	entries []Entry

	predicates []Predicate

	filteredPublic  []Member
	filteredPrivate []Member
	filteredEntries []Entry
}

// Parent returns the node this one was expanded from, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Selectable reports whether the node can be pushed onto a navigation stack.
func (n *Node) Selectable() bool { return n.selectable }

// Cached reports whether children have been materialized.
func (n *Node) Cached() bool { return n.cached }

// Public returns the cached public members, sorted by name.
func (n *Node) Public() []Member { return n.public }

// Private returns the cached private members, sorted by name.
func (n *Node) Private() []Member { return n.private }

// Entries returns the cached container entries in provider order.
func (n *Node) Entries() []Entry { return n.entries }

// FilteredPublic returns the public members surviving the active predicates.
func (n *Node) FilteredPublic() []Member { return n.filteredPublic }

// FilteredPrivate returns the private members surviving the active predicates.
func (n *Node) FilteredPrivate() []Member { return n.filteredPrivate }

// FilteredEntries returns the container entries surviving the active predicates.
func (n *Node) FilteredEntries() []Entry { return n.filteredEntries }

// Predicates returns the active predicate set in insertion order.
func (n *Node) Predicates() []Predicate { return n.predicates }

// Engine builds and maintains the cache tree for one provider.
type Engine struct {
	provider Provider
	limit    LimitConfig
	log      logr.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit bounds container entry materialization for huge containers.
func WithLimit(l LimitConfig) Option {
	return func(e *Engine) { e.limit = l }
}

// WithLogger sets the structured logger used for cache diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine over the given provider.
func New(p Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: p,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRoot wraps a handle into the root node of a fresh exploration tree.
// The display name becomes both the node name and the root of every
// descendant's path label.
func (e *Engine) NewRoot(handle any, displayName string) *Node {
	n := e.describeNode(handle)
	n.Name = displayName
	n.PathLabel = displayName
	return n
}

func (e *Engine) describeNode(handle any) *Node {
	return &Node{
		Handle:     handle,
		Facts:      e.provider.Describe(handle),
		Kind:       e.provider.ContainerKind(handle),
		selectable: e.provider.Selectable(handle),
	}
}

func (e *Engine) newAttrChild(handle any, parent *Node, name string) *Node {
	n := e.describeNode(handle)
	n.Name = name
	n.parent = parent
	n.PathLabel = parent.PathLabel + "." + name
	return n
}

func (e *Engine) newEntryChild(handle any, parent *Node, keyLabel string) *Node {
	n := e.describeNode(handle)
	n.Name = "[" + keyLabel + "]"
	n.parent = parent
	n.PathLabel = parent.PathLabel + "[" + keyLabel + "]"
	return n
}

// Cache materializes the node's children: one child per fetchable member
// name, partitioned into public and private by a leading underscore, plus
// one child per container entry when the handle is a recognized container.
// Calling Cache on an already-cached node is a no-op; caching is single-shot
// and never retried.
func (e *Engine) Cache(n *Node) {
	if n == nil || n.cached {
		return
	}

	names := dedupe(e.provider.Members(n.Handle))
	var publicNames, privateNames []string
	for _, name := range names {
		if name == weakRefMember {
			continue
		}
		if strings.HasPrefix(name, "_") {
			privateNames = append(privateNames, name)
		} else {
			publicNames = append(publicNames, name)
		}
	}
	sort.Strings(publicNames)
	sort.Strings(privateNames)

	n.public = e.fetchMembers(n, publicNames)
	n.private = e.fetchMembers(n, privateNames)

	if n.Kind != KindNone {
		raw := e.limit.apply(e.provider.Entries(n.Handle))
		n.entries = make([]Entry, 0, len(raw))
		for _, re := range raw {
			child := e.newEntryChild(re.Handle, n, re.KeyLabel)
			n.entries = append(n.entries, Entry{
				Display: entryDisplay(n.Kind, re.KeyLabel, child),
				Key:     re.KeyLabel,
				Node:    child,
			})
		}
	}

	n.cached = true
	n.refilter()
}

// fetchMembers constructs child nodes for the given names, skipping any
// name the provider refuses to fetch. Enumerated-but-unfetchable members
// are a normal condition, not an error.
func (e *Engine) fetchMembers(n *Node, names []string) []Member {
	members := make([]Member, 0, len(names))
	for _, name := range names {
		handle, err := e.provider.Member(n.Handle, name)
		if err != nil {
			e.log.V(1).Info("skipping unfetchable member", "path", n.PathLabel, "member", name, "reason", err.Error())
			continue
		}
		members = append(members, Member{Name: name, Node: e.newAttrChild(handle, n, name)})
	}
	return members
}

func entryDisplay(kind ContainerKind, keyLabel string, child *Node) string {
	if kind == KindMapping {
		return " " + keyLabel + ": " + child.Facts.TypeLabel
	}
	return " [" + keyLabel + "] " + child.Facts.TypeLabel
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
