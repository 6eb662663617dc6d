package explore

// Predicate is a named boolean test over a node, used to compute the
// visible subset of a parent's children.
type Predicate struct {
	Name string
	Test func(*Node) bool
}

// SetPredicates replaces the node's active predicate set and recomputes its
// filtered views. Descendants are not touched; they refilter lazily when
// their own cache or filter path runs. A child survives when ANY active
// predicate matches it; with an empty set every child survives.
func (e *Engine) SetPredicates(n *Node, preds []Predicate) {
	if n == nil {
		return
	}
	n.predicates = append([]Predicate(nil), preds...)
	n.refilter()
}

// ClearPredicates removes all active predicates from the node.
func (e *Engine) ClearPredicates(n *Node) {
	e.SetPredicates(n, nil)
}

// keep reports whether the child survives the node's active predicates.
// Predicates combine with OR: the first match wins.
func (n *Node) keep(child *Node) bool {
	if len(n.predicates) == 0 {
		return true
	}
	for _, p := range n.predicates {
		if p.Test != nil && p.Test(child) {
			return true
		}
	}
	return false
}

// refilter recomputes the filtered views from the unfiltered collections,
// preserving relative order. With no active predicates the filtered views
// alias the unfiltered ones.
func (n *Node) refilter() {
	if len(n.predicates) == 0 {
		n.filteredPublic = n.public
		n.filteredPrivate = n.private
		n.filteredEntries = n.entries
		return
	}

	n.filteredPublic = n.filteredPublic[:0:0]
	for _, m := range n.public {
		if n.keep(m.Node) {
			n.filteredPublic = append(n.filteredPublic, m)
		}
	}

	n.filteredPrivate = n.filteredPrivate[:0:0]
	for _, m := range n.private {
		if n.keep(m.Node) {
			n.filteredPrivate = append(n.filteredPrivate, m)
		}
	}

	n.filteredEntries = n.filteredEntries[:0:0]
	for _, en := range n.entries {
		if n.keep(en.Node) {
			n.filteredEntries = append(n.filteredEntries, en)
		}
	}
}
