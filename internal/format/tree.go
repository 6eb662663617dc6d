package format

import (
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/objex/pkg/explore"
)

// TreeOptions controls the non-interactive tree dump.
type TreeOptions struct {
	MaxDepth    int  // levels to expand below the root (0 = root only)
	ShowPrivate bool // include underscore-prefixed members
}

// DefaultTreeOptions expands two levels of public members and entries.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{MaxDepth: 2}
}

// Tree renders the node and its children as an indented tree, caching
// lazily as it descends. Depth is bounded, so cycles in the underlying
// graph terminate like any other deep branch.
func Tree(e *explore.Engine, n *explore.Node, opts TreeOptions) string {
	root := treeprint.NewWithRoot(nodeLine(n.Name, n))
	addChildren(e, root, n, opts, 0)
	return root.String()
}

func addChildren(e *explore.Engine, branch treeprint.Tree, n *explore.Node, opts TreeOptions, depth int) {
	if depth >= opts.MaxDepth || !n.Selectable() {
		return
	}
	e.Cache(n)

	for _, en := range n.FilteredEntries() {
		addChild(e, branch, "["+en.Key+"]", en.Node, opts, depth)
	}
	for _, m := range n.FilteredPublic() {
		addChild(e, branch, m.Name, m.Node, opts, depth)
	}
	if opts.ShowPrivate {
		for _, m := range n.FilteredPrivate() {
			addChild(e, branch, m.Name, m.Node, opts, depth)
		}
	}
}

func addChild(e *explore.Engine, branch treeprint.Tree, label string, n *explore.Node, opts TreeOptions, depth int) {
	if n.Selectable() && depth+1 < opts.MaxDepth {
		sub := branch.AddBranch(nodeLine(label, n))
		addChildren(e, sub, n, opts, depth+1)
		return
	}
	branch.AddNode(nodeLine(label, n))
}

func nodeLine(label string, n *explore.Node) string {
	line := label + " " + n.Facts.TypeLabel
	if n.Facts.Length != "" {
		line += " (" + n.Facts.Length + ")"
	}
	return line
}
