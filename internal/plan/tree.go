package plan

import (
	"path"
)

// Node is one item of the plan tree.
type Node struct {
	// Name is the display name (the last path element).
	Name string

	// Rel is the forward-slash path relative to the plan root.
	Rel string

	// Dir is true for folders, which can be expanded.
	Dir bool
}

// Tree exposes the plan root as a lazily expanded tree.
//
// Children are listed on demand with the same rules as the flat menu, so the
// two views never disagree about what a folder contains.
type Tree struct {
	root   string
	lister *Lister
}

// NewTree creates a Tree over the plan root.
func NewTree(root string, lister *Lister) *Tree {
	return &Tree{root: root, lister: lister}
}

// Root returns the node for the plan root itself.
func (t *Tree) Root() Node {
	return Node{Name: path.Base(t.root), Rel: "", Dir: true}
}

// Children lists the direct children of node, folders first.
// Files have no children.
func (t *Tree) Children(node Node) []Node {
	if !node.Dir {
		return nil
	}
	listing := t.lister.List(t.root, node.Rel)
	nodes := make([]Node, 0, len(listing.Folders)+len(listing.Files))
	for _, name := range listing.Folders {
		nodes = append(nodes, Node{Name: name, Rel: path.Join(node.Rel, name), Dir: true})
	}
	for _, name := range listing.Files {
		nodes = append(nodes, Node{Name: name, Rel: path.Join(node.Rel, name)})
	}
	return nodes
}
