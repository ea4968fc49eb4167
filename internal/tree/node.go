package tree

import (
	"sort"
	"strings"
)

// Loader retrieves child entries for a particular node path.
type Loader interface {
	List(path string) ([]*Node, error)
}

// Node represents a single entry in the navigation tree.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Open     bool
	Parent   *Node
	Children []*Node

	loader Loader
	loaded bool
}

// NewRoot creates a lazily loaded root node backed by loader.
func NewRoot(name string, loader Loader) *Node {
	return &Node{
		Name:   name,
		IsDir:  true,
		Open:   true,
		loader: loader,
	}
}

// ChildByName returns the child node with the given name if it exists.
func (n *Node) ChildByName(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// AddChild appends child and links it back to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	child.loader = n.loader
	n.Children = append(n.Children, child)
}

// EnsureLoaded lazily loads child entries for directory nodes. Nodes without a
// loader are treated as fully built.
func (n *Node) EnsureLoaded() error {
	if !n.IsDir || n.loaded || n.loader == nil {
		return nil
	}

	children, err := n.loader.List(n.Path)
	if err != nil {
		return err
	}

	n.Children = nil
	for _, child := range children {
		n.AddChild(child)
	}
	n.sortChildren()
	n.loaded = true
	return nil
}

// SortRecursive orders every directory below n: directories first, then
// case-insensitive by name.
func (n *Node) SortRecursive() {
	n.sortChildren()
	for _, child := range n.Children {
		child.SortRecursive()
	}
}

func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		ci, cj := n.Children[i], n.Children[j]
		if ci.IsDir != cj.IsDir {
			return ci.IsDir
		}
		return strings.ToLower(ci.Name) < strings.ToLower(cj.Name)
	})
}
