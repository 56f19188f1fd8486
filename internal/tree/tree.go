// Package tree holds the consistency rules of a project's task hierarchy:
// assembly from flat rows, completion propagation, hour roll-ups, due-date
// ordering, minimize cascades and serialization. Everything here is a pure
// walk over domain.TaskNode values; session state lives in the service layer.
package tree

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/alexanderramin/lifemap/internal/domain"
)

var (
	// ErrNoRoot means no row had an empty parent reference.
	ErrNoRoot = errors.New("project has no root task")

	// ErrMultipleRoots means more than one row had an empty parent reference.
	ErrMultipleRoots = errors.New("project has more than one root task")

	// ErrDuplicateID means two rows shared an id.
	ErrDuplicateID = errors.New("duplicate task id")
)

// Tree indexes a task hierarchy by id. The index must be kept in step with
// structural edits through Register and Unregister.
type Tree struct {
	Root  *domain.TaskNode
	index map[string]*domain.TaskNode
}

// New indexes an already linked hierarchy rooted at root.
func New(root *domain.TaskNode) *Tree {
	t := &Tree{Root: root, index: make(map[string]*domain.TaskNode)}
	t.Register(root)
	return t
}

// Assembly is the result of linking flat rows into a tree.
type Assembly struct {
	Tree *Tree
	// Orphans lists ids whose parent was not among the rows, or that were
	// unreachable from the root. They are left out of the tree.
	Orphans []string
}

// Assemble links flat rows (each carrying ID, ParentID and DisplayOrder)
// into a tree. Exactly one row must have an empty ParentID; it becomes the
// level-0 root. Siblings are ordered by DisplayOrder, then by id. Levels are
// derived from the structure, not taken from the rows.
func Assemble(rows []*domain.TaskNode) (*Assembly, error) {
	byID := make(map[string]*domain.TaskNode, len(rows))
	var root *domain.TaskNode
	for _, r := range rows {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
		}
		byID[r.ID] = r
		r.Children = nil
		if r.ParentID == "" {
			if root != nil {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleRoots, root.ID, r.ID)
			}
			root = r
		}
	}
	if root == nil {
		return nil, ErrNoRoot
	}

	children := make(map[string][]*domain.TaskNode)
	var orphans []string
	for _, r := range rows {
		if r == root {
			continue
		}
		if _, ok := byID[r.ParentID]; !ok {
			orphans = append(orphans, r.ID)
			continue
		}
		children[r.ParentID] = append(children[r.ParentID], r)
	}

	root.Level = 0
	reached := map[string]bool{root.ID: true}
	var link func(parent *domain.TaskNode)
	link = func(parent *domain.TaskNode) {
		kids := children[parent.ID]
		sortSiblings(kids)
		for _, k := range kids {
			if reached[k.ID] {
				continue
			}
			reached[k.ID] = true
			parent.AppendChild(k)
			link(k)
		}
	}
	link(root)

	for _, r := range rows {
		if !reached[r.ID] && !contains(orphans, r.ID) {
			orphans = append(orphans, r.ID)
		}
	}

	return &Assembly{Tree: New(root), Orphans: orphans}, nil
}

func sortSiblings(nodes []*domain.TaskNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].DisplayOrder != nodes[j].DisplayOrder {
			return nodes[i].DisplayOrder < nodes[j].DisplayOrder
		}
		return idLess(nodes[i].ID, nodes[j].ID)
	})
}

// idLess orders numeric ids numerically and everything else lexically.
func idLess(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Lookup returns the node with the given id.
func (t *Tree) Lookup(id string) (*domain.TaskNode, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Register indexes n and its whole subtree.
func (t *Tree) Register(n *domain.TaskNode) {
	n.Walk(func(d *domain.TaskNode) bool {
		t.index[d.ID] = d
		return true
	})
}

// Unregister drops n and its whole subtree from the index.
func (t *Tree) Unregister(n *domain.TaskNode) {
	n.Walk(func(d *domain.TaskNode) bool {
		delete(t.index, d.ID)
		return true
	})
}

// Rename moves a node's index entry to a new id and rewrites the parent
// reference of its children.
func (t *Tree) Rename(n *domain.TaskNode, newID string) {
	delete(t.index, n.ID)
	n.ID = newID
	t.index[newID] = n
	for _, c := range n.Children {
		c.ParentID = newID
	}
}

// Len returns the number of tasks, excluding the root.
func (t *Tree) Len() int {
	return len(t.index) - 1
}

// Tasks returns every task except the root, in pre-order.
func (t *Tree) Tasks() []*domain.TaskNode {
	return t.Root.Descendants()
}
