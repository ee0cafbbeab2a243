package tree

import (
	"strconv"

	"github.com/kingraph-app/kingraph/domain/people"
)

// TreeLayoutNode is the renderer-facing structure: one root joining an
// upward pedigree branch and a downward descendant branch. Since the same
// person can occur at several positions, every node carries an occurrence
// Key derived from its path from the root; coordinates are keyed by it.
//
// Generation is positive on the ancestor side and negative on the
// descendant side.
type TreeLayoutNode struct {
	Key          string         `json:"key"`
	ID           string         `json:"id"`
	Person       *people.Person `json:"person"`
	Generation   int            `json:"generation"`
	Spouse       *people.Person `json:"spouse,omitempty"`
	MarriageYear *int           `json:"marriageYear,omitempty"`

	// Truncation is reported per direction so the root, which faces both
	// ways, can tell the renderer which expansions to offer. Off-root nodes
	// only ever set the flag of their own side.
	HasMoreAncestors   bool `json:"hasMoreAncestors"`
	HasMoreDescendants bool `json:"hasMoreDescendants"`

	Father   *TreeLayoutNode   `json:"father,omitempty"`
	Mother   *TreeLayoutNode   `json:"mother,omitempty"`
	Children []*TreeLayoutNode `json:"children,omitempty"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MergeTrees joins a pedigree and a descendant tree built for the same root
// person. Either side may be nil; both nil yields nil.
func MergeTrees(ped *PedigreeNode, desc *DescendantNode) *TreeLayoutNode {
	var root *TreeLayoutNode
	switch {
	case ped != nil:
		root = &TreeLayoutNode{Key: ped.ID, ID: ped.ID, Person: ped.Person}
	case desc != nil:
		root = &TreeLayoutNode{Key: desc.ID, ID: desc.ID, Person: desc.Person}
	default:
		return nil
	}

	if ped != nil {
		attachAncestors(root, ped)
		root.HasMoreAncestors = ped.HasMoreAncestors
	}
	if desc != nil {
		attachDescendants(root, desc)
		root.HasMoreDescendants = desc.HasMoreDescendants
	}
	return root
}

// attachAncestors grafts ped's parent branches onto node, deriving
// occurrence keys by path ("F" father step, "M" mother step).
func attachAncestors(node *TreeLayoutNode, ped *PedigreeNode) {
	if ped.Father != nil {
		node.Father = ancestorNode(node.Key+".F", ped.Father)
	}
	if ped.Mother != nil {
		node.Mother = ancestorNode(node.Key+".M", ped.Mother)
	}
}

func ancestorNode(key string, ped *PedigreeNode) *TreeLayoutNode {
	n := &TreeLayoutNode{
		Key:              key,
		ID:               ped.ID,
		Person:           ped.Person,
		Generation:       ped.Generation,
		HasMoreAncestors: ped.HasMoreAncestors,
	}
	attachAncestors(n, ped)
	return n
}

// attachDescendants grafts desc's spouse, marriage and child branches onto
// node, sign-flipping generations ("C0", "C1", ... child steps).
func attachDescendants(node *TreeLayoutNode, desc *DescendantNode) {
	node.Spouse = desc.Spouse
	node.MarriageYear = desc.MarriageYear
	for i, child := range desc.Children {
		node.Children = append(node.Children, descendantNode(node.Key+".C"+strconv.Itoa(i), child))
	}
}

func descendantNode(key string, desc *DescendantNode) *TreeLayoutNode {
	n := &TreeLayoutNode{
		Key:                key,
		ID:                 desc.ID,
		Person:             desc.Person,
		Generation:         -desc.Generation,
		HasMoreDescendants: desc.HasMoreDescendants,
	}
	attachDescendants(n, desc)
	return n
}

// SpliceAncestors replaces the parent branches of the node with the given
// occurrence key by the freshly built subtree's branches. The subtree's
// generations are re-based onto the spliced node's generation. Returns false
// when no node in the tree carries the key.
func SpliceAncestors(root *TreeLayoutNode, key string, sub *PedigreeNode) bool {
	node := findByKey(root, key)
	if node == nil || sub == nil {
		return false
	}
	rebaseAncestors(sub, node.Generation)
	node.Father = nil
	node.Mother = nil
	attachAncestors(node, sub)
	node.HasMoreAncestors = false
	if node.Father == nil && node.Mother == nil {
		node.HasMoreAncestors = sub.HasMoreAncestors
	}
	return true
}

// SpliceDescendants replaces the child branches (and spouse info) of the
// node with the given occurrence key.
func SpliceDescendants(root *TreeLayoutNode, key string, sub *DescendantNode) bool {
	node := findByKey(root, key)
	if node == nil || sub == nil {
		return false
	}
	rebaseDescendants(sub, -node.Generation)
	node.Children = nil
	attachDescendants(node, sub)
	node.HasMoreDescendants = false
	if len(node.Children) == 0 {
		node.HasMoreDescendants = sub.HasMoreDescendants
	}
	return true
}

func rebaseAncestors(n *PedigreeNode, base int) {
	n.Generation += base
	if n.Father != nil {
		rebaseAncestors(n.Father, base)
	}
	if n.Mother != nil {
		rebaseAncestors(n.Mother, base)
	}
}

func rebaseDescendants(n *DescendantNode, base int) {
	n.Generation += base
	for _, c := range n.Children {
		rebaseDescendants(c, base)
	}
}

func findByKey(n *TreeLayoutNode, key string) *TreeLayoutNode {
	if n == nil {
		return nil
	}
	if n.Key == key {
		return n
	}
	if found := findByKey(n.Father, key); found != nil {
		return found
	}
	if found := findByKey(n.Mother, key); found != nil {
		return found
	}
	for _, c := range n.Children {
		if found := findByKey(c, key); found != nil {
			return found
		}
	}
	return nil
}
