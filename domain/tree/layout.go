package tree

import (
	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/internal/config"
)

// Point is a node position in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SiblingGroup is the input for one on-demand sibling overlay: the
// occurrence key of the node (root or spouse slot) the panel hangs off,
// and the sibling persons to stack, already filtered by the caller.
type SiblingGroup struct {
	ForKey   string
	Siblings []*people.Person
}

// SiblingPanel is a positioned overlay of siblings stacked vertically next
// to a node, on the side not occupied by a spouse.
type SiblingPanel struct {
	ForKey   string           `json:"forKey"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Siblings []PositionedNode `json:"siblings"`
}

// PositionedNode is a person with computed overlay coordinates.
type PositionedNode struct {
	Person *people.Person `json:"person"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
}

// LayoutResult carries coordinates for every node occurrence. Positions maps
// occurrence keys to points; a rendered spouse is keyed "<key>.S".
type LayoutResult struct {
	Root      *TreeLayoutNode  `json:"root"`
	Positions map[string]Point `json:"positions"`
	Panels    []SiblingPanel   `json:"panels,omitempty"`
}

// Layout computes x/y for every node of a merged tree. It is a pure
// in-memory pass: no I/O, no mutation of person records.
//
// Vertical: y = generation * (nodeHeight + levelGap); ancestor generations
// are positive, descendant generations negative, the renderer flips as it
// sees fit. Horizontal: each side is laid out independently bottom-up
// (leaves left-to-right at a fixed step, interior nodes centered over what
// they connect to), then the ancestor side is shifted so both sides agree
// on the root's x.
func Layout(root *TreeLayoutNode, siblings []SiblingGroup, cfg config.LayoutConfig) *LayoutResult {
	res := &LayoutResult{Root: root, Positions: map[string]Point{}}
	if root == nil {
		return res
	}

	e := &layoutEngine{cfg: cfg}

	e.nextX = 0
	e.layoutAncestors(root)
	rootXUp := root.X

	e.nextX = 0
	e.layoutDescendants(root)

	// Both passes assigned the root an x; keep the descendant one and pull
	// the ancestor subtree over by the difference.
	shift := root.X - rootXUp
	shiftAncestors(root.Father, shift)
	shiftAncestors(root.Mother, shift)

	levelHeight := cfg.NodeHeight + cfg.LevelGap
	e.collect(root, res, levelHeight)

	for _, group := range siblings {
		if panel := e.panel(root, group); panel != nil {
			res.Panels = append(res.Panels, *panel)
		}
	}
	return res
}

type layoutEngine struct {
	cfg   config.LayoutConfig
	nextX float64
}

// layoutAncestors assigns x bottom-up: parentless nodes take the next free
// slot left-to-right, father branch before mother, and an interior node
// lands on the midpoint of its rendered parents.
func (e *layoutEngine) layoutAncestors(n *TreeLayoutNode) {
	if n.Father == nil && n.Mother == nil {
		n.X = e.nextX
		e.nextX += e.cfg.NodeWidth + e.cfg.HGap
		return
	}
	if n.Father != nil {
		e.layoutAncestors(n.Father)
	}
	if n.Mother != nil {
		e.layoutAncestors(n.Mother)
	}
	switch {
	case n.Father != nil && n.Mother != nil:
		n.X = (n.Father.X + n.Mother.X) / 2
	case n.Father != nil:
		n.X = n.Father.X
	default:
		n.X = n.Mother.X
	}
}

// pairWidth is the horizontal footprint of a node plus its rendered spouse.
func (e *layoutEngine) pairWidth(n *TreeLayoutNode) float64 {
	if n.Spouse != nil {
		return 2*e.cfg.NodeWidth + e.cfg.SpouseGap
	}
	return e.cfg.NodeWidth
}

// layoutDescendants assigns x bottom-up: childless nodes take the next free
// slot sized to their pair width, and an interior node is placed so that
// its person+spouse pair centers over its children's bounding interval.
func (e *layoutEngine) layoutDescendants(n *TreeLayoutNode) {
	if len(n.Children) == 0 {
		n.X = e.nextX
		e.nextX += e.pairWidth(n) + e.cfg.HGap
		return
	}
	for _, c := range n.Children {
		e.layoutDescendants(c)
	}
	first := n.Children[0]
	last := n.Children[len(n.Children)-1]
	center := (first.X + last.X + e.pairWidth(last)) / 2
	n.X = center - e.pairWidth(n)/2
}

func shiftAncestors(n *TreeLayoutNode, dx float64) {
	if n == nil {
		return
	}
	n.X += dx
	shiftAncestors(n.Father, dx)
	shiftAncestors(n.Mother, dx)
}

// collect stamps y from the generation and records every occurrence,
// spouses included, into the result map.
func (e *layoutEngine) collect(n *TreeLayoutNode, res *LayoutResult, levelHeight float64) {
	if n == nil {
		return
	}
	n.Y = float64(n.Generation) * levelHeight
	res.Positions[n.Key] = Point{X: n.X, Y: n.Y}
	if n.Spouse != nil {
		res.Positions[n.Key+".S"] = Point{X: n.X + e.cfg.NodeWidth + e.cfg.SpouseGap, Y: n.Y}
	}
	e.collect(n.Father, res, levelHeight)
	e.collect(n.Mother, res, levelHeight)
	for _, c := range n.Children {
		e.collect(c, res, levelHeight)
	}
}

// panel positions one sibling overlay next to its anchor node. The stack
// goes on the left when a spouse occupies the right side, otherwise on the
// right, so it never covers a live branch.
func (e *layoutEngine) panel(root *TreeLayoutNode, group SiblingGroup) *SiblingPanel {
	anchor := findByKey(root, group.ForKey)
	if anchor == nil || len(group.Siblings) == 0 {
		return nil
	}

	var x float64
	if anchor.Spouse != nil {
		x = anchor.X - e.cfg.HGap - e.cfg.NodeWidth
	} else {
		x = anchor.X + e.cfg.NodeWidth + e.cfg.HGap
	}

	panel := &SiblingPanel{ForKey: group.ForKey, X: x, Y: anchor.Y}
	for i, p := range group.Siblings {
		panel.Siblings = append(panel.Siblings, PositionedNode{
			Person: p,
			X:      x,
			Y:      anchor.Y + float64(i)*(e.cfg.NodeHeight+e.cfg.SiblingGap),
		})
	}
	return panel
}
