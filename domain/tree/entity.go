package tree

import (
	"github.com/kingraph-app/kingraph/domain/people"
)

// PedigreeNode is one person occurrence in a bounded ancestor tree.
// Generation 0 is the query root and increases by one per ancestor step.
//
// The builders deliberately do not deduplicate by identity: a pedigree
// collapse (cousin marriage) makes the same person appear on two distinct
// paths, and both occurrences must be rendered.
type PedigreeNode struct {
	ID         string         `json:"id"`
	Person     *people.Person `json:"person"`
	Father     *PedigreeNode  `json:"father,omitempty"`
	Mother     *PedigreeNode  `json:"mother,omitempty"`
	Generation int            `json:"generation"`

	// HasMoreAncestors is true only on frontier nodes: the traversal hit
	// the requested depth and at least one further parent edge exists.
	HasMoreAncestors bool `json:"hasMoreAncestors"`
}

// DescendantNode is one person occurrence in a bounded descendant tree.
// Generation is kept non-negative here and sign-flipped when the tree is
// merged under a layout root.
type DescendantNode struct {
	ID           string            `json:"id"`
	Person       *people.Person    `json:"person"`
	Spouse       *people.Person    `json:"spouse,omitempty"`
	MarriageYear *int              `json:"marriageYear,omitempty"`
	Children     []*DescendantNode `json:"children"`
	Generation   int               `json:"generation"`

	HasMoreDescendants bool `json:"hasMoreDescendants"`
}

// NotableRelative is a notable person reached through a collateral line,
// tagged with the generation of the ancestor whose line it came from.
type NotableRelative struct {
	Person     *people.Person `json:"person"`
	Generation int            `json:"generation"`
}
