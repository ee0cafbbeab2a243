package tree

import (
	"context"

	"github.com/kingraph-app/kingraph/domain/people"
)

// BuildPedigree constructs a bounded ancestor tree for rootID. A missing
// root resolves to nil, not an error. The walk proceeds one generation at a
// time so each level's parent lookups collapse into single batch fetches.
//
// HasMoreAncestors is a frontier flag: it is set only on nodes at the depth
// bound that still have a recorded parent edge. A node whose parents are
// rendered always reports false.
func BuildPedigree(ctx context.Context, loader *people.Loader, rootID string, maxGenerations int) (*PedigreeNode, error) {
	person, err := loader.Person(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}

	root := &PedigreeNode{ID: rootID, Person: person, Generation: 0}
	frontier := []*PedigreeNode{root}

	for gen := 0; gen < maxGenerations && len(frontier) > 0; gen++ {
		parentFamilies, err := loader.FamilyWhereChild(ctx, nodeIDs(frontier))
		if err != nil {
			return nil, err
		}

		var parentIDs []string
		for _, n := range frontier {
			if fam := parentFamilies[n.ID]; fam != nil {
				parentIDs = append(parentIDs, fam.ParentIDs()...)
			}
		}
		parents, err := loader.People(ctx, parentIDs)
		if err != nil {
			return nil, err
		}

		var next []*PedigreeNode
		for _, n := range frontier {
			fam := parentFamilies[n.ID]
			if fam == nil {
				continue
			}
			// A recorded parent id whose person row is gone is skipped,
			// same as an absent parent.
			if fam.HusbandID != nil {
				if p := parents[*fam.HusbandID]; p != nil {
					n.Father = &PedigreeNode{ID: p.ID, Person: p, Generation: gen + 1}
					next = append(next, n.Father)
				}
			}
			if fam.WifeID != nil {
				if p := parents[*fam.WifeID]; p != nil {
					n.Mother = &PedigreeNode{ID: p.ID, Person: p, Generation: gen + 1}
					next = append(next, n.Mother)
				}
			}
		}
		frontier = next
	}

	// Nodes still on the frontier sit at the depth bound; flag the ones
	// with a parent edge beyond it.
	if len(frontier) > 0 {
		parentFamilies, err := loader.FamilyWhereChild(ctx, nodeIDs(frontier))
		if err != nil {
			return nil, err
		}
		for _, n := range frontier {
			if fam := parentFamilies[n.ID]; fam != nil && fam.HasParent() {
				n.HasMoreAncestors = true
			}
		}
	}

	return root, nil
}

func nodeIDs(nodes []*PedigreeNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
