package tree

import (
	"context"

	"github.com/kingraph-app/kingraph/domain/people"
)

// BuildDescendants constructs a bounded descendant tree for rootID. A
// missing root resolves to nil. When a person parented more than one family,
// only the first family in store order is rendered; remarriages are out of
// scope for now (see DESIGN.md).
//
// HasMoreDescendants mirrors the pedigree frontier flag: set only on nodes
// at the depth bound whose family has at least one child.
func BuildDescendants(ctx context.Context, loader *people.Loader, rootID string, maxGenerations int) (*DescendantNode, error) {
	person, err := loader.Person(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}

	root := &DescendantNode{ID: rootID, Person: person, Generation: 0, Children: []*DescendantNode{}}
	frontier := []*DescendantNode{root}

	for gen := 0; gen <= maxGenerations && len(frontier) > 0; gen++ {
		families, err := firstFamilies(ctx, loader, frontier)
		if err != nil {
			return nil, err
		}

		var familyIDs []string
		for _, fam := range families {
			familyIDs = append(familyIDs, fam.ID)
		}
		childIDs, err := loader.ChildrenOf(ctx, familyIDs)
		if err != nil {
			return nil, err
		}

		// Spouses resolve at every level; children only below the bound.
		var personIDs []string
		for _, n := range frontier {
			fam := families[n.ID]
			if fam == nil {
				continue
			}
			if other := fam.OtherSpouse(n.ID); other != nil {
				personIDs = append(personIDs, *other)
			}
			if gen < maxGenerations {
				personIDs = append(personIDs, childIDs[fam.ID]...)
			}
		}
		persons, err := loader.People(ctx, personIDs)
		if err != nil {
			return nil, err
		}

		var next []*DescendantNode
		for _, n := range frontier {
			fam := families[n.ID]
			if fam == nil {
				continue
			}
			if other := fam.OtherSpouse(n.ID); other != nil {
				n.Spouse = persons[*other]
			}
			n.MarriageYear = fam.MarriageYear

			if gen == maxGenerations {
				n.HasMoreDescendants = len(childIDs[fam.ID]) > 0
				continue
			}
			for _, childID := range childIDs[fam.ID] {
				p := persons[childID]
				if p == nil {
					continue
				}
				child := &DescendantNode{ID: childID, Person: p, Generation: gen + 1, Children: []*DescendantNode{}}
				n.Children = append(n.Children, child)
				next = append(next, child)
			}
		}
		frontier = next
	}

	return root, nil
}

// firstFamilies resolves, per frontier node, the first store-order family
// in which the node's person is a spouse.
func firstFamilies(ctx context.Context, loader *people.Loader, frontier []*DescendantNode) (map[string]*people.Family, error) {
	ids := make([]string, len(frontier))
	for i, n := range frontier {
		ids[i] = n.ID
	}
	byPerson, err := loader.FamiliesWhereSpouse(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*people.Family, len(byPerson))
	for personID, fams := range byPerson {
		if len(fams) > 0 {
			out[personID] = fams[0]
		}
	}
	return out, nil
}
