package tree

import (
	"context"
	"sort"

	"github.com/kingraph-app/kingraph/domain/people"
)

// candidate tags a person id with the generation of the ancestor whose line
// reached it. Sibling lines inherit their ancestor's generation, not their
// own depth.
type candidate struct {
	id  string
	gen int
}

// FindNotableRelatives scans collateral lines for notable people: ancestors
// up to ancestorBound generations, every sibling of every ancestor (sharing
// at least one parent, so half-siblings count), those siblings' descendants
// down to descendantBound generations, plus spouses along the sibling lines.
// Unlike the bounded builders this traversal has unbounded width, so it
// carries a visited set as its cycle guard.
func FindNotableRelatives(ctx context.Context, loader *people.Loader, rootID string, ancestorBound, descendantBound int) ([]NotableRelative, error) {
	root, err := loader.Person(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	ancestors, err := collectAncestors(ctx, loader, rootID, ancestorBound)
	if err != nil {
		return nil, err
	}

	// Generation per candidate id; first (closest) line wins on re-entry.
	found := make(map[string]int, len(ancestors))
	for _, a := range ancestors {
		if _, ok := found[a.id]; !ok {
			found[a.id] = a.gen
		}
	}

	siblings, err := collectSiblings(ctx, loader, ancestors, found)
	if err != nil {
		return nil, err
	}

	if err := collectSiblingLines(ctx, loader, siblings, found, descendantBound); err != nil {
		return nil, err
	}

	delete(found, rootID)

	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	persons, err := loader.People(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]NotableRelative, 0)
	for id, gen := range found {
		p := persons[id]
		if p != nil && p.IsNotable {
			results = append(results, NotableRelative{Person: p, Generation: gen})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Generation != results[j].Generation {
			return results[i].Generation < results[j].Generation
		}
		return results[i].Person.ID < results[j].Person.ID
	})
	return results, nil
}

// collectAncestors walks parent edges breadth-first up to bound generations
// and returns every ancestor occurrence's id and generation, root included.
func collectAncestors(ctx context.Context, loader *people.Loader, rootID string, bound int) ([]candidate, error) {
	all := []candidate{{id: rootID, gen: 0}}
	visited := map[string]bool{rootID: true}
	frontier := []string{rootID}

	for gen := 0; gen < bound && len(frontier) > 0; gen++ {
		parentFamilies, err := loader.FamilyWhereChild(ctx, frontier)
		if err != nil {
			return nil, err
		}
		var next []string
		for _, id := range frontier {
			fam := parentFamilies[id]
			if fam == nil {
				continue
			}
			for _, parentID := range fam.ParentIDs() {
				if visited[parentID] {
					continue
				}
				visited[parentID] = true
				all = append(all, candidate{id: parentID, gen: gen + 1})
				next = append(next, parentID)
			}
		}
		frontier = next
	}
	return all, nil
}

// collectSiblings finds, per ancestor, every other child of every family
// parented by either of the ancestor's parents. The siblings are added to
// found at the ancestor's generation and returned for the descendant walk.
func collectSiblings(ctx context.Context, loader *people.Loader, ancestors []candidate, found map[string]int) ([]candidate, error) {
	ancestorIDs := make([]string, len(ancestors))
	for i, a := range ancestors {
		ancestorIDs[i] = a.id
	}
	parentFamilies, err := loader.FamilyWhereChild(ctx, ancestorIDs)
	if err != nil {
		return nil, err
	}

	var parentIDs []string
	for _, fam := range parentFamilies {
		parentIDs = append(parentIDs, fam.ParentIDs()...)
	}
	familiesByParent, err := loader.FamiliesWhereSpouse(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	var familyIDs []string
	for _, fams := range familiesByParent {
		for _, fam := range fams {
			familyIDs = append(familyIDs, fam.ID)
		}
	}
	childIDs, err := loader.ChildrenOf(ctx, familyIDs)
	if err != nil {
		return nil, err
	}

	var siblings []candidate
	for _, a := range ancestors {
		fam := parentFamilies[a.id]
		if fam == nil {
			continue
		}
		for _, parentID := range fam.ParentIDs() {
			for _, parentFam := range familiesByParent[parentID] {
				for _, childID := range childIDs[parentFam.ID] {
					if childID == a.id {
						continue
					}
					if _, ok := found[childID]; ok {
						continue
					}
					found[childID] = a.gen
					siblings = append(siblings, candidate{id: childID, gen: a.gen})
				}
			}
		}
	}
	return siblings, nil
}

// collectSiblingLines walks each sibling's descendants down to bound
// generations, adding descendants and the spouses met along the way, all at
// the originating ancestor's generation.
func collectSiblingLines(ctx context.Context, loader *people.Loader, siblings []candidate, found map[string]int, bound int) error {
	frontier := siblings

	for depth := 0; depth <= bound && len(frontier) > 0; depth++ {
		ids := make([]string, len(frontier))
		for i, c := range frontier {
			ids[i] = c.id
		}
		familiesByPerson, err := loader.FamiliesWhereSpouse(ctx, ids)
		if err != nil {
			return err
		}

		var familyIDs []string
		for _, fams := range familiesByPerson {
			for _, fam := range fams {
				familyIDs = append(familyIDs, fam.ID)
			}
		}
		childIDs, err := loader.ChildrenOf(ctx, familyIDs)
		if err != nil {
			return err
		}

		var next []candidate
		for _, c := range frontier {
			for _, fam := range familiesByPerson[c.id] {
				if spouse := fam.OtherSpouse(c.id); spouse != nil {
					if _, ok := found[*spouse]; !ok {
						found[*spouse] = c.gen
					}
				}
				if depth == bound {
					continue
				}
				for _, childID := range childIDs[fam.ID] {
					if _, ok := found[childID]; ok {
						continue
					}
					found[childID] = c.gen
					next = append(next, candidate{id: childID, gen: c.gen})
				}
			}
		}
		frontier = next
	}
	return nil
}
