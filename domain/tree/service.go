package tree

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

// Service assembles bounded trees over the people store, caching the
// expensive traversals. Every request gets its own Loader so in-request
// fetches coalesce without leaking state across requests.
type Service struct {
	store  people.Store
	cache  rescache.Cache
	log    *slog.Logger
	tree   config.TreeConfig
	layout config.LayoutConfig
}

// NewService creates a new tree service.
func NewService(store people.Store, cache rescache.Cache, log *slog.Logger, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		log:    log.With(logger.Scope("tree.svc")),
		tree:   cfg.Tree,
		layout: cfg.Layout,
	}
}

// Ancestors returns the bounded pedigree for a person, or nil when the
// person does not exist.
func (s *Service) Ancestors(ctx context.Context, personID string, generations *int) (*PedigreeNode, error) {
	return s.ancestors(ctx, people.NewLoader(s.store), personID, generations)
}

func (s *Service) ancestors(ctx context.Context, loader *people.Loader, personID string, generations *int) (*PedigreeNode, error) {
	gens := s.tree.ClampGenerations(generations)
	key := pedigreeKey(personID, gens)
	if v, ok := s.cache.Get(key); ok {
		return v.(*PedigreeNode), nil
	}

	node, err := BuildPedigree(ctx, loader, personID, gens)
	if err != nil || node == nil {
		return nil, err
	}
	s.cache.Set(key, node)
	return node, nil
}

// Descendants returns the bounded descendant tree for a person, or nil when
// the person does not exist.
func (s *Service) Descendants(ctx context.Context, personID string, generations *int) (*DescendantNode, error) {
	return s.descendants(ctx, people.NewLoader(s.store), personID, generations)
}

func (s *Service) descendants(ctx context.Context, loader *people.Loader, personID string, generations *int) (*DescendantNode, error) {
	gens := s.tree.ClampGenerations(generations)
	key := descendantsKey(personID, gens)
	if v, ok := s.cache.Get(key); ok {
		return v.(*DescendantNode), nil
	}

	node, err := BuildDescendants(ctx, loader, personID, gens)
	if err != nil || node == nil {
		return nil, err
	}
	s.cache.Set(key, node)
	return node, nil
}

// NotableRelatives returns notable people on collateral lines, or nil when
// the person does not exist.
func (s *Service) NotableRelatives(ctx context.Context, personID string) ([]NotableRelative, error) {
	key := notableKey(personID)
	if v, ok := s.cache.Get(key); ok {
		return v.([]NotableRelative), nil
	}

	results, err := FindNotableRelatives(ctx, people.NewLoader(s.store), personID,
		s.tree.NotableAncestorGenerations, s.tree.NotableDescendantGenerations)
	if err != nil || results == nil {
		return nil, err
	}
	s.cache.Set(key, results)
	return results, nil
}

// Expansion asks for one additional bounded subtree hanging off an existing
// node occurrence; it replaces that node's branches in the merged result.
type Expansion struct {
	Key         string `json:"key"`
	Direction   string `json:"direction"`
	Generations *int   `json:"generations,omitempty"`
}

// LayoutRequest describes one full layout computation. The client is the
// source of truth for the expansion set: collapsing a branch just means
// omitting its expansion on the next request.
type LayoutRequest struct {
	RootID                string      `json:"rootId"`
	AncestorGenerations   *int        `json:"ancestorGenerations,omitempty"`
	DescendantGenerations *int        `json:"descendantGenerations,omitempty"`
	Expand                []Expansion `json:"expand,omitempty"`
	Siblings              []string    `json:"siblings,omitempty"`
}

// Layout builds the merged ancestor+descendant tree for the request, splices
// in the requested branch expansions, resolves on-demand sibling overlays
// and computes coordinates for everything.
func (s *Service) Layout(ctx context.Context, req LayoutRequest) (*LayoutResult, error) {
	if req.RootID == "" {
		return nil, apperror.NewBadRequest("rootId is required")
	}

	loader := people.NewLoader(s.store)

	// The two directions touch disjoint edges but share one loader, so
	// overlapping person fetches still coalesce.
	var ped *PedigreeNode
	var desc *DescendantNode
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ped, err = s.ancestors(gctx, loader, req.RootID, req.AncestorGenerations)
		return err
	})
	g.Go(func() error {
		var err error
		desc, err = s.descendants(gctx, loader, req.RootID, req.DescendantGenerations)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	root := MergeTrees(ped, desc)
	if root == nil {
		return nil, apperror.NewNotFound("person", req.RootID)
	}

	for _, exp := range req.Expand {
		if err := s.applyExpansion(ctx, loader, root, exp); err != nil {
			return nil, err
		}
	}

	groups, err := s.siblingGroups(ctx, loader, root, req.Siblings)
	if err != nil {
		return nil, err
	}

	return Layout(root, groups, s.layout), nil
}

func (s *Service) applyExpansion(ctx context.Context, loader *people.Loader, root *TreeLayoutNode, exp Expansion) error {
	node := findByKey(root, exp.Key)
	if node == nil {
		return apperror.NewBadRequest(fmt.Sprintf("unknown tree node key %q", exp.Key))
	}
	gens := s.tree.ClampGenerations(exp.Generations)

	// A node only ever advertises the expansion of its own side: ancestor
	// occurrences grow upward, descendant occurrences downward. The layout
	// passes walk each half in one direction, so a cross-direction splice
	// would attach branches nothing positions. Only the root (generation 0)
	// faces both ways.
	switch exp.Direction {
	case "ancestors":
		if node.Generation < 0 {
			return apperror.NewBadRequest(fmt.Sprintf("node %q is on the descendant side and cannot expand ancestors", exp.Key))
		}
		sub, err := BuildPedigree(ctx, loader, node.ID, gens)
		if err != nil {
			return err
		}
		SpliceAncestors(root, exp.Key, sub)
	case "descendants":
		if node.Generation > 0 {
			return apperror.NewBadRequest(fmt.Sprintf("node %q is on the ancestor side and cannot expand descendants", exp.Key))
		}
		sub, err := BuildDescendants(ctx, loader, node.ID, gens)
		if err != nil {
			return err
		}
		SpliceDescendants(root, exp.Key, sub)
	default:
		return apperror.NewBadRequest(fmt.Sprintf("unknown expansion direction %q", exp.Direction))
	}
	return nil
}

// siblingGroups resolves the sibling overlays toggled by the client. A
// toggle names a person id; the overlay anchors at the node occurrence whose
// person or spouse carries that id. Siblings already rendered elsewhere in
// the tree are dropped so nobody shows up twice.
func (s *Service) siblingGroups(ctx context.Context, loader *people.Loader, root *TreeLayoutNode, toggles []string) ([]SiblingGroup, error) {
	if len(toggles) == 0 {
		return nil, nil
	}

	inTree := map[string]bool{}
	walkTree(root, func(n *TreeLayoutNode) {
		inTree[n.ID] = true
		if n.Spouse != nil {
			inTree[n.Spouse.ID] = true
		}
	})

	var groups []SiblingGroup
	for _, personID := range toggles {
		anchor := findByPersonID(root, personID)
		if anchor == nil {
			continue
		}
		sibs, err := siblingsOf(ctx, loader, personID)
		if err != nil {
			return nil, err
		}
		var kept []*people.Person
		for _, p := range sibs {
			if !inTree[p.ID] {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			groups = append(groups, SiblingGroup{ForKey: anchor.Key, Siblings: kept})
		}
	}
	return groups, nil
}

// siblingsOf finds every other child of every family parented by either of
// the person's parents, covering half-siblings.
func siblingsOf(ctx context.Context, loader *people.Loader, personID string) ([]*people.Person, error) {
	parentFamilies, err := loader.FamilyWhereChild(ctx, []string{personID})
	if err != nil {
		return nil, err
	}
	fam := parentFamilies[personID]
	if fam == nil {
		return nil, nil
	}

	familiesByParent, err := loader.FamiliesWhereSpouse(ctx, fam.ParentIDs())
	if err != nil {
		return nil, err
	}
	var familyIDs []string
	for _, fams := range familiesByParent {
		for _, f := range fams {
			familyIDs = append(familyIDs, f.ID)
		}
	}
	childIDs, err := loader.ChildrenOf(ctx, familyIDs)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{personID: true}
	var ids []string
	for _, famID := range familyIDs {
		for _, childID := range childIDs[famID] {
			if !seen[childID] {
				seen[childID] = true
				ids = append(ids, childID)
			}
		}
	}

	persons, err := loader.People(ctx, ids)
	if err != nil {
		return nil, err
	}
	var out []*people.Person
	for _, id := range ids {
		if p := persons[id]; p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

// InvalidatePerson clears every cached shape a write to this person could
// affect. Collateral scans cannot be keyed back to one person cheaply, so
// all of them go.
func (s *Service) InvalidatePerson(personID string) {
	s.cache.Clear("pedigree:"+personID+":", "descendants:"+personID+":", "notable:")
}

func pedigreeKey(personID string, gens int) string {
	return fmt.Sprintf("pedigree:%s:%d", personID, gens)
}

func descendantsKey(personID string, gens int) string {
	return fmt.Sprintf("descendants:%s:%d", personID, gens)
}

func notableKey(personID string) string {
	return "notable:" + personID
}

func walkTree(n *TreeLayoutNode, visit func(*TreeLayoutNode)) {
	if n == nil {
		return
	}
	visit(n)
	walkTree(n.Father, visit)
	walkTree(n.Mother, visit)
	for _, c := range n.Children {
		walkTree(c, visit)
	}
}

func findByPersonID(n *TreeLayoutNode, personID string) *TreeLayoutNode {
	var found *TreeLayoutNode
	walkTree(n, func(node *TreeLayoutNode) {
		if found != nil {
			return
		}
		if node.ID == personID || (node.Spouse != nil && node.Spouse.ID == personID) {
			found = node
		}
	})
	return found
}
