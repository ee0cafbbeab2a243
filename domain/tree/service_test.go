package tree_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingraph-app/kingraph/domain/tree"
	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/internal/testutil"
	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/rescache"
)

func newTreeService(s *testutil.MemStore) (*tree.Service, *rescache.Memory) {
	cache := rescache.New()
	cfg := &config.Config{
		Tree: config.TreeConfig{
			DefaultGenerations:           3,
			MaxGenerations:               10,
			NotableAncestorGenerations:   15,
			NotableDescendantGenerations: 6,
		},
		Layout: layoutConfig(),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return tree.NewService(s, cache, log, cfg), cache
}

func TestServiceAncestorsCacheIdempotence(t *testing.T) {
	s := threeGenStore()
	svc, cache := newTreeService(s)
	ctx := context.Background()

	first, err := svc.Ancestors(ctx, "p1", nil)
	require.NoError(t, err)
	require.NotNil(t, first)
	cold := s.Fetches()

	second, err := svc.Ancestors(ctx, "p1", nil)
	require.NoError(t, err)
	assert.Equal(t, cold, s.Fetches(), "warm cache issues no store fetches")
	assert.Same(t, first, second)

	cache.Clear()
	_, err = svc.Ancestors(ctx, "p1", nil)
	require.NoError(t, err)
	assert.Greater(t, s.Fetches(), cold, "cleared cache refetches")
}

func TestServiceCacheKeyedByGenerations(t *testing.T) {
	s := threeGenStore()
	svc, _ := newTreeService(s)
	ctx := context.Background()

	one := 1
	two := 2
	shallow, err := svc.Ancestors(ctx, "p1", &one)
	require.NoError(t, err)
	deep, err := svc.Ancestors(ctx, "p1", &two)
	require.NoError(t, err)

	assert.Nil(t, shallow.Father.Father)
	assert.NotNil(t, deep.Father.Father)
}

func TestServiceGenerationsClamp(t *testing.T) {
	svc, _ := newTreeService(threeGenStore())

	huge := 500
	node, err := svc.Ancestors(context.Background(), "p1", &huge)
	require.NoError(t, err)
	require.NotNil(t, node)

	maxGen := 0
	var walk func(n *tree.PedigreeNode)
	walk = func(n *tree.PedigreeNode) {
		if n == nil {
			return
		}
		if n.Generation > maxGen {
			maxGen = n.Generation
		}
		walk(n.Father)
		walk(n.Mother)
	}
	walk(node)
	assert.LessOrEqual(t, maxGen, 10)
}

func TestServiceMissingPersonNotCached(t *testing.T) {
	svc, cache := newTreeService(threeGenStore())

	node, err := svc.Ancestors(context.Background(), "ghost", nil)
	require.NoError(t, err)
	assert.Nil(t, node)
	assert.Zero(t, cache.Len())
}

func TestServiceInvalidatePerson(t *testing.T) {
	s := threeGenStore()
	svc, cache := newTreeService(s)
	ctx := context.Background()

	_, err := svc.Ancestors(ctx, "p1", nil)
	require.NoError(t, err)
	_, err = svc.Ancestors(ctx, "p2", nil)
	require.NoError(t, err)
	_, err = svc.NotableRelatives(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 3, cache.Len())

	svc.InvalidatePerson("p1")

	// p1's shapes and every notable scan are gone, p2's pedigree stays.
	assert.Equal(t, 1, cache.Len())
	warm := s.Fetches()
	_, err = svc.Ancestors(ctx, "p2", nil)
	require.NoError(t, err)
	assert.Equal(t, warm, s.Fetches())
}

func TestServiceNotableRelativesCached(t *testing.T) {
	s := collateralStore()
	svc, _ := newTreeService(s)
	ctx := context.Background()

	first, err := svc.NotableRelatives(ctx, "r")
	require.NoError(t, err)
	require.NotEmpty(t, first)
	warm := s.Fetches()

	_, err = svc.NotableRelatives(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, warm, s.Fetches())
}

func TestServiceLayout(t *testing.T) {
	s := testutil.NewMemStore()
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "s1", "c1"} {
		s.AddPerson(testutil.Person(id))
	}
	s.AddFamily("f1", "p2", "p3", "p1")
	s.AddFamily("f2", "p4", "p5", "p2")
	s.AddFamily("d1", "p1", "s1", "c1")
	svc, _ := newTreeService(s)

	one := 1
	res, err := svc.Layout(context.Background(), tree.LayoutRequest{
		RootID:                "p1",
		AncestorGenerations:   &one,
		DescendantGenerations: &one,
	})
	require.NoError(t, err)

	for _, key := range []string{"p1", "p1.F", "p1.M", "p1.S", "p1.C0"} {
		assert.Contains(t, res.Positions, key)
	}
	assert.NotContains(t, res.Positions, "p1.F.F", "father's ancestors are beyond the requested bound")
}

func TestServiceLayoutExpansion(t *testing.T) {
	s := testutil.NewMemStore()
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		s.AddPerson(testutil.Person(id))
	}
	s.AddFamily("f1", "p2", "p3", "p1")
	s.AddFamily("f2", "p4", "p5", "p2")
	svc, _ := newTreeService(s)

	one := 1
	res, err := svc.Layout(context.Background(), tree.LayoutRequest{
		RootID:              "p1",
		AncestorGenerations: &one,
		Expand: []tree.Expansion{
			{Key: "p1.F", Direction: "ancestors", Generations: &one},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Positions, "p1.F.F")
	assert.Contains(t, res.Positions, "p1.F.M")
	// Spliced grandparents sit one level above the father.
	assert.Equal(t, 2.0*(50+30), res.Positions["p1.F.F"].Y)
}

func TestServiceLayoutCrossDirectionExpansionRejected(t *testing.T) {
	// p1's uncles live below p1.F, but an ancestor-side occurrence only
	// grows upward; expanding its descendants must fail instead of leaving
	// unpositioned nodes piled at the origin.
	s := testutil.NewMemStore()
	for _, id := range []string{"p1", "u1", "u2", "p2", "p3", "s1", "c1"} {
		s.AddPerson(testutil.Person(id))
	}
	s.AddFamily("f1", "p2", "p3", "p1", "u1", "u2")
	s.AddFamily("d1", "p1", "s1", "c1")
	svc, _ := newTreeService(s)
	ctx := context.Background()

	one := 1
	_, err := svc.Layout(ctx, tree.LayoutRequest{
		RootID:              "p1",
		AncestorGenerations: &one,
		Expand:              []tree.Expansion{{Key: "p1.F", Direction: "descendants", Generations: &one}},
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)

	_, err = svc.Layout(ctx, tree.LayoutRequest{
		RootID:                "p1",
		DescendantGenerations: &one,
		Expand:                []tree.Expansion{{Key: "p1.C0", Direction: "ancestors", Generations: &one}},
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestServiceLayoutUnknownExpansionKey(t *testing.T) {
	svc, _ := newTreeService(threeGenStore())

	one := 1
	_, err := svc.Layout(context.Background(), tree.LayoutRequest{
		RootID:              "p1",
		AncestorGenerations: &one,
		Expand:              []tree.Expansion{{Key: "nope", Direction: "ancestors"}},
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestServiceLayoutSiblingsExcludeRendered(t *testing.T) {
	// sib2 is already rendered as a child of the root's parents when the
	// ancestor side is expanded... here it is not rendered, so both
	// siblings appear; c1 is in the tree and must not reappear.
	s := testutil.NewMemStore()
	for _, id := range []string{"p1", "p2", "p3", "sib1", "c1", "s1"} {
		s.AddPerson(testutil.Person(id))
	}
	s.AddFamily("f1", "p2", "p3", "p1", "sib1", "c1")
	s.AddFamily("d1", "p1", "s1", "c1")
	svc, _ := newTreeService(s)

	one := 1
	res, err := svc.Layout(context.Background(), tree.LayoutRequest{
		RootID:                "p1",
		DescendantGenerations: &one,
		AncestorGenerations:   new(int),
		Siblings:              []string{"p1"},
	})
	require.NoError(t, err)

	require.Len(t, res.Panels, 1)
	ids := []string{}
	for _, sib := range res.Panels[0].Siblings {
		ids = append(ids, sib.Person.ID)
	}
	assert.Equal(t, []string{"sib1"}, ids, "c1 already renders as a child of the root")
}

func TestServiceLayoutMissingRoot(t *testing.T) {
	svc, _ := newTreeService(threeGenStore())

	_, err := svc.Layout(context.Background(), tree.LayoutRequest{RootID: "ghost"})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}
