package people_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/internal/testutil"
)

func TestLoaderDedupesKeysWithinCall(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddPerson(testutil.Person("p1"))
	store.AddPerson(testutil.Person("p2"))

	loader := people.NewLoader(store)

	got, err := loader.People(context.Background(), []string{"p1", "p2", "p1", "p1"})
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, 1, store.Fetches())
}

func TestLoaderCachesAcrossCalls(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddPerson(testutil.Person("p1"))
	store.AddPerson(testutil.Person("p2"))
	store.AddPerson(testutil.Person("p3"))

	loader := people.NewLoader(store)
	ctx := context.Background()

	_, err := loader.People(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	require.Equal(t, 1, store.Fetches())

	// p1/p2 are cached; only p3 hits the store.
	got, err := loader.People(ctx, []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 2, store.Fetches())

	// Fully warm: no fetch at all.
	_, err = loader.People(ctx, []string{"p3", "p1"})
	require.NoError(t, err)
	assert.Equal(t, 2, store.Fetches())
}

func TestLoaderMissingIDsAreAbsentNotErrors(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddPerson(testutil.Person("p1"))

	loader := people.NewLoader(store)

	got, err := loader.People(context.Background(), []string{"p1", "ghost"})
	require.NoError(t, err)

	assert.Contains(t, got, "p1")
	assert.NotContains(t, got, "ghost")

	p, err := loader.Person(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestLoaderCoalescesConcurrentCallers(t *testing.T) {
	store := testutil.NewMemStore()
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		store.AddPerson(testutil.Person(id))
	}

	loader := people.NewLoader(store)
	ctx := context.Background()

	// Warm one key so goroutines mix cached, in-flight and fresh keys.
	_, err := loader.People(ctx, []string{"p1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := loader.People(ctx, []string{"p1", "p2", "p3", "p4"})
			assert.NoError(t, err)
			assert.Len(t, got, 4)
		}()
	}
	wg.Wait()

	// Every key fetched at most once, however the goroutines interleaved.
	assert.LessOrEqual(t, store.Fetches(), 1+3)
}

func TestLoaderPropagatesStoreFailure(t *testing.T) {
	store := testutil.NewMemStore()
	boom := errors.New("connection refused")
	store.Fail(boom)

	loader := people.NewLoader(store)

	_, err := loader.People(context.Background(), []string{"p1"})
	assert.ErrorIs(t, err, boom)
}

func TestLoaderSeparateCachesPerKind(t *testing.T) {
	store := testutil.NewMemStore()
	store.AddPerson(testutil.Person("p1"))
	store.AddFamily("f1", "", "", "p1")

	loader := people.NewLoader(store)
	ctx := context.Background()

	fams, err := loader.FamilyWhereChild(ctx, []string{"p1"})
	require.NoError(t, err)
	require.NotNil(t, fams["p1"])
	assert.Equal(t, "f1", fams["p1"].ID)

	kids, err := loader.ChildrenOf(ctx, []string{"f1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, kids["f1"])
}
