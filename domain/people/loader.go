package people

import (
	"context"
	"sync"
)

// Loader is the request-scoped batch loader over a Store. It collapses
// duplicate keys within one request into a single underlying fetch and caches
// results for the lifetime of the request. Concurrent callers asking for the
// same key (father and mother branches of sibling subtrees, for example)
// coalesce onto one in-flight fetch.
//
// A Loader must not outlive its request; it holds no cross-request state.
type Loader struct {
	people         *batchGroup[*Person]
	families       *batchGroup[*Family]
	children       *batchGroup[[]string]
	childFamily    *batchGroup[*Family]
	spouseFamilies *batchGroup[[]*Family]
}

// NewLoader creates a Loader for one request.
func NewLoader(store Store) *Loader {
	return &Loader{
		people:         newBatchGroup(store.PeopleByIDs),
		families:       newBatchGroup(store.FamiliesByIDs),
		children:       newBatchGroup(store.ChildrenByFamilyIDs),
		childFamily:    newBatchGroup(store.FamilyWithChild),
		spouseFamilies: newBatchGroup(store.FamiliesWithSpouse),
	}
}

// People loads person records. Missing ids are absent from the result.
func (l *Loader) People(ctx context.Context, ids []string) (map[string]*Person, error) {
	return l.people.Load(ctx, ids)
}

// Person loads a single person, nil when absent.
func (l *Loader) Person(ctx context.Context, id string) (*Person, error) {
	result, err := l.people.Load(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return result[id], nil
}

// Families loads family records.
func (l *Loader) Families(ctx context.Context, ids []string) (map[string]*Family, error) {
	return l.families.Load(ctx, ids)
}

// ChildrenOf loads ordered child-id lists per family.
func (l *Loader) ChildrenOf(ctx context.Context, familyIDs []string) (map[string][]string, error) {
	return l.children.Load(ctx, familyIDs)
}

// FamilyWhereChild resolves each person's parent family, if any.
func (l *Loader) FamilyWhereChild(ctx context.Context, personIDs []string) (map[string]*Family, error) {
	return l.childFamily.Load(ctx, personIDs)
}

// FamiliesWhereSpouse resolves each person's spouse families, store-ordered.
func (l *Loader) FamiliesWhereSpouse(ctx context.Context, personIDs []string) (map[string][]*Family, error) {
	return l.spouseFamilies.Load(ctx, personIDs)
}

// batchGroup caches fetch results per key and coalesces concurrent requests
// for the same key into one underlying call.
type batchGroup[V any] struct {
	fetch func(context.Context, []string) (map[string]V, error)

	mu      sync.Mutex
	entries map[string]*entry[V]
}

// entry is a settled or in-flight value for one key. done is closed once val
// and err are final.
type entry[V any] struct {
	done chan struct{}
	val  V
	ok   bool
	err  error
}

func newBatchGroup[V any](fetch func(context.Context, []string) (map[string]V, error)) *batchGroup[V] {
	return &batchGroup[V]{
		fetch:   fetch,
		entries: make(map[string]*entry[V]),
	}
}

// Load resolves the given keys, fetching only those not already cached or in
// flight. The returned map contains an entry per key that exists in the store.
func (g *batchGroup[V]) Load(ctx context.Context, keys []string) (map[string]V, error) {
	var missing []string
	var wait []*entry[V]
	waitKeys := make(map[string]*entry[V])

	g.mu.Lock()
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		if e, ok := g.entries[key]; ok {
			wait = append(wait, e)
			waitKeys[key] = e
			continue
		}

		e := &entry[V]{done: make(chan struct{})}
		g.entries[key] = e
		waitKeys[key] = e
		missing = append(missing, key)
	}
	g.mu.Unlock()

	if len(missing) > 0 {
		fetched, err := g.fetch(ctx, missing)
		for _, key := range missing {
			e := waitKeys[key]
			if err != nil {
				e.err = err
			} else if v, ok := fetched[key]; ok {
				e.val = v
				e.ok = true
			}
			close(e.done)
		}
		if err != nil {
			// Drop the poisoned entries so a retry within the same request
			// (unlikely, but cheap) does not observe the failure forever.
			g.mu.Lock()
			for _, key := range missing {
				delete(g.entries, key)
			}
			g.mu.Unlock()
			return nil, err
		}
	}

	// Wait for fetches owned by concurrent callers.
	for _, e := range wait {
		select {
		case <-e.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	result := make(map[string]V, len(waitKeys))
	for key, e := range waitKeys {
		if e.err != nil {
			return nil, e.err
		}
		if e.ok {
			result[key] = e.val
		}
	}
	return result, nil
}
