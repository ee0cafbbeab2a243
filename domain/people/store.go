package people

import "context"

// Store is the synchronous batch-fetch-by-key interface over the backing
// relational store. Every method takes a key batch and returns a map keyed by
// the input keys; missing keys are simply absent from the result, never an
// error. A failed fetch aborts the whole traversal upstream; partial trees
// are misleading.
type Store interface {
	// PeopleByIDs fetches people records.
	PeopleByIDs(ctx context.Context, ids []string) (map[string]*Person, error)

	// FamiliesByIDs fetches family records.
	FamiliesByIDs(ctx context.Context, ids []string) (map[string]*Family, error)

	// ChildrenByFamilyIDs fetches ordered child-id lists per family.
	ChildrenByFamilyIDs(ctx context.Context, familyIDs []string) (map[string][]string, error)

	// FamilyWithChild resolves the (at most one) family where each person is
	// listed as a child.
	FamilyWithChild(ctx context.Context, personIDs []string) (map[string]*Family, error)

	// FamiliesWithSpouse resolves all families where each person is recorded
	// as husband or wife, in store order.
	FamiliesWithSpouse(ctx context.Context, personIDs []string) (map[string][]*Family, error)
}
