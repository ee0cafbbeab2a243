// Package testutil provides an in-memory people.Store for domain tests.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/kingraph-app/kingraph/domain/people"
)

// MemStore is an in-memory implementation of people.Store. It counts batch
// fetches so tests can assert loader dedupe and cache idempotence, and can be
// told to fail to simulate an unavailable store.
type MemStore struct {
	mu       sync.Mutex
	people   map[string]*people.Person
	families map[string]*people.Family
	children map[string][]string

	fetches int
	failErr error
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		people:   make(map[string]*people.Person),
		families: make(map[string]*people.Family),
		children: make(map[string][]string),
	}
}

// Person builds a minimal person record for seeding.
func Person(id string) *people.Person {
	return &people.Person{
		ID:             id,
		GivenNames:     id,
		Sex:            "U",
		BirthAccuracy:  people.AccuracyUnknown,
		DeathAccuracy:  people.AccuracyUnknown,
		ResearchStatus: people.ResearchNotStarted,
	}
}

// AddPerson stores a person record.
func (s *MemStore) AddPerson(p *people.Person) *people.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people[p.ID] = p
	return p
}

// AddFamily stores a family with the given spouses (empty string for absent)
// and ordered children. Person records must be added separately.
func (s *MemStore) AddFamily(id, husband, wife string, children ...string) *people.Family {
	f := &people.Family{ID: id}
	if husband != "" {
		f.HusbandID = &husband
	}
	if wife != "" {
		f.WifeID = &wife
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[id] = f
	s.children[id] = children
	return f
}

// SetMarriageYear sets the marriage year of an existing family.
func (s *MemStore) SetMarriageYear(familyID string, year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families[familyID].MarriageYear = &year
}

// Fetches returns the number of batch fetches served so far.
func (s *MemStore) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// Fail makes every subsequent fetch return the given error.
func (s *MemStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

func (s *MemStore) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.fetches++
	return nil
}

func (s *MemStore) PeopleByIDs(ctx context.Context, ids []string) (map[string]*people.Person, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]*people.Person)
	for _, id := range ids {
		if p, ok := s.people[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (s *MemStore) FamiliesByIDs(ctx context.Context, ids []string) (map[string]*people.Family, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]*people.Family)
	for _, id := range ids {
		if f, ok := s.families[id]; ok {
			result[id] = f
		}
	}
	return result, nil
}

func (s *MemStore) ChildrenByFamilyIDs(ctx context.Context, familyIDs []string) (map[string][]string, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]string)
	for _, id := range familyIDs {
		if kids, ok := s.children[id]; ok {
			result[id] = append([]string(nil), kids...)
		}
	}
	return result, nil
}

func (s *MemStore) FamilyWithChild(ctx context.Context, personIDs []string) (map[string]*people.Family, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]*people.Family)
	for _, personID := range personIDs {
		for famID, kids := range s.children {
			for _, kid := range kids {
				if kid == personID {
					result[personID] = s.families[famID]
				}
			}
		}
	}
	return result, nil
}

func (s *MemStore) FamiliesWithSpouse(ctx context.Context, personIDs []string) (map[string][]*people.Family, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stable store order: family id ascending.
	famIDs := make([]string, 0, len(s.families))
	for id := range s.families {
		famIDs = append(famIDs, id)
	}
	sort.Strings(famIDs)

	result := make(map[string][]*people.Family)
	for _, personID := range personIDs {
		for _, famID := range famIDs {
			f := s.families[famID]
			if (f.HusbandID != nil && *f.HusbandID == personID) ||
				(f.WifeID != nil && *f.WifeID == personID) {
				result[personID] = append(result[personID], f)
			}
		}
	}
	return result, nil
}
