package people

import (
	"context"
	"sort"

	"github.com/uptrace/bun"

	"github.com/kingraph-app/kingraph/pkg/apperror"
)

// Repository implements Store over Postgres via bun, plus the id-ordered
// listing queries for the people endpoint.
type Repository struct {
	db bun.IDB
}

// NewRepository creates a new people repository.
func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) PeopleByIDs(ctx context.Context, ids []string) (map[string]*Person, error) {
	if len(ids) == 0 {
		return map[string]*Person{}, nil
	}

	var rows []*Person
	err := r.db.NewSelect().
		Model(&rows).
		Where("p.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	result := make(map[string]*Person, len(rows))
	for _, p := range rows {
		result[p.ID] = p
	}
	return result, nil
}

func (r *Repository) FamiliesByIDs(ctx context.Context, ids []string) (map[string]*Family, error) {
	if len(ids) == 0 {
		return map[string]*Family{}, nil
	}

	var rows []*Family
	err := r.db.NewSelect().
		Model(&rows).
		Where("f.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	result := make(map[string]*Family, len(rows))
	for _, f := range rows {
		result[f.ID] = f
	}
	return result, nil
}

func (r *Repository) ChildrenByFamilyIDs(ctx context.Context, familyIDs []string) (map[string][]string, error) {
	if len(familyIDs) == 0 {
		return map[string][]string{}, nil
	}

	var rows []*FamilyChild
	err := r.db.NewSelect().
		Model(&rows).
		Where("fc.family_id IN (?)", bun.In(familyIDs)).
		Order("fc.family_id", "fc.position", "fc.child_id").
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	result := make(map[string][]string, len(familyIDs))
	for _, row := range rows {
		result[row.FamilyID] = append(result[row.FamilyID], row.ChildID)
	}
	return result, nil
}

func (r *Repository) FamilyWithChild(ctx context.Context, personIDs []string) (map[string]*Family, error) {
	if len(personIDs) == 0 {
		return map[string]*Family{}, nil
	}

	var edges []*FamilyChild
	err := r.db.NewSelect().
		Model(&edges).
		Where("fc.child_id IN (?)", bun.In(personIDs)).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	familyIDs := make([]string, 0, len(edges))
	childFamily := make(map[string]string, len(edges))
	for _, e := range edges {
		familyIDs = append(familyIDs, e.FamilyID)
		childFamily[e.ChildID] = e.FamilyID
	}

	families, err := r.FamiliesByIDs(ctx, familyIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[string]*Family, len(childFamily))
	for child, famID := range childFamily {
		if f, ok := families[famID]; ok {
			result[child] = f
		}
	}
	return result, nil
}

func (r *Repository) FamiliesWithSpouse(ctx context.Context, personIDs []string) (map[string][]*Family, error) {
	if len(personIDs) == 0 {
		return map[string][]*Family{}, nil
	}

	var rows []*Family
	err := r.db.NewSelect().
		Model(&rows).
		Where("f.husband_id IN (?) OR f.wife_id IN (?)", bun.In(personIDs), bun.In(personIDs)).
		Order("f.id").
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	requested := make(map[string]bool, len(personIDs))
	for _, id := range personIDs {
		requested[id] = true
	}

	result := make(map[string][]*Family)
	for _, f := range rows {
		if f.HusbandID != nil && requested[*f.HusbandID] {
			result[*f.HusbandID] = append(result[*f.HusbandID], f)
		}
		if f.WifeID != nil && requested[*f.WifeID] {
			result[*f.WifeID] = append(result[*f.WifeID], f)
		}
	}
	return result, nil
}

// GetByID fetches a single person, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Person, error) {
	result, err := r.PeopleByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	return result[id], nil
}

// ListParams are the resolved (already clamped) listing parameters.
type ListParams struct {
	// Limit is the page size; one extra row is fetched to detect a next page.
	Limit    int
	AfterID  *string
	BeforeID *string
	Backward bool
}

// List returns up to Limit+1 people ordered ascending by id. Backward pages
// are fetched descending and flipped back, so callers always see ascending
// order.
func (r *Repository) List(ctx context.Context, params ListParams) ([]*Person, error) {
	q := r.db.NewSelect().Model((*Person)(nil))

	if params.AfterID != nil {
		q = q.Where("p.id > ?", *params.AfterID)
	}
	if params.BeforeID != nil {
		q = q.Where("p.id < ?", *params.BeforeID)
	}

	if params.Backward {
		q = q.Order("p.id DESC")
	} else {
		q = q.Order("p.id ASC")
	}

	var rows []*Person
	if err := q.Limit(params.Limit + 1).Scan(ctx, &rows); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	if params.Backward {
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	}
	return rows, nil
}

// Count returns the total number of people. Run once per page request; it can
// be briefly stale relative to the page rows.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*Person)(nil)).Count(ctx)
	if err != nil {
		return 0, apperror.ErrDatabase.WithInternal(err)
	}
	return count, nil
}
