package research

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/kingraph-app/kingraph/domain/people"
)

// Repository loads scoring candidates from PostgreSQL.
type Repository struct {
	db bun.IDB
}

// NewRepository creates a new research repository.
func NewRepository(db bun.IDB) *Repository {
	return &Repository{db: db}
}

type candidateRow struct {
	people.Person        `bun:",extend"`
	HasPlaceholderParent bool `bun:"has_placeholder_parent,scanonly"`
}

// Candidates returns every person together with a placeholder-parent flag
// resolved in the same query. The ranker scores and orders them in memory;
// the table is expected to stay small enough for that (single-tree scale,
// not a census).
func (r *Repository) Candidates(ctx context.Context) ([]Candidate, error) {
	var rows []candidateRow
	err := r.db.NewSelect().
		Model(&rows).
		ColumnExpr("p.*").
		ColumnExpr(`EXISTS (
			SELECT 1
			FROM family_children fc
			JOIN families f ON f.id = fc.family_id
			JOIN people par ON par.id = f.husband_id OR par.id = f.wife_id
			WHERE fc.child_id = p.id AND par.is_placeholder
		) AS has_placeholder_parent`).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load research candidates: %w", err)
	}

	out := make([]Candidate, len(rows))
	for i := range rows {
		p := rows[i].Person
		out[i] = Candidate{Person: &p, HasPlaceholderParent: rows[i].HasPlaceholderParent}
	}
	return out, nil
}

// Count returns the total number of scorable records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.db.NewSelect().Model((*people.Person)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count research candidates: %w", err)
	}
	return n, nil
}
