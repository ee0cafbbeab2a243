package people_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingraph-app/kingraph/domain/people"
	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/internal/testutil"
	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/pagination"
)

// fakeLister serves List/Count/GetByID from a sorted in-memory slice with
// the repository's limit-plus-one contract.
type fakeLister struct {
	persons []*people.Person
}

func newFakeLister(ids ...string) *fakeLister {
	f := &fakeLister{}
	for _, id := range ids {
		f.persons = append(f.persons, testutil.Person(id))
	}
	sort.Slice(f.persons, func(i, j int) bool { return f.persons[i].ID < f.persons[j].ID })
	return f
}

func (f *fakeLister) List(ctx context.Context, params people.ListParams) ([]*people.Person, error) {
	var rows []*people.Person
	for _, p := range f.persons {
		if params.AfterID != nil && p.ID <= *params.AfterID {
			continue
		}
		if params.BeforeID != nil && p.ID >= *params.BeforeID {
			continue
		}
		rows = append(rows, p)
	}
	if params.Backward && len(rows) > params.Limit+1 {
		rows = rows[len(rows)-params.Limit-1:]
	}
	if len(rows) > params.Limit+1 {
		rows = rows[:params.Limit+1]
	}
	return rows, nil
}

func (f *fakeLister) Count(ctx context.Context) (int, error) {
	return len(f.persons), nil
}

func (f *fakeLister) GetByID(ctx context.Context, id string) (*people.Person, error) {
	for _, p := range f.persons {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func newPeopleService(lister people.Lister) *people.Service {
	cfg := &config.Config{Pagination: config.PaginationConfig{DefaultPageSize: 3, MaxPageSize: 5}}
	return people.NewService(lister, slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func seededService(n int) *people.Service {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%02d", i+1)
	}
	return newPeopleService(newFakeLister(ids...))
}

func edgeIDs(conn *pagination.Connection[*people.Person]) []string {
	ids := make([]string, len(conn.Edges))
	for i, e := range conn.Edges {
		ids[i] = e.Node.ID
	}
	return ids
}

func TestListForward(t *testing.T) {
	svc := seededService(7)

	first := 3
	conn, err := svc.List(context.Background(), pagination.PageArgs{First: &first})
	require.NoError(t, err)

	assert.Equal(t, []string{"p01", "p02", "p03"}, edgeIDs(conn))
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	assert.Equal(t, 7, conn.PageInfo.TotalCount)

	next, err := svc.List(context.Background(), pagination.PageArgs{First: &first, After: conn.PageInfo.EndCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"p04", "p05", "p06"}, edgeIDs(next))
	assert.True(t, next.PageInfo.HasPreviousPage)
}

func TestListBackward(t *testing.T) {
	svc := seededService(7)

	last := 3
	before := pagination.EncodeID("p06")
	conn, err := svc.List(context.Background(), pagination.PageArgs{Last: &last, Before: &before})
	require.NoError(t, err)

	// The page immediately before p06, still in ascending order; the
	// overflow row (p02) signals an earlier page.
	assert.Equal(t, []string{"p03", "p04", "p05"}, edgeIDs(conn))
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.True(t, conn.PageInfo.HasNextPage)
}

func TestListDirectionExclusivity(t *testing.T) {
	svc := seededService(3)

	first, last := 2, 2
	_, err := svc.List(context.Background(), pagination.PageArgs{First: &first, Last: &last})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestListClampAndDefault(t *testing.T) {
	svc := seededService(10)

	conn, err := svc.List(context.Background(), pagination.PageArgs{})
	require.NoError(t, err)
	assert.Len(t, conn.Edges, 3, "default page size")

	huge := 500
	conn, err = svc.List(context.Background(), pagination.PageArgs{First: &huge})
	require.NoError(t, err)
	assert.Len(t, conn.Edges, 5, "clamped to the configured maximum")
}

func TestListInvalidCursor(t *testing.T) {
	svc := seededService(3)

	bad := "@@@"
	_, err := svc.List(context.Background(), pagination.PageArgs{After: &bad})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_cursor", appErr.Code)
}

func TestGet(t *testing.T) {
	svc := seededService(2)

	p, err := svc.Get(context.Background(), "p01")
	require.NoError(t, err)
	assert.Equal(t, "p01", p.ID)

	_, err = svc.Get(context.Background(), "ghost")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPStatus)
}
