package pagination

import "fmt"

// PageArgs are the client-supplied pagination arguments. Forward
// (first/after) and backward (last/before) are mutually exclusive.
type PageArgs struct {
	First  *int    `query:"first" json:"first,omitempty"`
	After  *string `query:"after" json:"after,omitempty"`
	Last   *int    `query:"last" json:"last,omitempty"`
	Before *string `query:"before" json:"before,omitempty"`
}

// Validate enforces direction exclusivity.
func (a PageArgs) Validate() error {
	forward := a.First != nil || a.After != nil
	backward := a.Last != nil || a.Before != nil
	if forward && backward {
		return fmt.Errorf("first/after and last/before are mutually exclusive")
	}
	return nil
}

// Backward reports whether the request paginates backward. Default direction
// is forward.
func (a PageArgs) Backward() bool {
	return a.Last != nil || a.Before != nil
}

// Limit resolves the effective page size: the requested size clamped to
// [1, max], or def when absent. The maximum always wins over the client.
func (a PageArgs) Limit(def, max int) int {
	requested := a.First
	if a.Backward() {
		requested = a.Last
	}
	if requested == nil || *requested <= 0 {
		if def > max {
			return max
		}
		return def
	}
	if *requested > max {
		return max
	}
	return *requested
}

// Edge pairs a node with its position cursor.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// PageInfo describes the page relative to the full result set. TotalCount
// comes from an independent count query and may be briefly stale relative to
// the edges themselves; this is tolerated.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	TotalCount      int     `json:"totalCount"`
}

// Connection is a cursor-paginated page of results.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// NewConnection assembles a connection from the page's nodes. cursorFn
// produces the opaque cursor for one node.
func NewConnection[T any](nodes []T, cursorFn func(T) string, hasNext, hasPrev bool, total int) Connection[T] {
	edges := make([]Edge[T], len(nodes))
	for i, n := range nodes {
		edges[i] = Edge[T]{Node: n, Cursor: cursorFn(n)}
	}

	info := PageInfo{
		HasNextPage:     hasNext,
		HasPreviousPage: hasPrev,
		TotalCount:      total,
	}
	if len(edges) > 0 {
		info.StartCursor = &edges[0].Cursor
		info.EndCursor = &edges[len(edges)-1].Cursor
	}

	return Connection[T]{Edges: edges, PageInfo: info}
}
