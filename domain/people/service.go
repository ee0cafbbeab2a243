package people

import (
	"context"
	"log/slog"

	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/pagination"
)

// Lister is the repository surface the service needs for the listing
// endpoint. Satisfied by *Repository; tests provide an in-memory fake.
type Lister interface {
	List(ctx context.Context, params ListParams) ([]*Person, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id string) (*Person, error)
}

// Service handles the people listing and detail operations.
type Service struct {
	repo  Lister
	log   *slog.Logger
	pages config.PaginationConfig
}

// NewService creates a new people service.
func NewService(repo Lister, log *slog.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:  repo,
		log:   log.With(logger.Scope("people.svc")),
		pages: cfg.Pagination,
	}
}

// List returns an id-ordered page of people. Forward (first/after) and
// backward (last/before) pagination are mutually exclusive; the configured
// maximum page size always wins over the client-requested size.
func (s *Service) List(ctx context.Context, args pagination.PageArgs) (*pagination.Connection[*Person], error) {
	if err := args.Validate(); err != nil {
		return nil, apperror.NewBadRequest(err.Error())
	}

	limit := args.Limit(s.pages.DefaultPageSize, s.pages.MaxPageSize)

	params := ListParams{Limit: limit, Backward: args.Backward()}
	if args.After != nil {
		id, err := pagination.DecodeID(*args.After)
		if err != nil {
			return nil, apperror.NewInvalidCursor(err)
		}
		params.AfterID = &id
	}
	if args.Before != nil {
		id, err := pagination.DecodeID(*args.Before)
		if err != nil {
			return nil, apperror.NewInvalidCursor(err)
		}
		params.BeforeID = &id
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	var hasNext, hasPrev bool
	if params.Backward {
		// Rows come back ascending; the overflow row is the earliest one.
		hasPrev = len(rows) > limit
		if hasPrev {
			rows = rows[1:]
		}
		hasNext = args.Before != nil
	} else {
		hasNext = len(rows) > limit
		if hasNext {
			rows = rows[:limit]
		}
		hasPrev = args.After != nil
	}

	conn := pagination.NewConnection(rows, func(p *Person) string {
		return pagination.EncodeID(p.ID)
	}, hasNext, hasPrev, total)
	return &conn, nil
}

// Get returns a single person, or a not-found error for this direct resource
// lookup.
func (s *Service) Get(ctx context.Context, id string) (*Person, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NewNotFound("person", id)
	}
	return p, nil
}
