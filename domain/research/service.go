package research

import (
	"context"
	"log/slog"

	"github.com/kingraph-app/kingraph/internal/config"
	"github.com/kingraph-app/kingraph/pkg/apperror"
	"github.com/kingraph-app/kingraph/pkg/logger"
	"github.com/kingraph-app/kingraph/pkg/pagination"
)

// Source is the candidate supply the queue reads from. Satisfied by
// *Repository; tests substitute an in-memory slice.
type Source interface {
	Candidates(ctx context.Context) ([]Candidate, error)
	Count(ctx context.Context) (int, error)
}

// Service serves the ranked research queue.
type Service struct {
	source  Source
	log     *slog.Logger
	weights config.ResearchConfig
	pages   config.PaginationConfig
}

// NewService creates a new research service.
func NewService(source Source, log *slog.Logger, cfg *config.Config) *Service {
	return &Service{
		source:  source,
		log:     log.With(logger.Scope("research.svc")),
		weights: cfg.Research,
		pages:   cfg.Pagination,
	}
}

// Queue returns one page of the ranked queue. Only forward pagination is
// supported: "after" a (score, id) cursor means strictly lower score, or the
// same score with a greater id.
func (s *Service) Queue(ctx context.Context, args pagination.PageArgs) (*pagination.Connection[Ranked], error) {
	if err := args.Validate(); err != nil {
		return nil, apperror.NewBadRequest(err.Error())
	}
	if args.Backward() {
		return nil, apperror.NewBadRequest("the research queue only paginates forward")
	}

	limit := args.Limit(s.pages.DefaultPageSize, s.pages.MaxPageSize)

	var after *pagination.ScoredKey
	if args.After != nil {
		key, err := pagination.DecodeScored(*args.After)
		if err != nil {
			return nil, apperror.NewInvalidCursor(err)
		}
		after = &key
	}

	total, err := s.source.Count(ctx)
	if err != nil {
		return nil, err
	}
	candidates, err := s.source.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	ranked := Rank(candidates, s.weights)

	// One extra row past the limit answers hasNextPage without a second
	// round trip.
	page := make([]Ranked, 0, limit+1)
	for _, r := range ranked {
		if after != nil && !(pagination.ScoredKey{Score: r.Score, ID: r.Person.ID}).After(*after) {
			continue
		}
		page = append(page, r)
		if len(page) > limit {
			break
		}
	}

	hasNext := len(page) > limit
	if hasNext {
		page = page[:limit]
	}

	conn := pagination.NewConnection(page, func(r Ranked) string {
		return pagination.EncodeScored(r.Score, r.Person.ID)
	}, hasNext, args.After != nil, total)
	return &conn, nil
}
