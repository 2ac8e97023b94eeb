package search

import (
	"context"
	"fmt"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/models"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsportal/jobs/search")

type Mode int

const (
	// ModeCapped returns at most Options.MaxResults postings.
	ModeCapped Mode = iota
	// ModePaginated returns one page of Options.PageSize postings.
	ModePaginated
)

func (m Mode) String() string {
	switch m {
	case ModeCapped:
		return "capped"
	case ModePaginated:
		return "paginated"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "capped":
		return ModeCapped, nil
	case "paginated":
		return ModePaginated, nil
	default:
		return ModeCapped, fmt.Errorf("unknown search mode %q", s)
	}
}

// PointResolver resolves an optional location id. A nil point with a nil
// error means no location constraint.
type PointResolver interface {
	Resolve(ctx context.Context, locationID string) (*models.GeoPoint, error)
}

type Options struct {
	MaxResults  int
	MilesRadius float64
	PageSize    int
}

type Request struct {
	Criteria models.SearchCriteria
	Mode     Mode
	Page     int
}

type Result struct {
	Jobs       []models.JobPosting `json:"jobs"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Ranked     bool                `json:"ranked"`
}

type Searcher struct {
	resolver     PointResolver
	store        JobStore
	materializer *Materializer
	opts         Options
	logger       *zap.Logger
}

func NewSearcher(resolver PointResolver, store JobStore, opts Options, logger *zap.Logger) *Searcher {
	return &Searcher{
		resolver:     resolver,
		store:        store,
		materializer: NewMaterializer(store),
		opts:         opts,
		logger:       logger,
	}
}

// Search runs the full pipeline: resolve the location, filter, rank when a
// location resolved, then materialize. A location search is always capped,
// whatever mode was requested. A resolution failure aborts the search.
func (s *Searcher) Search(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Searcher.Search")
	defer span.End()
	span.SetAttributes(telemetry.String("search.mode", req.Mode.String()))

	point, err := s.resolver.Resolve(ctx, req.Criteria.LocationID)
	if err != nil {
		span.RecordError(err)
		s.logger.Debug("failed to resolve search location",
			zap.String("location_id", req.Criteria.LocationID),
			zap.Error(err))
		return nil, err
	}

	q := BuildFilteredQuery(req.Criteria)
	span.SetAttributes(telemetry.Int("search.filters", len(q.Predicates())))

	if point != nil {
		q = ApplyDistanceRanking(q, *point, s.opts.MilesRadius)
		span.SetAttributes(
			telemetry.Bool("search.ranked", true),
			telemetry.Float64("search.radius_miles", s.opts.MilesRadius),
		)

		jobs, err := s.materializer.TakeTop(ctx, q, s.opts.MaxResults)
		if err != nil {
			return nil, err
		}
		return &Result{Jobs: jobs, Ranked: true}, nil
	}

	switch req.Mode {
	case ModePaginated:
		jobs, pagination, err := s.materializer.Paginate(ctx, q, s.opts.PageSize, req.Page)
		if err != nil {
			return nil, err
		}
		return &Result{Jobs: jobs, Pagination: &pagination}, nil
	default:
		jobs, err := s.materializer.TakeTop(ctx, q, s.opts.MaxResults)
		if err != nil {
			return nil, err
		}
		return &Result{Jobs: jobs}, nil
	}
}

// AllJobs lists every posting, one page at a time.
func (s *Searcher) AllJobs(ctx context.Context, page int) (*Result, error) {
	return s.Search(ctx, Request{Mode: ModePaginated, Page: page})
}

// CompanyJobs lists a company's postings, one page at a time.
func (s *Searcher) CompanyJobs(ctx context.Context, companyID string, page int) (*Result, error) {
	if companyID == "" {
		return nil, errors.InvalidInput("company id is required", nil)
	}
	return s.Search(ctx, Request{
		Criteria: models.SearchCriteria{CompanyID: companyID},
		Mode:     ModePaginated,
		Page:     page,
	})
}

// Ranges reports the salary and experience bounds across all postings.
func (s *Searcher) Ranges(ctx context.Context) (models.Ranges, error) {
	ctx, span := tracer.Start(ctx, "Searcher.Ranges")
	defer span.End()

	r, err := s.store.Ranges(ctx)
	if err != nil {
		span.RecordError(err)
		return models.Ranges{}, err
	}
	return r, nil
}
