package search

import (
	"context"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"
)

// JobStore executes composed queries. limit <= 0 means unlimited.
type JobStore interface {
	FindJobs(ctx context.Context, q query.Query, limit, offset int) ([]models.JobPosting, error)
	CountJobs(ctx context.Context, q query.Query) (int, error)
	Ranges(ctx context.Context) (models.Ranges, error)
}

type Materializer struct {
	store JobStore
}

func NewMaterializer(store JobStore) *Materializer {
	return &Materializer{store: store}
}

// TakeTop returns at most limit postings matching q.
func (m *Materializer) TakeTop(ctx context.Context, q query.Query, limit int) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "Materializer.TakeTop")
	defer span.End()
	span.SetAttributes(telemetry.Int("search.limit", limit))

	jobs, err := m.store.FindJobs(ctx, q, limit, 0)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(telemetry.Int("search.results", len(jobs)))
	return nonNil(jobs), nil
}

// Paginate returns the 1-based page of q. Pages below 1 are treated as 1.
func (m *Materializer) Paginate(ctx context.Context, q query.Query, pageSize, page int) ([]models.JobPosting, models.Pagination, error) {
	ctx, span := tracer.Start(ctx, "Materializer.Paginate")
	defer span.End()

	if page < 1 {
		page = 1
	}
	span.SetAttributes(
		telemetry.Int("search.page", page),
		telemetry.Int("search.page_size", pageSize),
	)

	total, err := m.store.CountJobs(ctx, q)
	if err != nil {
		span.RecordError(err)
		return nil, models.Pagination{}, err
	}

	pagination := models.NewPagination(total, pageSize, page)
	if total == 0 || page > pagination.LastPage {
		return []models.JobPosting{}, pagination, nil
	}

	jobs, err := m.store.FindJobs(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		span.RecordError(err)
		return nil, models.Pagination{}, err
	}
	span.SetAttributes(telemetry.Int("search.results", len(jobs)))
	return nonNil(jobs), pagination, nil
}

func nonNil(jobs []models.JobPosting) []models.JobPosting {
	if jobs == nil {
		return []models.JobPosting{}
	}
	return jobs
}
