// Package clickhouse stores job postings in ClickHouse. Tables are
// ReplacingMergeTree, so every read uses FINAL and writes are inserts of a
// newer version.
package clickhouse

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsportal/jobs/store/clickhouse")

type Store struct {
	conn   driver.Conn
	logger *zap.Logger
	now    func() time.Time
}

func New(conn driver.Conn, logger *zap.Logger) *Store {
	return &Store{
		conn:   conn,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) FindJobs(ctx context.Context, q query.Query, limit, offset int) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "Store.FindJobs")
	defer span.End()

	stmt, args := buildFind(q, limit, offset)
	rows, err := s.conn.Query(ctx, stmt, args...)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Failed to query jobs", zap.Error(err))
		return nil, errors.Storage("query jobs", err)
	}
	defer rows.Close()

	ranked := q.Ranked()
	jobs := make([]models.JobPosting, 0)
	for rows.Next() {
		var row jobRow
		if err := rows.Scan(row.targets(ranked)...); err != nil {
			span.RecordError(err)
			return nil, errors.Storage("scan job row", err)
		}
		jobs = append(jobs, row.posting())
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, errors.Storage("iterate job rows", err)
	}

	span.SetAttributes(telemetry.Int("db.rows", len(jobs)))
	return jobs, nil
}

func (s *Store) CountJobs(ctx context.Context, q query.Query) (int, error) {
	ctx, span := tracer.Start(ctx, "Store.CountJobs")
	defer span.End()

	stmt, args := buildCount(q)
	var total uint64
	if err := s.conn.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		span.RecordError(err)
		s.logger.Error("Failed to count jobs", zap.Error(err))
		return 0, errors.Storage("count jobs", err)
	}
	return int(total), nil
}

func (s *Store) Ranges(ctx context.Context) (models.Ranges, error) {
	ctx, span := tracer.Start(ctx, "Store.Ranges")
	defer span.End()

	var (
		salaryMin, salaryMax float64
		expMin, expMax       int32
	)
	err := s.conn.QueryRow(ctx, `
		SELECT min(salary), max(salary), min(experience), max(experience)
		FROM jobs FINAL
	`).Scan(&salaryMin, &salaryMax, &expMin, &expMax)
	if err != nil {
		span.RecordError(err)
		return models.Ranges{}, errors.Storage("query ranges", err)
	}

	return models.Ranges{
		SalaryMin:     salaryMin,
		SalaryMax:     salaryMax,
		ExperienceMin: int(expMin),
		ExperienceMax: int(expMax),
	}, nil
}

func (s *Store) GetGeoLocation(ctx context.Context, id string) (*models.GeoLocation, error) {
	ctx, span := tracer.Start(ctx, "Store.GetGeoLocation")
	defer span.End()

	var loc models.GeoLocation
	err := s.conn.QueryRow(ctx, `
		SELECT id, lat, lng, updated_at
		FROM geo_locations FINAL
		WHERE id = ?
	`, id).Scan(&loc.ID, &loc.Lat, &loc.Lng, &loc.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("geo location not found", nil)
	}
	if err != nil {
		span.RecordError(err)
		return nil, errors.Storage("query geo location", err)
	}
	return &loc, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.JobPosting, error) {
	jobs, err := s.FindJobs(ctx, query.New().Where(query.IDIs(id)), 1, 0)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, errors.NotFound("job posting not found", nil)
	}
	return &jobs[0], nil
}

// SaveJob writes a new version of the posting. UpdatedAt is stamped here so
// the newest write wins the merge.
func (s *Store) SaveJob(ctx context.Context, job *models.JobPosting) error {
	ctx, span := tracer.Start(ctx, "Store.SaveJob")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", job.ID))

	now := s.now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	if err := s.conn.Exec(ctx, `
		INSERT INTO jobs (
			id, company_id, occupation_id, contract_type_id, geo_location_id,
			name, description, salary, experience, created_at, updated_at
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`,
		job.ID,
		job.CompanyID,
		job.OccupationID,
		job.ContractTypeID,
		job.GeoLocationID,
		job.Name,
		job.Description,
		job.Salary,
		int32(job.Experience),
		job.CreatedAt,
		job.UpdatedAt,
	); err != nil {
		span.RecordError(err)
		return errors.Storage("insert job posting", err)
	}

	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Store.DeleteJob")
	defer span.End()

	if err := s.conn.Exec(ctx, "DELETE FROM jobs WHERE id = ?", id); err != nil {
		span.RecordError(err)
		return errors.Storage("delete job posting", err)
	}
	return nil
}

func (s *Store) SaveGeoLocation(ctx context.Context, loc *models.GeoLocation) error {
	ctx, span := tracer.Start(ctx, "Store.SaveGeoLocation")
	defer span.End()

	loc.UpdatedAt = s.now()
	if err := s.conn.Exec(ctx, `
		INSERT INTO geo_locations (id, lat, lng, updated_at) VALUES (?, ?, ?, ?)
	`, loc.ID, loc.Lat, loc.Lng, loc.UpdatedAt); err != nil {
		span.RecordError(err)
		return errors.Storage("insert geo location", err)
	}
	return nil
}
