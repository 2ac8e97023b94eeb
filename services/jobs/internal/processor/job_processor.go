package processor

import (
	"context"
	"time"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/messaging"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/parser"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// JobWriter is the write side of the job store.
type JobWriter interface {
	GetJob(ctx context.Context, id string) (*models.JobPosting, error)
	SaveJob(ctx context.Context, job *models.JobPosting) error
	DeleteJob(ctx context.Context, id string) error
	SaveGeoLocation(ctx context.Context, loc *models.GeoLocation) error
}

type JobProcessor struct {
	logger    *zap.Logger
	store     JobWriter
	publisher messaging.Publisher
	tracer    trace.Tracer
	newID     func() string
	now       func() time.Time
}

func NewJobProcessor(logger *zap.Logger, store JobWriter, publisher messaging.Publisher) *JobProcessor {
	return &JobProcessor{
		logger:    logger,
		store:     store,
		publisher: publisher,
		tracer:    telemetry.GetTracer("jobsportal/jobs/processor"),
		newID:     func() string { return uuid.New().String() },
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (p *JobProcessor) CreateJob(ctx context.Context, rawData []byte) (*models.JobPosting, error) {
	ctx, span := p.tracer.Start(ctx, "CreateJob")
	defer span.End()

	cmd, err := parser.ParseCreateJob(rawData)
	if err != nil {
		p.logger.Warn("Rejected create command", zap.Error(err))
		return nil, err
	}

	now := p.now()
	job := &models.JobPosting{
		ID:        p.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyFields(job, cmd.JobFields)

	var loc *models.GeoLocation
	if cmd.Location != nil {
		loc = &models.GeoLocation{ID: p.newID(), Lat: cmd.Location.Lat, Lng: cmd.Location.Lng, UpdatedAt: now}
		job.GeoLocationID = &loc.ID
	}

	if err := p.store.SaveJob(ctx, job); err != nil {
		span.RecordError(err)
		p.logger.Error("Failed to store job posting", zap.Error(err))
		return nil, err
	}

	if loc != nil {
		if err := p.store.SaveGeoLocation(ctx, loc); err != nil {
			span.RecordError(err)
			p.logger.Error("Failed to store geo location", zap.String("id", job.ID), zap.Error(err))
			if delErr := p.store.DeleteJob(ctx, job.ID); delErr != nil {
				p.logger.Error("Failed to remove job posting without location",
					zap.String("id", job.ID),
					zap.Error(delErr))
			}
			return nil, err
		}
	}

	span.SetAttributes(telemetry.String("job.id", job.ID))
	p.logger.Info("Created job posting", zap.String("id", job.ID))
	return p.store.GetJob(ctx, job.ID)
}

// UpdateJob replaces the posting's fields. A supplied location moves the
// posting's existing GeoLocation in place, so every cached copy of it is
// announced as stale. The posting is written before its location.
func (p *JobProcessor) UpdateJob(ctx context.Context, rawData []byte) (*models.JobPosting, error) {
	ctx, span := p.tracer.Start(ctx, "UpdateJob")
	defer span.End()

	cmd, err := parser.ParseUpdateJob(rawData)
	if err != nil {
		p.logger.Warn("Rejected update command", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(telemetry.String("job.id", cmd.ID))

	job, err := p.store.GetJob(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	previous := *job

	now := p.now()
	applyFields(job, cmd.JobFields)
	job.UpdatedAt = now

	var (
		loc   *models.GeoLocation
		moved bool
	)
	if cmd.Location != nil {
		if job.GeoLocationID == nil {
			loc = &models.GeoLocation{ID: p.newID()}
			job.GeoLocationID = &loc.ID
		} else {
			loc = &models.GeoLocation{ID: *job.GeoLocationID}
			moved = true
		}
		loc.Lat, loc.Lng, loc.UpdatedAt = cmd.Location.Lat, cmd.Location.Lng, now
	}

	if err := p.store.SaveJob(ctx, job); err != nil {
		span.RecordError(err)
		p.logger.Error("Failed to store job posting", zap.String("id", job.ID), zap.Error(err))
		return nil, err
	}

	if loc != nil {
		if err := p.store.SaveGeoLocation(ctx, loc); err != nil {
			span.RecordError(err)
			p.logger.Error("Failed to store geo location", zap.String("id", job.ID), zap.Error(err))
			if !moved {
				p.restore(ctx, &previous)
			}
			return nil, err
		}
		if moved {
			p.announceMove(ctx, loc.ID)
		}
	}

	p.logger.Info("Updated job posting", zap.String("id", job.ID))
	return p.store.GetJob(ctx, job.ID)
}

// restore writes back a posting whose new location could not be stored, so
// it never references a missing location.
func (p *JobProcessor) restore(ctx context.Context, previous *models.JobPosting) {
	previous.UpdatedAt = p.now()
	if err := p.store.SaveJob(ctx, previous); err != nil {
		p.logger.Error("Failed to restore job posting",
			zap.String("id", previous.ID),
			zap.Error(err))
	}
}

// A lost event only leaves a cached copy alive until its TTL.
func (p *JobProcessor) announceMove(ctx context.Context, locationID string) {
	if err := p.publisher.PublishGeoLocationChanged(ctx, locationID); err != nil {
		p.logger.Warn("Failed to announce geo location change",
			zap.String("location_id", locationID),
			zap.Error(err))
	}
}

func (p *JobProcessor) DeleteJob(ctx context.Context, rawData []byte) error {
	ctx, span := p.tracer.Start(ctx, "DeleteJob")
	defer span.End()

	cmd, err := parser.ParseDeleteJob(rawData)
	if err != nil {
		p.logger.Warn("Rejected delete command", zap.Error(err))
		return err
	}
	span.SetAttributes(telemetry.String("job.id", cmd.ID))

	if _, err := p.store.GetJob(ctx, cmd.ID); err != nil {
		return err
	}
	if err := p.store.DeleteJob(ctx, cmd.ID); err != nil {
		span.RecordError(err)
		p.logger.Error("Failed to delete job posting", zap.String("id", cmd.ID), zap.Error(err))
		return err
	}

	p.logger.Info("Deleted job posting", zap.String("id", cmd.ID))
	return nil
}

func applyFields(job *models.JobPosting, f models.JobFields) {
	job.CompanyID = f.CompanyID
	job.OccupationID = f.OccupationID
	job.ContractTypeID = f.ContractTypeID
	job.Name = f.Name
	job.Description = f.Description
	job.Salary = f.Salary
	job.Experience = f.Experience
	job.Company = nil
	job.Occupation = nil
	job.ContractType = nil
	job.GeoLocation = nil
	job.Distance = nil
}
