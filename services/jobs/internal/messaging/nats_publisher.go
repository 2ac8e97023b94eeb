package messaging

import (
	"context"
	"encoding/json"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/models"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsportal/jobs/messaging")

const (
	GeoLocationChangedSubject = "geo.location.changed"
)

type Publisher interface {
	PublishGeoLocationChanged(ctx context.Context, id string) error
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewPublisher publishes on conn. The connection is owned by the caller.
func NewPublisher(logger *zap.Logger, conn *nats.Conn) Publisher {
	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}
}

func (p *natsPublisher) PublishGeoLocationChanged(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "PublishGeoLocationChanged")
	defer span.End()

	data, err := json.Marshal(models.GeoLocationChangedEvent{ID: id})
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling geo location event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", GeoLocationChangedSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(GeoLocationChangedSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish geo location change",
			zap.String("id", id),
			zap.Error(err))
		return errors.Unavailable("publishing to NATS", err)
	}

	p.logger.Debug("published geo location change",
		zap.String("id", id),
		zap.String("subject", GeoLocationChangedSubject))
	return nil
}
