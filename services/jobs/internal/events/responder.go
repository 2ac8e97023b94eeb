package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/config"
	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/geo"
	"jobsportal/services/jobs/internal/messaging"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/search"

	"github.com/nats-io/nats.go"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsportal/jobs/events")

const searchQueue = "search-service"

type searchRequest struct {
	models.SearchCriteria
	Mode string `json:"mode,omitempty"`
	Page int    `json:"page,omitempty"`
}

type listRequest struct {
	CompanyID string `json:"company_id,omitempty"`
	Page      int    `json:"page,omitempty"`
}

type rangesReply struct {
	Ranges models.Ranges `json:"ranges"`
}

// Responder answers search requests over NATS request/reply. Requests run on
// a bounded worker pool.
type Responder struct {
	logger   *zap.Logger
	nc       *nats.Conn
	searcher *search.Searcher
	resolver *geo.Resolver
	pool     *ants.Pool
	timeout  time.Duration
	subs     []*nats.Subscription
}

func NewResponder(logger *zap.Logger, nc *nats.Conn, searcher *search.Searcher, resolver *geo.Resolver, cfg *config.Config) (*Responder, error) {
	pool, err := ants.NewPool(cfg.WorkerPoolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Responder{
		logger:   logger,
		nc:       nc,
		searcher: searcher,
		resolver: resolver,
		pool:     pool,
		timeout:  cfg.RequestTimeout,
	}, nil
}

func (r *Responder) RegisterSubscriptions(lc fx.Lifecycle) error {
	for _, subject := range []string{SearchSubject, ListSubject, CompanySubject, RangesSubject} {
		sub, err := r.nc.QueueSubscribe(subject, searchQueue, r.dispatch)
		if err != nil {
			return fmt.Errorf("subscribe to %s: %w", subject, err)
		}
		r.subs = append(r.subs, sub)
	}

	sub, err := r.nc.QueueSubscribe(messaging.GeoLocationChangedSubject, searchQueue, r.handleLocationChanged)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", messaging.GeoLocationChangedSubject, err)
	}
	r.subs = append(r.subs, sub)

	r.logger.Info("Registered NATS subscriptions", zap.Int("count", len(r.subs)))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return r.Close()
		},
	})

	return nil
}

// Close unsubscribes and waits for in-flight requests.
func (r *Responder) Close() error {
	var firstErr error
	for _, sub := range r.subs {
		if err := sub.Unsubscribe(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.subs = nil
	if err := r.pool.ReleaseTimeout(r.timeout); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (r *Responder) dispatch(msg *nats.Msg) {
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := msg.Respond(r.handle(ctx, msg.Subject, msg.Data)); err != nil {
			r.logger.Warn("Failed to send reply",
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	})
	if err != nil {
		r.logger.Error("Failed to schedule request",
			zap.String("subject", msg.Subject),
			zap.Error(err))
		_ = msg.Respond(errorPayload(errors.Unavailable("search workers unavailable", err)))
	}
}

func (r *Responder) handle(ctx context.Context, subject string, data []byte) []byte {
	ctx, span := tracer.Start(ctx, "Responder.handle")
	defer span.End()
	span.SetAttributes(
		telemetry.String("nats.subject", subject),
		telemetry.Int("message.size", len(data)),
	)

	reply, err := r.route(ctx, subject, data)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, errors.ErrTypeStorage) || errors.Is(err, errors.ErrTypeInternal) {
			r.logger.Error("Search request failed", zap.String("subject", subject), zap.Error(err))
		} else {
			r.logger.Debug("Search request rejected", zap.String("subject", subject), zap.Error(err))
		}
		return errorPayload(err)
	}
	return marshalReply(r.logger, reply)
}

func (r *Responder) route(ctx context.Context, subject string, data []byte) (any, error) {
	switch subject {
	case SearchSubject:
		var req searchRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		mode, err := search.ParseMode(req.Mode)
		if err != nil {
			return nil, errors.InvalidInput(err.Error(), nil)
		}
		return r.searcher.Search(ctx, search.Request{Criteria: req.SearchCriteria, Mode: mode, Page: req.Page})

	case ListSubject:
		var req listRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		return r.searcher.AllJobs(ctx, req.Page)

	case CompanySubject:
		var req listRequest
		if err := decodeRequest(data, &req); err != nil {
			return nil, err
		}
		return r.searcher.CompanyJobs(ctx, req.CompanyID, req.Page)

	case RangesSubject:
		ranges, err := r.searcher.Ranges(ctx)
		if err != nil {
			return nil, err
		}
		return rangesReply{Ranges: ranges}, nil

	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported subject %q", subject), nil)
	}
}

func (r *Responder) handleLocationChanged(msg *nats.Msg) {
	var event models.GeoLocationChangedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		r.logger.Warn("Dropping malformed location event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.resolver.Invalidate(ctx, event.ID); err != nil {
		r.logger.Warn("Failed to invalidate cached location",
			zap.String("location_id", event.ID),
			zap.Error(err))
	}
}

// decodeRequest accepts an empty body as the zero request.
func decodeRequest(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.InvalidInput("malformed request payload", err)
	}
	return nil
}
