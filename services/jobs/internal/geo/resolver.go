package geo

import (
	"context"
	"errors"
	"time"

	"jobsportal/common/cache"
	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/models"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsportal/jobs/geo")

// LocationStore looks up stored locations. A missing id is reported as a
// NOT_FOUND domain error.
type LocationStore interface {
	GetGeoLocation(ctx context.Context, id string) (*models.GeoLocation, error)
}

type Resolver struct {
	store  LocationStore
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewResolver builds a resolver. c may be nil, in which case every lookup
// goes to the store.
func NewResolver(store LocationStore, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  store,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id string) string {
	return cache.Key("geo", "location", id)
}

// Resolve turns a location id into a reference point. An empty id means no
// location constraint and yields a nil point without error.
func (r *Resolver) Resolve(ctx context.Context, locationID string) (*models.GeoPoint, error) {
	if locationID == "" {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "Resolver.Resolve")
	defer span.End()
	span.SetAttributes(telemetry.String("geo.location.id", locationID))

	if loc, ok := r.cached(ctx, locationID); ok {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		point := loc.Point()
		return &point, nil
	}

	loc, err := r.store.GetGeoLocation(ctx, locationID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey(locationID), loc, r.ttl); err != nil {
			r.logger.Warn("failed to cache geo location",
				zap.String("location_id", locationID),
				zap.Error(err))
		}
	}

	point := loc.Point()
	return &point, nil
}

func (r *Resolver) cached(ctx context.Context, id string) (*models.GeoLocation, bool) {
	if r.cache == nil {
		return nil, false
	}

	var loc models.GeoLocation
	err := r.cache.Get(ctx, cacheKey(id), &loc)
	if err == nil {
		r.logger.Debug("cache hit for geo location", zap.String("location_id", id))
		return &loc, true
	}
	if !errors.Is(err, cache.ErrNotFound) {
		r.logger.Warn("cache error for geo location",
			zap.String("location_id", id),
			zap.Error(err))
	}
	return nil, false
}

// Invalidate drops any cached copy of the location.
func (r *Resolver) Invalidate(ctx context.Context, locationID string) error {
	if r.cache == nil || locationID == "" {
		return nil
	}
	return r.cache.Delete(ctx, cacheKey(locationID))
}
