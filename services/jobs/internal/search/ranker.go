package search

import (
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"
)

// ApplyDistanceRanking restricts q to postings with a location strictly
// closer than maxDistance miles to point, nearest first.
func ApplyDistanceRanking(q query.Query, point models.GeoPoint, maxDistance float64) query.Query {
	return q.Near(point, maxDistance)
}
