// Package query holds the immutable description of a job search: a list of
// conjunctive predicates plus an optional distance clause. Stages extend a
// Query by value; the receiver is never modified.
package query

import (
	"jobsportal/services/jobs/internal/models"
)

// Predicate is one conjunct of a job query. SQL renders against the jobs
// table aliased as j; Match evaluates the same condition in memory.
type Predicate interface {
	Name() string
	SQL() (string, []any)
	Match(job *models.JobPosting) bool
}

// Distance restricts results to postings within Max miles of Origin and
// orders them nearest first.
type Distance struct {
	Origin models.GeoPoint
	Max    float64
}

type Query struct {
	predicates []Predicate
	distance   *Distance
}

func New() Query {
	return Query{}
}

// Where returns a copy of q with preds appended.
func (q Query) Where(preds ...Predicate) Query {
	next := make([]Predicate, 0, len(q.predicates)+len(preds))
	next = append(next, q.predicates...)
	next = append(next, preds...)
	q.predicates = next
	return q
}

// Near returns a copy of q ranked by distance from origin.
func (q Query) Near(origin models.GeoPoint, maxDistance float64) Query {
	q.distance = &Distance{Origin: origin, Max: maxDistance}
	return q
}

func (q Query) Predicates() []Predicate {
	out := make([]Predicate, len(q.predicates))
	copy(out, q.predicates)
	return out
}

func (q Query) Distance() (Distance, bool) {
	if q.distance == nil {
		return Distance{}, false
	}
	return *q.distance, true
}

func (q Query) Ranked() bool {
	return q.distance != nil
}

// Match reports whether job satisfies every predicate. The distance clause
// is not evaluated here.
func (q Query) Match(job *models.JobPosting) bool {
	for _, p := range q.predicates {
		if !p.Match(job) {
			return false
		}
	}
	return true
}
