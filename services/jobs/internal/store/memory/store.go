// Package memory is an in-process job store. It evaluates queries with the
// same semantics as the ClickHouse store and backs tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/geo"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"
)

type Store struct {
	mu            sync.RWMutex
	order         []string
	jobs          map[string]models.JobPosting
	companies     map[string]models.Company
	occupations   map[string]models.Occupation
	contractTypes map[string]models.ContractType
	locations     map[string]models.GeoLocation
	now           func() time.Time
}

func New() *Store {
	return &Store{
		jobs:          make(map[string]models.JobPosting),
		companies:     make(map[string]models.Company),
		occupations:   make(map[string]models.Occupation),
		contractTypes: make(map[string]models.ContractType),
		locations:     make(map[string]models.GeoLocation),
		now:           time.Now,
	}
}

func (s *Store) AddCompany(c models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

func (s *Store) AddOccupation(o models.Occupation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.occupations[o.ID] = o
}

func (s *Store) AddContractType(ct models.ContractType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contractTypes[ct.ID] = ct
}

func (s *Store) GetGeoLocation(ctx context.Context, id string) (*models.GeoLocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, errors.NotFound("geo location not found", nil)
	}
	return &loc, nil
}

func (s *Store) SaveGeoLocation(ctx context.Context, loc *models.GeoLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *loc
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = s.now()
	}
	s.locations[stored.ID] = stored
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, errors.NotFound("job posting not found", nil)
	}
	hydrated := s.hydrate(job)
	return &hydrated, nil
}

// SaveJob inserts or replaces a posting. Relations on job are ignored; they
// are joined from the lookup tables on read.
func (s *Store) SaveJob(ctx context.Context, job *models.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *job
	stored.Company = nil
	stored.Occupation = nil
	stored.ContractType = nil
	stored.GeoLocation = nil
	stored.Distance = nil
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}

	if _, exists := s.jobs[stored.ID]; !exists {
		s.order = append(s.order, stored.ID)
	}
	s.jobs[stored.ID] = stored
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return errors.NotFound("job posting not found", nil)
	}
	delete(s.jobs, id)
	for i, jobID := range s.order {
		if jobID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) hydrate(job models.JobPosting) models.JobPosting {
	if c, ok := s.companies[job.CompanyID]; ok {
		job.Company = &c
	}
	if o, ok := s.occupations[job.OccupationID]; ok {
		job.Occupation = &o
	}
	if ct, ok := s.contractTypes[job.ContractTypeID]; ok {
		job.ContractType = &ct
	}
	if job.GeoLocationID != nil {
		if loc, ok := s.locations[*job.GeoLocationID]; ok {
			job.GeoLocation = &loc
		}
	}
	return job
}

func (s *Store) evaluate(q query.Query) []models.JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist, ranked := q.Distance()

	var matched []models.JobPosting
	for _, id := range s.order {
		job := s.hydrate(s.jobs[id])
		if !q.Match(&job) {
			continue
		}
		if ranked {
			if !job.HasLocation() {
				continue
			}
			d := geo.DistanceMiles(dist.Origin, job.GeoLocation.Point())
			if d >= dist.Max {
				continue
			}
			job.Distance = &d
		}
		matched = append(matched, job)
	}

	if ranked {
		sort.SliceStable(matched, func(i, j int) bool {
			if *matched[i].Distance != *matched[j].Distance {
				return *matched[i].Distance < *matched[j].Distance
			}
			return matched[i].ID < matched[j].ID
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
				return matched[i].CreatedAt.Before(matched[j].CreatedAt)
			}
			return matched[i].ID < matched[j].ID
		})
	}

	return matched
}

// FindJobs returns the postings matching q, skipping offset and returning at
// most limit of them. A non-positive limit means no limit.
func (s *Store) FindJobs(ctx context.Context, q query.Query, limit, offset int) ([]models.JobPosting, error) {
	matched := s.evaluate(q)

	if offset >= len(matched) {
		return []models.JobPosting{}, nil
	}
	if offset > 0 {
		matched = matched[offset:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *Store) CountJobs(ctx context.Context, q query.Query) (int, error) {
	return len(s.evaluate(q)), nil
}

func (s *Store) Ranges(ctx context.Context) (models.Ranges, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r models.Ranges
	first := true
	for _, job := range s.jobs {
		if first {
			r = models.Ranges{
				SalaryMin:     job.Salary,
				SalaryMax:     job.Salary,
				ExperienceMin: job.Experience,
				ExperienceMax: job.Experience,
			}
			first = false
			continue
		}
		r.SalaryMin = min(r.SalaryMin, job.Salary)
		r.SalaryMax = max(r.SalaryMax, job.Salary)
		r.ExperienceMin = min(r.ExperienceMin, job.Experience)
		r.ExperienceMax = max(r.ExperienceMax, job.Experience)
	}
	return r, nil
}
