package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/store/memory"

	"github.com/stretchr/testify/require"
)

var (
	newYork      = models.GeoLocation{ID: "loc-nyc", Lat: 40.7128, Lng: -74.0060}
	newark       = models.GeoLocation{ID: "loc-newark", Lat: 40.7357, Lng: -74.1724}
	philadelphia = models.GeoLocation{ID: "loc-philly", Lat: 39.9526, Lng: -75.1652}
	boston       = models.GeoLocation{ID: "loc-boston", Lat: 42.3601, Lng: -71.0589}
)

func ptr[T any](v T) *T { return &v }

// seedStore builds a small portal:
//
//	job-01 Senior Engineer    eng   full-time acme   90000    5y newark
//	job-02 Sales Associate    sales part-time globex 40000    1y new york (description mentions an engineer)
//	job-03 Accountant         sales full-time acme   50000    2y no location
//	job-04 Backend Developer  eng   full-time globex 50000.01 3y philadelphia
//	job-05 Data Analyst       eng   part-time acme   30000    0y boston
func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	s.AddCompany(models.Company{ID: "acme", Name: "Acme"})
	s.AddCompany(models.Company{ID: "globex", Name: "Globex"})
	s.AddOccupation(models.Occupation{ID: "eng", Name: "Engineering"})
	s.AddOccupation(models.Occupation{ID: "sales", Name: "Sales"})
	s.AddContractType(models.ContractType{ID: "full-time", Name: "Full time"})
	s.AddContractType(models.ContractType{ID: "part-time", Name: "Part time"})

	for _, loc := range []models.GeoLocation{newYork, newark, philadelphia, boston} {
		loc := loc
		require.NoError(t, s.SaveGeoLocation(ctx, &loc))
	}

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	jobs := []models.JobPosting{
		{ID: "job-01", Name: "Senior Engineer", Description: "Own our platform", OccupationID: "eng", ContractTypeID: "full-time", CompanyID: "acme", Salary: 90000, Experience: 5, GeoLocationID: ptr(newark.ID)},
		{ID: "job-02", Name: "Sales Associate", Description: "We are looking for an engineer at heart", OccupationID: "sales", ContractTypeID: "part-time", CompanyID: "globex", Salary: 40000, Experience: 1, GeoLocationID: ptr(newYork.ID)},
		{ID: "job-03", Name: "Accountant", Description: "Numbers all day", OccupationID: "sales", ContractTypeID: "full-time", CompanyID: "acme", Salary: 50000, Experience: 2},
		{ID: "job-04", Name: "Backend Developer", Description: "APIs and queues", OccupationID: "eng", ContractTypeID: "full-time", CompanyID: "globex", Salary: 50000.01, Experience: 3, GeoLocationID: ptr(philadelphia.ID)},
		{ID: "job-05", Name: "Data Analyst", Description: "Dashboards", OccupationID: "eng", ContractTypeID: "part-time", CompanyID: "acme", Salary: 30000, Experience: 0, GeoLocationID: ptr(boston.ID)},
	}
	for i, job := range jobs {
		job := job
		job.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.SaveJob(ctx, &job))
	}

	return s
}

// seedBulk stores n unlocated postings for company acme.
func seedBulk(t *testing.T, n int) *memory.Store {
	t.Helper()
	s := memory.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, s.SaveJob(context.Background(), &models.JobPosting{
			ID:        fmt.Sprintf("bulk-%02d", i),
			Name:      fmt.Sprintf("Posting %d", i),
			CompanyID: "acme",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return s
}

func ids(jobs []models.JobPosting) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}
