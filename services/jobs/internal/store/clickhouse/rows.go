package clickhouse

import (
	"time"

	"jobsportal/services/jobs/internal/models"
)

// jobRow mirrors selectColumns. Joined columns are nullable.
type jobRow struct {
	ID               string
	CompanyID        string
	OccupationID     string
	ContractTypeID   string
	GeoLocationID    *string
	Name             string
	Description      string
	Salary           float64
	Experience       int32
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompanyName      *string
	CompanyLogo      *string
	OccupationName   *string
	ContractTypeName *string
	Lat              *float64
	Lng              *float64
	Distance         *float64
}

func (r *jobRow) targets(ranked bool) []any {
	dest := []any{
		&r.ID, &r.CompanyID, &r.OccupationID, &r.ContractTypeID, &r.GeoLocationID,
		&r.Name, &r.Description, &r.Salary, &r.Experience, &r.CreatedAt, &r.UpdatedAt,
		&r.CompanyName, &r.CompanyLogo, &r.OccupationName, &r.ContractTypeName, &r.Lat, &r.Lng,
	}
	if ranked {
		dest = append(dest, &r.Distance)
	}
	return dest
}

func (r *jobRow) posting() models.JobPosting {
	job := models.JobPosting{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		OccupationID:   r.OccupationID,
		ContractTypeID: r.ContractTypeID,
		GeoLocationID:  r.GeoLocationID,
		Name:           r.Name,
		Description:    r.Description,
		Salary:         r.Salary,
		Experience:     int(r.Experience),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Distance:       r.Distance,
	}

	if r.CompanyName != nil {
		job.Company = &models.Company{ID: r.CompanyID, Name: *r.CompanyName}
		if r.CompanyLogo != nil {
			job.Company.Logo = *r.CompanyLogo
		}
	}
	if r.OccupationName != nil {
		job.Occupation = &models.Occupation{ID: r.OccupationID, Name: *r.OccupationName}
	}
	if r.ContractTypeName != nil {
		job.ContractType = &models.ContractType{ID: r.ContractTypeID, Name: *r.ContractTypeName}
	}
	if r.GeoLocationID != nil && r.Lat != nil && r.Lng != nil {
		job.GeoLocation = &models.GeoLocation{ID: *r.GeoLocationID, Lat: *r.Lat, Lng: *r.Lng}
	}

	return job
}
