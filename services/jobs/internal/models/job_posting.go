package models

import (
	"time"
)

type JobPosting struct {
	ID             string        `json:"id"`
	CompanyID      string        `json:"company_id"`
	Company        *Company      `json:"company,omitempty"`
	OccupationID   string        `json:"occupation_id"`
	Occupation     *Occupation   `json:"occupation,omitempty"`
	ContractTypeID string        `json:"contract_type_id"`
	ContractType   *ContractType `json:"contract_type,omitempty"`
	GeoLocationID  *string       `json:"geo_location_id,omitempty"`
	GeoLocation    *GeoLocation  `json:"geo_location,omitempty"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Salary         float64       `json:"salary"`
	Experience     int           `json:"experience"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Distance is set only on distance-ranked results, in miles.
	Distance *float64 `json:"distance,omitempty"`
}

// HasLocation reports whether the posting carries a usable coordinate.
func (j *JobPosting) HasLocation() bool {
	return j.GeoLocation != nil
}

type Company struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Logo          string  `json:"logo,omitempty"`
	GeoLocationID *string `json:"geo_location_id,omitempty"`
}

type Occupation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ContractType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Pagination describes one page of a paginated listing.
type Pagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

func NewPagination(total, perPage, currentPage int) Pagination {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	return Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
	}
}

type Ranges struct {
	SalaryMin     float64 `json:"salary_min"`
	SalaryMax     float64 `json:"salary_max"`
	ExperienceMin int     `json:"experience_min"`
	ExperienceMax int     `json:"experience_max"`
}
