package models

// SearchCriteria is a sparse set of search constraints. Zero values mean
// "unconstrained" on that dimension.
type SearchCriteria struct {
	OccupationID    string       `json:"occupation_id,omitempty"`
	CompanyID       string       `json:"company_id,omitempty"`
	ContractTypeIDs []string     `json:"contract_type_ids,omitempty"`
	LocationID      string       `json:"location_id,omitempty"`
	SearchText      string       `json:"search,omitempty"`
	MinExperience   int          `json:"experience,omitempty"`
	SalaryRange     *SalaryRange `json:"salary_range,omitempty"`
}

// SalaryRange bounds salary. Only Max is used for filtering; Min is carried
// for display.
type SalaryRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}
