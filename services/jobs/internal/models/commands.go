package models

// JobFields are the employer-editable attributes of a posting.
type JobFields struct {
	CompanyID      string    `json:"company_id"`
	OccupationID   string    `json:"occupation_id"`
	ContractTypeID string    `json:"contract_type_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Salary         float64   `json:"salary"`
	Experience     int       `json:"experience"`
	Location       *GeoPoint `json:"location,omitempty"`
}

type CreateJobCommand struct {
	JobFields
}

type UpdateJobCommand struct {
	ID string `json:"id"`
	JobFields
}

type DeleteJobCommand struct {
	ID string `json:"id"`
}

// GeoLocationChangedEvent announces that a stored location's coordinates changed.
type GeoLocationChangedEvent struct {
	ID string `json:"id"`
}
