// Package parser decodes and validates job management commands.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/models"

	"github.com/google/uuid"
)

func ParseCreateJob(data []byte) (*models.CreateJobCommand, error) {
	var cmd models.CreateJobCommand
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	if err := validateFields(&cmd.JobFields); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func ParseUpdateJob(data []byte) (*models.UpdateJobCommand, error) {
	var cmd models.UpdateJobCommand
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	if err := validateID(cmd.ID); err != nil {
		return nil, err
	}
	if err := validateFields(&cmd.JobFields); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func ParseDeleteJob(data []byte) (*models.DeleteJobCommand, error) {
	var cmd models.DeleteJobCommand
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	if err := validateID(cmd.ID); err != nil {
		return nil, err
	}
	return &cmd, nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.InvalidInput("malformed command payload", err)
	}
	return nil
}

func validateID(id string) error {
	return validateUUID("id", id)
}

func validateUUID(field, value string) error {
	if value == "" {
		return errors.InvalidInput(field+" is required", nil)
	}
	if _, err := uuid.Parse(value); err != nil {
		return errors.InvalidInput(fmt.Sprintf("%s %q is not a valid uuid", field, value), err)
	}
	return nil
}

// validateFields trims text fields in place.
func validateFields(f *models.JobFields) error {
	f.CompanyID = strings.TrimSpace(f.CompanyID)
	f.OccupationID = strings.TrimSpace(f.OccupationID)
	f.ContractTypeID = strings.TrimSpace(f.ContractTypeID)
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)

	references := []struct {
		field, value string
	}{
		{"company_id", f.CompanyID},
		{"occupation_id", f.OccupationID},
		{"contract_type_id", f.ContractTypeID},
	}
	for _, r := range references {
		if err := validateUUID(r.field, r.value); err != nil {
			return err
		}
	}
	if f.Name == "" {
		return errors.InvalidInput("name is required", nil)
	}

	if f.Salary < 0 {
		return errors.InvalidInput(fmt.Sprintf("salary must not be negative, got %g", f.Salary), nil)
	}
	if f.Experience < 0 {
		return errors.InvalidInput(fmt.Sprintf("experience must not be negative, got %d", f.Experience), nil)
	}

	if loc := f.Location; loc != nil {
		if loc.Lat < -90 || loc.Lat > 90 {
			return errors.InvalidInput(fmt.Sprintf("latitude %g out of range", loc.Lat), nil)
		}
		if loc.Lng < -180 || loc.Lng > 180 {
			return errors.InvalidInput(fmt.Sprintf("longitude %g out of range", loc.Lng), nil)
		}
	}

	return nil
}
