package parser

import (
	"fmt"
	"testing"

	"jobsportal/services/jobs/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validID      = "0b7a3c56-7f0c-4c8e-9d3e-1f2a3b4c5d6e"
	companyID    = "5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e2f"
	occupationID = "6a1b2c3d-4e5f-4a6b-9c7d-8e9f0a1b2c3d"
	contractID   = "7b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"
)

// refs renders the three reference ids followed by extra JSON members.
func refs(extra string) string {
	body := fmt.Sprintf(`"company_id":%q,"occupation_id":%q,"contract_type_id":%q`, companyID, occupationID, contractID)
	if extra != "" {
		body += "," + extra
	}
	return "{" + body + "}"
}

func TestParseCreateJob(t *testing.T) {
	t.Run("valid with location", func(t *testing.T) {
		cmd, err := ParseCreateJob([]byte(refs(`"name": "  Backend Engineer ", "description": "Go services",
			"salary": 85000, "experience": 3, "location": {"lat": 40.7128, "lng": -74.006}`)))
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", cmd.Name)
		assert.Equal(t, companyID, cmd.CompanyID)
		assert.Equal(t, 85000.0, cmd.Salary)
		assert.Equal(t, 3, cmd.Experience)
		require.NotNil(t, cmd.Location)
		assert.Equal(t, 40.7128, cmd.Location.Lat)
	})

	t.Run("valid without location", func(t *testing.T) {
		cmd, err := ParseCreateJob([]byte(refs(`"name":"Clerk"`)))
		require.NoError(t, err)
		assert.Nil(t, cmd.Location)
	})

	invalid := map[string]string{
		"malformed json":      `{"company_id":`,
		"missing company":     fmt.Sprintf(`{"occupation_id":%q,"contract_type_id":%q,"name":"x"}`, occupationID, contractID),
		"missing occupation":  fmt.Sprintf(`{"company_id":%q,"contract_type_id":%q,"name":"x"}`, companyID, contractID),
		"missing contract":    fmt.Sprintf(`{"company_id":%q,"occupation_id":%q,"name":"x"}`, companyID, occupationID),
		"company not a uuid":  fmt.Sprintf(`{"company_id":"acme","occupation_id":%q,"contract_type_id":%q,"name":"x"}`, occupationID, contractID),
		"occupation not uuid": fmt.Sprintf(`{"company_id":%q,"occupation_id":"eng","contract_type_id":%q,"name":"x"}`, companyID, contractID),
		"contract not uuid":   fmt.Sprintf(`{"company_id":%q,"occupation_id":%q,"contract_type_id":"full-time","name":"x"}`, companyID, occupationID),
		"blank name":          refs(`"name":"   "`),
		"negative salary":     refs(`"name":"x","salary":-1`),
		"negative experience": refs(`"name":"x","experience":-2`),
		"latitude too big":    refs(`"name":"x","location":{"lat":91,"lng":0}`),
		"longitude too low":   refs(`"name":"x","location":{"lat":0,"lng":-180.5}`),
	}
	for name, payload := range invalid {
		t.Run(name, func(t *testing.T) {
			cmd, err := ParseCreateJob([]byte(payload))
			require.Error(t, err)
			assert.Nil(t, cmd)
			assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
		})
	}
}

func TestParseCreateJob_ReferenceErrorNamesField(t *testing.T) {
	_, err := ParseCreateJob([]byte(fmt.Sprintf(`{"company_id":"acme","occupation_id":%q,"contract_type_id":%q,"name":"x"}`, occupationID, contractID)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `company_id "acme" is not a valid uuid`)
}

func TestParseUpdateJob(t *testing.T) {
	cmd, err := ParseUpdateJob([]byte(refs(`"id":"` + validID + `","name":"x"`)))
	require.NoError(t, err)
	assert.Equal(t, validID, cmd.ID)

	_, err = ParseUpdateJob([]byte(refs(`"name":"x"`)))
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))

	_, err = ParseUpdateJob([]byte(`{"id":"` + validID + `","name":"x"}`))
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
}

func TestParseDeleteJob(t *testing.T) {
	cmd, err := ParseDeleteJob([]byte(`{"id":"` + validID + `"}`))
	require.NoError(t, err)
	assert.Equal(t, validID, cmd.ID)

	_, err = ParseDeleteJob([]byte(`{"id":"not-a-uuid"}`))
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))

	_, err = ParseDeleteJob([]byte(`{}`))
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
}
