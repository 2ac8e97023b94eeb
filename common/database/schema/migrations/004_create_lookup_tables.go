package migrations

import "jobsportal/common/database/schema"

var CreateOccupationsTable = schema.Migration{
	Version:     4,
	Description: "Create occupations table",
	Up: `
		CREATE TABLE IF NOT EXISTS occupations (
			id UUID,
			name String
		) ENGINE = ReplacingMergeTree()
		ORDER BY id
	`,
	Down: `DROP TABLE IF EXISTS occupations`,
}

var CreateContractTypesTable = schema.Migration{
	Version:     5,
	Description: "Create contract_types table",
	Up: `
		CREATE TABLE IF NOT EXISTS contract_types (
			id UUID,
			name String
		) ENGINE = ReplacingMergeTree()
		ORDER BY id
	`,
	Down: `DROP TABLE IF EXISTS contract_types`,
}

// All lists every migration in version order.
var All = []schema.Migration{
	CreateJobsTable,
	CreateGeoLocationsTable,
	CreateCompaniesTable,
	CreateOccupationsTable,
	CreateContractTypesTable,
}
