package migrations

import "jobsportal/common/database/schema"

var CreateCompaniesTable = schema.Migration{
	Version:     3,
	Description: "Create companies table",
	Up: `
		CREATE TABLE IF NOT EXISTS companies (
			id UUID,
			name String,
			logo String,
			geo_location_id Nullable(UUID),
			updated_at DateTime
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY id
	`,
	Down: `DROP TABLE IF EXISTS companies`,
}
