package migrations

import "jobsportal/common/database/schema"

var CreateJobsTable = schema.Migration{
	Version:     1,
	Description: "Create jobs table",
	Up: `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID,
			company_id UUID,
			occupation_id UUID,
			contract_type_id UUID,
			geo_location_id Nullable(UUID),
			name String,
			description String,
			salary Float64,
			experience Int32,
			created_at DateTime,
			updated_at DateTime
		) ENGINE = ReplacingMergeTree(updated_at)
		PARTITION BY toYYYYMM(created_at)
		ORDER BY id
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS jobs`,
}
