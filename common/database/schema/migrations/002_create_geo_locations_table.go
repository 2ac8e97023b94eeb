package migrations

import "jobsportal/common/database/schema"

var CreateGeoLocationsTable = schema.Migration{
	Version:     2,
	Description: "Create geo_locations table",
	Up: `
		CREATE TABLE IF NOT EXISTS geo_locations (
			id UUID,
			lat Float64,
			lng Float64,
			updated_at DateTime
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY id
	`,
	Down: `DROP TABLE IF EXISTS geo_locations`,
}
