package clickhouse

import (
	"strings"

	"jobsportal/services/jobs/internal/geo"
	"jobsportal/services/jobs/internal/query"
)

const selectColumns = `j.id, j.company_id, j.occupation_id, j.contract_type_id, j.geo_location_id,
	j.name, j.description, j.salary, j.experience, j.created_at, j.updated_at,
	c.name, c.logo, o.name, ct.name, g.lat, g.lng`

const fromJoins = `
FROM jobs AS j FINAL
LEFT JOIN (SELECT id, name, logo FROM companies FINAL) AS c ON c.id = j.company_id
LEFT JOIN (SELECT id, name FROM occupations FINAL) AS o ON o.id = j.occupation_id
LEFT JOIN (SELECT id, name FROM contract_types FINAL) AS ct ON ct.id = j.contract_type_id
LEFT JOIN (SELECT id, lat, lng FROM geo_locations FINAL) AS g ON g.id = j.geo_location_id`

// Unmatched joins must yield NULL rather than column defaults so that a
// missing location is distinguishable from (0, 0).
const settings = "\nSETTINGS join_use_nulls = 1"

// selectBody renders the projection, joins and WHERE clause of q.
func selectBody(q query.Query) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	b.WriteString(selectColumns)

	// greatCircleDistance is not bit-compatible with geo.DistanceMiles; see
	// its doc for the boundary behavior.
	dist, ranked := q.Distance()
	if ranked {
		b.WriteString(",\n\tgreatCircleDistance(g.lng, g.lat, ?, ?) / ? AS distance")
		args = append(args, dist.Origin.Lng, dist.Origin.Lat, geo.MetersPerMile)
	}

	b.WriteString(fromJoins)

	var conds []string
	for _, p := range q.Predicates() {
		sql, pargs := p.SQL()
		conds = append(conds, sql)
		args = append(args, pargs...)
	}
	if ranked {
		conds = append(conds, "j.geo_location_id IS NOT NULL", "distance < ?")
		args = append(args, dist.Max)
	}

	if len(conds) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(conds, "\n\tAND "))
	}

	return b.String(), args
}

// buildFind renders the ordered, windowed select for q. A non-positive limit
// renders no LIMIT clause.
func buildFind(q query.Query, limit, offset int) (string, []any) {
	body, args := selectBody(q)

	var b strings.Builder
	b.WriteString(body)
	if q.Ranked() {
		b.WriteString("\nORDER BY distance ASC, j.id ASC")
	} else {
		b.WriteString("\nORDER BY j.created_at ASC, j.id ASC")
	}

	if limit > 0 {
		b.WriteString("\nLIMIT ?")
		args = append(args, limit)
		if offset > 0 {
			b.WriteString(" OFFSET ?")
			args = append(args, offset)
		}
	}

	b.WriteString(settings)
	return b.String(), args
}

func buildCount(q query.Query) (string, []any) {
	body, args := selectBody(q)
	return "SELECT count() FROM (\n" + body + "\n)" + settings, args
}
