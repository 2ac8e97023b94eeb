package search

import (
	"strings"

	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"
)

// A criterion inspects one dimension of the criteria and yields at most one
// predicate. Criteria never look at each other, so their order is irrelevant.
type criterion func(models.SearchCriteria) (query.Predicate, bool)

var criteria = []criterion{
	byOccupation,
	byCompany,
	byContractTypes,
	byExperience,
	byMaxSalary,
	byText,
}

// BuildFilteredQuery composes the conjunctive filter for c. Unset
// dimensions contribute nothing. The result carries no ordering or limit.
func BuildFilteredQuery(c models.SearchCriteria) query.Query {
	q := query.New()
	for _, apply := range criteria {
		if p, ok := apply(c); ok {
			q = q.Where(p)
		}
	}
	return q
}

func byOccupation(c models.SearchCriteria) (query.Predicate, bool) {
	if c.OccupationID == "" {
		return nil, false
	}
	return query.OccupationIs(c.OccupationID), true
}

func byCompany(c models.SearchCriteria) (query.Predicate, bool) {
	if c.CompanyID == "" {
		return nil, false
	}
	return query.CompanyIs(c.CompanyID), true
}

func byContractTypes(c models.SearchCriteria) (query.Predicate, bool) {
	var ids []string
	for _, id := range c.ContractTypeIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, false
	}
	return query.ContractTypeIn(ids...), true
}

// Experience is non-negative, so a zero threshold would match everything.
func byExperience(c models.SearchCriteria) (query.Predicate, bool) {
	if c.MinExperience <= 0 {
		return nil, false
	}
	return query.ExperienceAtLeast(c.MinExperience), true
}

// Only the upper bound filters; the lower bound is informational.
func byMaxSalary(c models.SearchCriteria) (query.Predicate, bool) {
	if c.SalaryRange == nil || c.SalaryRange.Max == nil {
		return nil, false
	}
	return query.SalaryAtMost(*c.SalaryRange.Max), true
}

func byText(c models.SearchCriteria) (query.Predicate, bool) {
	text := strings.TrimSpace(c.SearchText)
	if text == "" {
		return nil, false
	}
	return query.TextContains(text), true
}
