package query

import (
	"strings"

	"jobsportal/services/jobs/internal/models"
)

type occupationIs string

func OccupationIs(id string) Predicate { return occupationIs(id) }

func (p occupationIs) Name() string { return "occupation" }

func (p occupationIs) SQL() (string, []any) {
	return "j.occupation_id = ?", []any{string(p)}
}

func (p occupationIs) Match(job *models.JobPosting) bool {
	return job.OccupationID == string(p)
}

type companyIs string

func CompanyIs(id string) Predicate { return companyIs(id) }

func (p companyIs) Name() string { return "company" }

func (p companyIs) SQL() (string, []any) {
	return "j.company_id = ?", []any{string(p)}
}

func (p companyIs) Match(job *models.JobPosting) bool {
	return job.CompanyID == string(p)
}

type contractTypeIn []string

// ContractTypeIn matches postings whose contract type is any of ids.
func ContractTypeIn(ids ...string) Predicate {
	set := make(contractTypeIn, len(ids))
	copy(set, ids)
	return set
}

func (p contractTypeIn) Name() string { return "contract_type" }

func (p contractTypeIn) SQL() (string, []any) {
	placeholders := make([]string, len(p))
	args := make([]any, len(p))
	for i, id := range p {
		placeholders[i] = "?"
		args[i] = id
	}
	return "j.contract_type_id IN (" + strings.Join(placeholders, ", ") + ")", args
}

func (p contractTypeIn) Match(job *models.JobPosting) bool {
	for _, id := range p {
		if job.ContractTypeID == id {
			return true
		}
	}
	return false
}

type experienceAtLeast int

func ExperienceAtLeast(years int) Predicate { return experienceAtLeast(years) }

func (p experienceAtLeast) Name() string { return "experience" }

func (p experienceAtLeast) SQL() (string, []any) {
	return "j.experience >= ?", []any{int32(p)}
}

func (p experienceAtLeast) Match(job *models.JobPosting) bool {
	return job.Experience >= int(p)
}

type salaryAtMost float64

func SalaryAtMost(max float64) Predicate { return salaryAtMost(max) }

func (p salaryAtMost) Name() string { return "salary" }

func (p salaryAtMost) SQL() (string, []any) {
	return "j.salary <= ?", []any{float64(p)}
}

func (p salaryAtMost) Match(job *models.JobPosting) bool {
	return job.Salary <= float64(p)
}

type textContains string

// TextContains matches postings whose name or description contains text,
// ignoring case.
func TextContains(text string) Predicate { return textContains(text) }

func (p textContains) Name() string { return "search" }

func (p textContains) SQL() (string, []any) {
	return "(positionCaseInsensitiveUTF8(j.name, ?) > 0 OR positionCaseInsensitiveUTF8(j.description, ?) > 0)",
		[]any{string(p), string(p)}
}

func (p textContains) Match(job *models.JobPosting) bool {
	needle := strings.ToLower(string(p))
	return strings.Contains(strings.ToLower(job.Name), needle) ||
		strings.Contains(strings.ToLower(job.Description), needle)
}

type idIs string

// IDIs matches a single posting.
func IDIs(id string) Predicate { return idIs(id) }

func (p idIs) Name() string { return "id" }

func (p idIs) SQL() (string, []any) {
	return "j.id = ?", []any{string(p)}
}

func (p idIs) Match(job *models.JobPosting) bool {
	return job.ID == string(p)
}
