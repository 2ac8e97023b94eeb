package search

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/geo"
	"jobsportal/services/jobs/internal/models"
	"jobsportal/services/jobs/internal/query"
	"jobsportal/services/jobs/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var defaultOptions = Options{MaxResults: 100, MilesRadius: 100, PageSize: 15}

func newSearcher(store *memory.Store, opts Options) *Searcher {
	resolver := geo.NewResolver(store, nil, time.Hour, zap.NewNop())
	return NewSearcher(resolver, store, opts, zap.NewNop())
}

func search(t *testing.T, s *Searcher, c models.SearchCriteria) *Result {
	t.Helper()
	res, err := s.Search(context.Background(), Request{Criteria: c})
	require.NoError(t, err)
	return res
}

func TestSearch_UnsetCriteriaReturnsEverythingUpToCap(t *testing.T) {
	store := seedStore(t)

	res := search(t, newSearcher(store, defaultOptions), models.SearchCriteria{})
	assert.Equal(t, []string{"job-01", "job-02", "job-03", "job-04", "job-05"}, ids(res.Jobs))
	assert.Nil(t, res.Pagination)
	assert.False(t, res.Ranked)

	capped := defaultOptions
	capped.MaxResults = 3
	res = search(t, newSearcher(store, capped), models.SearchCriteria{})
	assert.Equal(t, []string{"job-01", "job-02", "job-03"}, ids(res.Jobs))
}

func TestSearch_OccupationSoundAndComplete(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{OccupationID: "eng"})
	assert.ElementsMatch(t, []string{"job-01", "job-04", "job-05"}, ids(res.Jobs))
	for _, job := range res.Jobs {
		assert.Equal(t, "eng", job.OccupationID)
		require.NotNil(t, job.Occupation)
		assert.Equal(t, "Engineering", job.Occupation.Name)
	}
}

func TestSearch_ContractTypeMembership(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{ContractTypeIDs: []string{"part-time"}})
	assert.ElementsMatch(t, []string{"job-02", "job-05"}, ids(res.Jobs))

	res = search(t, s, models.SearchCriteria{ContractTypeIDs: []string{"part-time", "full-time"}})
	assert.Len(t, res.Jobs, 5)
}

func TestSearch_MinimumExperience(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{MinExperience: 3})
	assert.ElementsMatch(t, []string{"job-01", "job-04"}, ids(res.Jobs))
}

func TestSearch_SalaryMaxIsInclusive(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{SalaryRange: &models.SalaryRange{Max: ptr(50000.0)}})
	assert.ElementsMatch(t, []string{"job-02", "job-03", "job-05"}, ids(res.Jobs))
	for _, job := range res.Jobs {
		assert.LessOrEqual(t, job.Salary, 50000.0)
	}

	res = search(t, s, models.SearchCriteria{
		CompanyID:   "acme",
		SalaryRange: &models.SalaryRange{Max: ptr(50000.0)},
	})
	assert.ElementsMatch(t, []string{"job-03", "job-05"}, ids(res.Jobs))
}

func TestSearch_SalaryMinIsNotApplied(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{SalaryRange: &models.SalaryRange{Min: ptr(80000.0)}})
	assert.Len(t, res.Jobs, 5)
}

func TestSearch_TextMatchesNameOrDescription(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{SearchText: "engineer"})
	assert.ElementsMatch(t, []string{"job-01", "job-02"}, ids(res.Jobs))

	res = search(t, s, models.SearchCriteria{SearchText: "ENGINEER", CompanyID: "globex"})
	assert.Equal(t, []string{"job-02"}, ids(res.Jobs))
}

func TestSearch_EmptyTextIsNoOp(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	unset := search(t, s, models.SearchCriteria{OccupationID: "sales"})
	empty := search(t, s, models.SearchCriteria{OccupationID: "sales", SearchText: ""})

	assert.Equal(t, ids(unset.Jobs), ids(empty.Jobs))
	assert.Len(t, empty.Jobs, 2)
}

func TestSearch_RankedByDistance(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res, err := s.Search(context.Background(), Request{
		Criteria: models.SearchCriteria{LocationID: newYork.ID},
		Mode:     ModePaginated,
	})
	require.NoError(t, err)

	assert.True(t, res.Ranked)
	assert.Nil(t, res.Pagination, "location searches are capped")
	assert.Equal(t, []string{"job-02", "job-01", "job-04"}, ids(res.Jobs))

	prev := 0.0
	for _, job := range res.Jobs {
		require.NotNil(t, job.Distance)
		require.NotNil(t, job.GeoLocation)
		assert.Less(t, *job.Distance, defaultOptions.MilesRadius)
		assert.GreaterOrEqual(t, *job.Distance, prev)
		prev = *job.Distance
	}
	assert.InDelta(t, 0, *res.Jobs[0].Distance, 1e-9)
}

func TestSearch_RadiusIsStrict(t *testing.T) {
	store := seedStore(t)
	exact := geo.DistanceMiles(newYork.Point(), newark.Point())

	opts := defaultOptions
	opts.MilesRadius = exact
	res := search(t, newSearcher(store, opts), models.SearchCriteria{LocationID: newYork.ID})
	assert.Equal(t, []string{"job-02"}, ids(res.Jobs))
}

func TestSearch_UnlocatedPostingsNeverRanked(t *testing.T) {
	opts := defaultOptions
	opts.MilesRadius = 100000
	s := newSearcher(seedStore(t), opts)

	res := search(t, s, models.SearchCriteria{LocationID: newYork.ID, OccupationID: "sales"})
	assert.Equal(t, []string{"job-02"}, ids(res.Jobs))

	res = search(t, s, models.SearchCriteria{LocationID: newYork.ID})
	assert.NotContains(t, ids(res.Jobs), "job-03")
	assert.Len(t, res.Jobs, 4)
}

func TestSearch_UnknownLocationAborts(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res, err := s.Search(context.Background(), Request{
		Criteria: models.SearchCriteria{LocationID: "nowhere", OccupationID: "eng"},
	})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeNotFound))
}

func TestSearch_Paginated(t *testing.T) {
	s := newSearcher(seedBulk(t, 20), defaultOptions)

	res, err := s.Search(context.Background(), Request{Mode: ModePaginated, Page: 2})
	require.NoError(t, err)

	require.NotNil(t, res.Pagination)
	assert.Len(t, res.Jobs, 5)
	assert.Equal(t, 20, res.Pagination.Total)
	assert.Equal(t, 2, res.Pagination.LastPage)
}

func TestAllJobsAndCompanyJobs(t *testing.T) {
	ctx := context.Background()
	s := newSearcher(seedStore(t), defaultOptions)

	all, err := s.AllJobs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all.Jobs, 5)
	require.NotNil(t, all.Pagination)
	assert.Equal(t, 5, all.Pagination.Total)

	acme, err := s.CompanyJobs(ctx, "acme", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-01", "job-03", "job-05"}, ids(acme.Jobs))
	for _, job := range acme.Jobs {
		require.NotNil(t, job.Company)
		assert.Equal(t, "Acme", job.Company.Name)
	}

	_, err = s.CompanyJobs(ctx, "", 1)
	assert.True(t, errors.Is(err, errors.ErrTypeInvalidInput))
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	res := search(t, s, models.SearchCriteria{OccupationID: "astronaut"})
	assert.NotNil(t, res.Jobs)
	assert.Empty(t, res.Jobs)
}

func TestRanges(t *testing.T) {
	s := newSearcher(seedStore(t), defaultOptions)

	r, err := s.Ranges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Ranges{SalaryMin: 30000, SalaryMax: 90000, ExperienceMin: 0, ExperienceMax: 5}, r)
}

type failingStore struct {
	*memory.Store
}

func (failingStore) FindJobs(ctx context.Context, q query.Query, limit, offset int) ([]models.JobPosting, error) {
	return nil, errors.Storage("query jobs", stderrors.New("connection reset"))
}

func (failingStore) CountJobs(ctx context.Context, q query.Query) (int, error) {
	return 0, errors.Storage("count jobs", stderrors.New("connection reset"))
}

func TestSearch_StorageErrorsPropagate(t *testing.T) {
	store := failingStore{Store: seedStore(t)}
	resolver := geo.NewResolver(store, nil, time.Hour, zap.NewNop())
	s := NewSearcher(resolver, store, defaultOptions, zap.NewNop())

	for _, mode := range []Mode{ModeCapped, ModePaginated} {
		t.Run(mode.String(), func(t *testing.T) {
			res, err := s.Search(context.Background(), Request{Mode: mode})
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrTypeStorage))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCapped, m)

	m, err = ParseMode("paginated")
	require.NoError(t, err)
	assert.Equal(t, ModePaginated, m)

	_, err = ParseMode("sideways")
	assert.Error(t, err)
}
