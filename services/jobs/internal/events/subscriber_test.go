package events

import (
	"context"
	"encoding/json"
	"testing"

	"jobsportal/services/jobs/internal/errors"
	"jobsportal/services/jobs/internal/processor"
	"jobsportal/services/jobs/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const refs = `"company_id":"5f0c1d2e-3a4b-4c5d-8e6f-7a8b9c0d1e2f",` +
	`"occupation_id":"6a1b2c3d-4e5f-4a6b-9c7d-8e9f0a1b2c3d",` +
	`"contract_type_id":"7b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e"`

type nopPublisher struct{}

func (nopPublisher) PublishGeoLocationChanged(ctx context.Context, id string) error { return nil }

func TestHandler_CommandLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	h := NewHandler(zap.NewNop(), nil, processor.NewJobProcessor(zap.NewNop(), store, nopPublisher{}))

	var created jobReply
	require.NoError(t, json.Unmarshal(h.handle(ctx, CreateSubject, []byte(`{
		`+refs+`,
		"name":"Engineer","salary":70000,"experience":2,"location":{"lat":10,"lng":20}
	}`)), &created))
	require.NotNil(t, created.Job)
	require.NotNil(t, created.Job.GeoLocation)
	id := created.Job.ID

	var updated jobReply
	require.NoError(t, json.Unmarshal(h.handle(ctx, UpdateSubject, []byte(`{
		"id":"`+id+`",`+refs+`,
		"name":"Lead Engineer","salary":90000,"experience":6
	}`)), &updated))
	require.NotNil(t, updated.Job)
	assert.Equal(t, "Lead Engineer", updated.Job.Name)

	var deleted jobReply
	require.NoError(t, json.Unmarshal(h.handle(ctx, DeleteSubject, []byte(`{"id":"`+id+`"}`)), &deleted))
	assert.Nil(t, deleted.Job)

	_, err := store.GetJob(ctx, id)
	assert.True(t, errors.Is(err, errors.ErrTypeNotFound))

	body := decodeError(t, h.handle(ctx, DeleteSubject, []byte(`{"id":"`+id+`"}`)))
	assert.Equal(t, errors.ErrTypeNotFound, body.Type)
}

func TestHandler_RejectsInvalidCommands(t *testing.T) {
	h := NewHandler(zap.NewNop(), nil, processor.NewJobProcessor(zap.NewNop(), memory.New(), nopPublisher{}))
	ctx := context.Background()

	body := decodeError(t, h.handle(ctx, CreateSubject, []byte(`{"name":"x"}`)))
	assert.Equal(t, errors.ErrTypeInvalidInput, body.Type)
	assert.Equal(t, "company_id is required", body.Message)

	body = decodeError(t, h.handle(ctx, CreateSubject, []byte(`{"company_id":"acme","name":"x"}`)))
	assert.Equal(t, errors.ErrTypeInvalidInput, body.Type)
	assert.Equal(t, `company_id "acme" is not a valid uuid`, body.Message)

	body = decodeError(t, h.handle(ctx, "jobs.archive", []byte(`{}`)))
	assert.Equal(t, errors.ErrTypeInvalidInput, body.Type)
}
