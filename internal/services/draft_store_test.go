package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/cache"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
)

func newStoreWithMock(repo *MockDraftRepository) *draftStore {
	log := NewServiceLogger(discardLogger(), LogConfig{Service: "test", Component: "store"}, nil)
	return newDraftStore(repo, nil, time.Minute, log)
}

func subjectiveDraft(t *testing.T, version int) *models.Draft {
	t.Helper()
	content, err := json.Marshal(authoring.Content{Payload: &authoring.Subjective{Stem: "v"}})
	require.NoError(t, err)
	return &models.Draft{
		ID:        "d1",
		Type:      models.Subjective,
		Status:    models.DraftStatusEditing,
		CreatedBy: testUser,
		Content:   content,
		Version:   version,
	}
}

func TestDraftStore_MutateRetriesLostRace(t *testing.T) {
	repo := new(MockDraftRepository)
	store := newStoreWithMock(repo)

	repo.On("GetByID", mock.Anything, "d1").Return(subjectiveDraft(t, 1), nil).Once()
	repo.On("GetByID", mock.Anything, "d1").Return(subjectiveDraft(t, 2), nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *models.Draft) bool { return d.Version == 1 })).
		Return(repositories.ErrVersionConflict).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *models.Draft) bool { return d.Version == 2 })).
		Return(nil).Once()

	calls := 0
	draft, err := store.mutate(context.Background(), DraftTarget{DraftID: "d1"}, testUser, func(_ *models.Draft, doc *document) error {
		calls++
		return authoring.ApplyText(doc.Content.Payload, authoring.FieldStem, "edited")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, draft.Version)
	repo.AssertExpectations(t)
}

func TestDraftStore_MutateGivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := new(MockDraftRepository)
	store := newStoreWithMock(repo)

	repo.On("GetByID", mock.Anything, "d1").Return(subjectiveDraft(t, 1), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(repositories.ErrVersionConflict)

	_, err := store.mutate(context.Background(), DraftTarget{DraftID: "d1"}, testUser, func(*models.Draft, *document) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrDraftConflict)
	repo.AssertNumberOfCalls(t, "Update", maxMutationAttempts)
}

func TestDraftStore_MutateWithExpectedVersionDoesNotRetry(t *testing.T) {
	repo := new(MockDraftRepository)
	store := newStoreWithMock(repo)

	repo.On("GetByID", mock.Anything, "d1").Return(subjectiveDraft(t, 4), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(repositories.ErrVersionConflict)

	_, err := store.mutate(context.Background(), DraftTarget{DraftID: "d1", ExpectedVersion: 4}, testUser, func(*models.Draft, *document) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrDraftConflict)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestDraftStore_MutateFailureDoesNotSave(t *testing.T) {
	repo := new(MockDraftRepository)
	store := newStoreWithMock(repo)

	repo.On("GetByID", mock.Anything, "d1").Return(subjectiveDraft(t, 1), nil)

	_, err := store.mutate(context.Background(), DraftTarget{DraftID: "d1"}, testUser, func(*models.Draft, *document) error {
		return authoring.ErrMinimumOptions
	})
	requireRule(t, err, "option_minimum")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDraftStore_LoadErrors(t *testing.T) {
	repo := new(MockDraftRepository)
	store := newStoreWithMock(repo)

	repo.On("GetByID", mock.Anything, "gone").Return(nil, repositories.ErrNotFound)
	repo.On("GetByID", mock.Anything, "broken").Return(nil, errors.New("connection reset"))

	_, err := store.load(context.Background(), "gone", testUser)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = store.load(context.Background(), "broken", testUser)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "connection reset")
}

// memoryCache is a map-backed CacheService for exercising the cache path.
type memoryCache struct {
	entries map[string][]byte
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error { return nil }

func TestDraftStore_CacheKeepsSequence(t *testing.T) {
	repo := new(MockDraftRepository)
	c := &memoryCache{entries: make(map[string][]byte)}
	log := NewServiceLogger(discardLogger(), LogConfig{}, nil)
	store := newDraftStore(repo, c, time.Minute, log)

	d := subjectiveDraft(t, 3)
	d.Sequence = 17
	repo.On("GetByID", mock.Anything, "d1").Return(d, nil).Once()

	first, err := store.load(context.Background(), "d1", testUser)
	require.NoError(t, err)
	second, err := store.load(context.Background(), "d1", testUser)
	require.NoError(t, err)

	assert.Equal(t, int64(17), first.Sequence)
	assert.Equal(t, int64(17), second.Sequence)
	assert.Contains(t, c.entries, cache.DraftKey("d1"))
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}
