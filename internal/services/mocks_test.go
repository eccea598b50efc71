package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/events"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories/memory"
)

// MockDraftRepository is a mock implementation of DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*models.Draft); ok {
		return d.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDraftRepository) List(ctx context.Context, creatorID string, filters repositories.DraftFilters) ([]*models.Draft, int64, error) {
	args := m.Called(ctx, creatorID, filters)
	return args.Get(0).([]*models.Draft), args.Get(1).(int64), args.Error(2)
}

func (m *MockDraftRepository) GetStats(ctx context.Context, creatorID string) (*repositories.DraftStats, error) {
	args := m.Called(ctx, creatorID)
	if s, ok := args.Get(0).(*repositories.DraftStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingObserver collects operation outcomes.
type recordingObserver struct {
	statuses map[string][]string
}

func (o *recordingObserver) ObserveOperation(operation, status string, _ time.Duration) {
	if o.statuses == nil {
		o.statuses = make(map[string][]string)
	}
	o.statuses[operation] = append(o.statuses[operation], status)
}

type testEnv struct {
	services  ServiceManager
	repo      *memory.DraftMemory
	publisher *events.MockEventPublisher
	observer  *recordingObserver
}

const (
	testUser  = "author-1"
	otherUser = "author-2"
	testPath  = "TOEIC > Reading > Part: Incomplete Sentences"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:      memory.NewDraftMemory(),
		publisher: events.NewMockEventPublisher(discardLogger()),
		observer:  &recordingObserver{},
	}
	env.services = NewServiceManager(Dependencies{
		Repo:      env.repo,
		Publisher: env.publisher,
		Shuffler:  authoring.NewSeededShuffler(7),
		Logger:    discardLogger(),
		Observer:  env.observer,
	})
	return env
}

func (e *testEnv) create(t *testing.T, qt models.QuestionType) *DraftResponse {
	t.Helper()
	resp, err := e.services.Draft().Create(context.Background(), &CreateDraftRequest{
		Title:        "Draft " + string(qt),
		QuestionType: qt,
		QuestionSettings: models.QuestionSettings{
			CategoryPath: testPath,
			Difficulty:   models.DifficultyMedium,
			Price:        1500,
		},
	}, testUser)
	if err != nil {
		t.Fatalf("create %s draft: %v", qt, err)
	}
	return resp
}

func target(d *DraftResponse) DraftTarget {
	return DraftTarget{DraftID: d.ID}
}
