package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/cache"
	"github.com/SAP-F-2025/question-authoring-service/internal/events"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"github.com/SAP-F-2025/question-authoring-service/internal/validator"
)

// ===== SERVICE INTERFACES =====

type DraftService interface {
	Create(ctx context.Context, req *CreateDraftRequest, userID string) (*DraftResponse, error)
	Get(ctx context.Context, id, userID string) (*DraftResponse, error)
	List(ctx context.Context, userID string, filters repositories.DraftFilters) (*DraftListResponse, error)
	Update(ctx context.Context, target DraftTarget, req *UpdateDraftRequest, userID string) (*DraftResponse, error)
	Delete(ctx context.Context, id, userID string) error
	Publish(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error)
	Preview(ctx context.Context, id, userID string) (*PreviewResponse, error)
	Stats(ctx context.Context, userID string) (*DraftStats, error)
}

// EditorService applies one editor interaction to a draft's content.
type EditorService interface {
	SetText(ctx context.Context, target DraftTarget, req *SetTextRequest, userID string) (*DraftResponse, error)
	SetFocus(ctx context.Context, target DraftTarget, req *FocusRequest, userID string) (*DraftResponse, error)

	AddBlank(ctx context.Context, target DraftTarget, req *SelectionRequest, userID string) (*DraftResponse, error)
	RemoveBlank(ctx context.Context, target DraftTarget, blankID int64, userID string) (*DraftResponse, error)

	Mix(ctx context.Context, target DraftTarget, req *SelectionRequest, userID string) (*DraftResponse, error)
	Remix(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error)

	AddOption(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error)
	DeleteOption(ctx context.Context, target DraftTarget, optionID, userID string) (*DraftResponse, error)
	AddInput(ctx context.Context, target DraftTarget, optionID string, req *AddInputRequest, userID string) (*DraftResponse, error)
	SetInputText(ctx context.Context, target DraftTarget, optionID, inputID string, req *SetInputTextRequest, userID string) (*DraftResponse, error)
	DeleteInput(ctx context.Context, target DraftTarget, optionID, inputID, userID string) (*DraftResponse, error)
	ToggleCorrect(ctx context.Context, target DraftTarget, optionID, userID string) (*DraftResponse, error)

	UpdateGroup(ctx context.Context, target DraftTarget, req *UpdateGroupRequest, userID string) (*DraftResponse, error)
	AddGroupQuestion(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error)
	DeleteGroupQuestion(ctx context.Context, target DraftTarget, questionID, userID string) (*DraftResponse, error)
	ChangeGroupQuestionType(ctx context.Context, target DraftTarget, questionID string, req *ChangeTypeRequest, userID string) (*DraftResponse, error)
	ReorderGroupQuestions(ctx context.Context, target DraftTarget, req *ReorderRequest, userID string) (*DraftResponse, error)
}

type CategoryService interface {
	Tree() *CategoryTreeResponse
	DraftCategory(ctx context.Context, draftID, userID string) (*CategoryTreeResponse, error)
	SelectPath(ctx context.Context, target DraftTarget, req *SelectCategoryRequest, userID string) (*CategoryTreeResponse, error)
	Toggle(ctx context.Context, target DraftTarget, req *ToggleCategoryRequest, userID string) (*CategoryTreeResponse, error)
}

type ExportService interface {
	ExportDraft(ctx context.Context, draftID, format, userID string) (*ExportResult, error)
	ExportDrafts(ctx context.Context, userID string, filters repositories.DraftFilters, format string) (*ExportResult, error)
}

type ServiceManager interface {
	Draft() DraftService
	Editor() EditorService
	Category() CategoryService
	Export() ExportService
}

// ===== WIRING =====

type Dependencies struct {
	Repo       repositories.DraftRepository
	Cache      cache.CacheService
	CacheTTL   time.Duration
	Publisher  events.EventPublisher
	Validator  *validator.Validator
	Categories *authoring.CategoryTree
	Shuffler   authoring.Shuffler
	Logger     *slog.Logger
	Observer   OperationObserver
}

type serviceManager struct {
	draft    DraftService
	editor   EditorService
	category CategoryService
	export   ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Categories == nil {
		deps.Categories = authoring.DefaultCategoryTree()
	}
	if deps.Shuffler == nil {
		deps.Shuffler = authoring.DefaultShuffler()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New(deps.Categories)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	newLog := func(component string) *ServiceLogger {
		return NewServiceLogger(deps.Logger, LogConfig{Service: "question-authoring", Component: component}, deps.Observer)
	}
	store := newDraftStore(deps.Repo, deps.Cache, deps.CacheTTL, newLog("store"))

	return &serviceManager{
		draft:    NewDraftService(store, deps.Validator, deps.Categories, deps.Publisher, newLog("draft")),
		editor:   NewEditorService(store, deps.Validator, deps.Shuffler, newLog("editor")),
		category: NewCategoryService(store, deps.Validator, deps.Categories, newLog("category")),
		export:   NewExportService(store, newLog("export")),
	}
}

func (m *serviceManager) Draft() DraftService       { return m.draft }
func (m *serviceManager) Editor() EditorService     { return m.editor }
func (m *serviceManager) Category() CategoryService { return m.category }
func (m *serviceManager) Export() ExportService     { return m.export }
