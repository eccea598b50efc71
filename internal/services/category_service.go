package services

import (
	"context"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/validator"
)

// categoryService keeps one shared taxonomy. A draft stores only its
// selected label path; the tree's selection is rebuilt from it on every
// request and never written back to the shared tree.
type categoryService struct {
	store     *draftStore
	validator *validator.Validator
	tree      *authoring.CategoryTree
	log       *ServiceLogger
}

func NewCategoryService(store *draftStore, v *validator.Validator, tree *authoring.CategoryTree, log *ServiceLogger) CategoryService {
	seeded := tree.Clone()
	seeded.ClearAll()
	return &categoryService{store: store, validator: v, tree: seeded, log: log}
}

// Tree returns the taxonomy with nothing selected.
func (s *categoryService) Tree() *CategoryTreeResponse {
	return newCategoryTreeResponse(s.tree.Clone(), 0)
}

// DraftCategory restores the draft's selection onto a copy of the tree.
func (s *categoryService) DraftCategory(ctx context.Context, draftID, userID string) (resp *CategoryTreeResponse, err error) {
	op := s.log.WithOperation(ctx, "draft_category", userID)
	defer func() { op.LogResult(draftID, err) }()

	draft, err := s.store.load(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}
	return newCategoryTreeResponse(s.restore(draft.CategoryPath), draft.Version), nil
}

// SelectPath selects the node named by a label path. A path that does not
// resolve leaves the selection as it was.
func (s *categoryService) SelectPath(ctx context.Context, target DraftTarget, req *SelectCategoryRequest, userID string) (resp *CategoryTreeResponse, err error) {
	op := s.log.WithOperation(ctx, "select_category", userID)
	defer func() { op.LogResult(target.DraftID, err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.updateSelection(ctx, target, userID, func(tree *authoring.CategoryTree) {
		tree.SelectPath(authoring.ParsePath(req.Path))
	})
}

// Toggle checks or unchecks a node. Unchecking clears the selection
// entirely; unknown node ids change nothing.
func (s *categoryService) Toggle(ctx context.Context, target DraftTarget, req *ToggleCategoryRequest, userID string) (resp *CategoryTreeResponse, err error) {
	op := s.log.WithOperation(ctx, "toggle_category", userID)
	defer func() { op.LogResult(target.DraftID, err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	return s.updateSelection(ctx, target, userID, func(tree *authoring.CategoryTree) {
		tree.ToggleCheck(req.NodeID, req.Checked)
	})
}

func (s *categoryService) updateSelection(ctx context.Context, target DraftTarget, userID string, change func(*authoring.CategoryTree)) (*CategoryTreeResponse, error) {
	var tree *authoring.CategoryTree
	draft, err := s.store.mutate(ctx, target, userID, func(d *models.Draft, _ *document) error {
		tree = s.restore(d.CategoryPath)
		before := tree.SelectedPath()
		change(tree)
		after := tree.SelectedPath()
		if after == before {
			return errUnchanged
		}
		d.CategoryPath = after
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newCategoryTreeResponse(tree, draft.Version), nil
}

func (s *categoryService) restore(path string) *authoring.CategoryTree {
	tree := s.tree.Clone()
	if path != "" {
		tree.SelectPath(authoring.ParsePath(path))
	}
	return tree
}

func newCategoryTreeResponse(tree *authoring.CategoryTree, version int) *CategoryTreeResponse {
	resp := &CategoryTreeResponse{
		Roots:        tree.Roots,
		SelectedPath: tree.SelectedPath(),
		Version:      version,
	}
	if id := tree.SelectedID(); id != "" {
		resp.SelectedIDs, _ = tree.PathToNode(id)
	}
	return resp
}
