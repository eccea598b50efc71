package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	apperrors "github.com/SAP-F-2025/question-authoring-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Draft specific errors
	ErrDraftNotFound     = errors.New("draft not found")
	ErrDraftAccessDenied = errors.New("access denied to draft")
	ErrDraftNotEditable  = errors.New("draft is published and can no longer be edited")
	ErrDraftConflict     = errors.New("draft was modified by another request")
	ErrInvalidTarget     = errors.New("item_id can only target questions inside a group")

	// Export errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	cause   error
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error {
	return bre.cause
}

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func (pe *PermissionError) Unwrap() error {
	return ErrDraftAccessDenied
}

// ===== ERROR HELPERS =====

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// modelRules names the rule behind each rejected editing operation.
var modelRules = map[error]string{
	authoring.ErrEmptySelection:    "selection_empty",
	authoring.ErrInvalidRange:      "selection_range",
	authoring.ErrSelectionNotFound: "selection_not_found",
	authoring.ErrDuplicateBlank:    "blank_duplicate",
	authoring.ErrOverlappingBlank:  "blank_overlap",
	authoring.ErrNothingMixed:      "arrangement_not_mixed",
	authoring.ErrMinimumOptions:    "option_minimum",
	authoring.ErrMinimumInputs:     "input_minimum",
	authoring.ErrMinimumQuestions:  "group_minimum",
	authoring.ErrIndexOutOfRange:   "group_index_range",
	authoring.ErrNestedGroup:       "group_nested",
	authoring.ErrUnknownType:       "question_type_unknown",
	authoring.ErrPayloadMismatch:   "question_type_mismatch",
	authoring.ErrUnsupportedField:  "text_field_unsupported",
}

var modelNotFound = []error{
	authoring.ErrBlankNotFound,
	authoring.ErrOptionNotFound,
	authoring.ErrInputNotFound,
	authoring.ErrQuestionNotFound,
}

// translateModelError turns an editing rejection into a service error.
// Unknown errors pass through.
func translateModelError(err error) error {
	if err == nil {
		return nil
	}
	for _, nf := range modelNotFound {
		if errors.Is(err, nf) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	for sentinel, rule := range modelRules {
		if errors.Is(err, sentinel) {
			return &BusinessRuleError{Rule: rule, Message: err.Error(), cause: err}
		}
	}
	return err
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDraftNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrDraftAccessDenied)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDraftConflict) ||
		errors.Is(err, ErrDraftNotEditable)
}
