package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	apperrors "github.com/SAP-F-2025/question-authoring-service/internal/errors"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/go-playground/validator/v10"
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// CategoryResolver reports whether a label path names a node of the
// category taxonomy.
type CategoryResolver interface {
	Resolve(labels []string) bool
}

// Validator combines struct-tag validation with question content checks
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates the validator. A nil resolver accepts any non-empty
// category path.
func New(categories CategoryResolver) *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator, categories)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question content validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

func registerCustomValidators(validate *validator.Validate, categories CategoryResolver) {
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("difficulty_level", validateDifficultyLevel)
	validate.RegisterValidation("category_path", func(fl validator.FieldLevel) bool {
		labels := authoring.ParsePath(fl.Field().String())
		if len(labels) == 0 {
			return false
		}
		return categories == nil || categories.Resolve(labels)
	})

	// Report json names so errors match request bodies
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}

func validateDifficultyLevel(fl validator.FieldLevel) bool {
	return models.DifficultyLevel(fl.Field().String()).IsValid()
}
