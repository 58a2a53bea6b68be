package task

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	titlePattern = regexp.MustCompile(`^[\p{L}\p{N}\s.,!?\-:()]+$`)
	identPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	tagPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// fieldMessages holds the message reported for each (field, rule) pair.
// Lookups fall back to the field-only key and then to a generic message.
var fieldMessages = map[string]string{
	"title.required":  "title is required",
	"title.notblank":  "title is required",
	"title":           "title must be 3-255 characters of letters, digits, spaces and basic punctuation",
	"description":     "description must not exceed 1000 characters",
	"priority":        "priority must be one of LOW, MEDIUM, HIGH, URGENT",
	"category":        "category must be one of WORK, PERSONAL, STUDY, HEALTH, OTHER",
	"tags.max":        "at most 10 tags are allowed per task",
	"tags":            "tags must be 2-20 characters of lowercase letters, digits and hyphens",
	"assignedTo":      "assignedTo must be at most 50 characters of letters, digits, hyphens and underscores",
	"userId.required": "userId is required",
	"userId":          "userId must be 3-50 characters of letters, digits, hyphens and underscores",
}

// Validator checks tasks against their field rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the task rule set registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("title", matchString(titlePattern)))
	must(v.RegisterValidation("ident", matchString(identPattern)))
	must(v.RegisterValidation("tag", matchString(tagPattern)))
	must(v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).IsValid()
	}))
	must(v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	}))

	return &Validator{validate: v}
}

var defaultValidator = NewValidator()

// Validate checks t with the package-level Validator.
func Validate(t *Task) error {
	return defaultValidator.Validate(t)
}

// Validate returns nil when t satisfies every rule, or a *ValidationError naming
// each offending field.
func (v *Validator) Validate(t *Task) error {
	err := v.validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate task: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Element failures ("tags[3]") are reported under the collection name.
		field, _, element := strings.Cut(fe.Field(), "[")
		if _, seen := fields[field]; seen {
			continue
		}
		rule := fe.Tag()
		if element {
			rule = ""
		}
		fields[field] = messageFor(field, rule)
	}
	return &ValidationError{Fields: fields}
}

// ValidateUserID checks a bare owner identifier against the userId rule.
func (v *Validator) ValidateUserID(userID string) error {
	if err := v.validate.Var(userID, "required,min=3,max=50,ident"); err != nil {
		return &ValidationError{Fields: map[string]string{"userId": messageFor("userId", "")}}
	}
	return nil
}

// ValidateUserID checks userID with the package-level Validator.
func ValidateUserID(userID string) error {
	return defaultValidator.ValidateUserID(userID)
}

func messageFor(field, rule string) string {
	if msg, ok := fieldMessages[field+"."+rule]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
