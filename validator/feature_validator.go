package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// FeatureRequest is the payload for creating or updating a feature. On update,
// a blank Name or Description means "keep the stored value"; Tags and Active
// always replace the stored values.
type FeatureRequest struct {
	Name        string   `json:"name" validate:"omitempty,min=3,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Tags        []string `json:"tags" validate:"dive,required,max=50"`
	Active      bool     `json:"active"`
}

// FeatureQueryRequest holds the query parameters of the paged feature listing.
type FeatureQueryRequest struct {
	Filter   string `query:"filter" validate:"omitempty,oneof=all active inactive"`
	Search   string `query:"search"`
	Page     int    `query:"page"`
	Quantity int    `query:"quantity"`
}

// PaginationRequest holds the query parameters of the general listing path.
type PaginationRequest struct {
	OnlyActive bool `query:"onlyActive"`
	Page       int  `query:"page"`
	Quantity   int  `query:"quantity"`
}

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates all failed fields of a request.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, ", ")
}

// Messages flattens the field errors for the error envelope.
func (ve ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return messages
}

// ValidateFeatureRequest validates a creation payload; the name is mandatory.
func ValidateFeatureRequest(req FeatureRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ValidationErrors{Errors: []ValidationError{
			{Field: "Name", Message: "This field is required"},
		}}
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ValidateFeatureUpdateRequest validates an update payload; blank name and
// description are allowed and mean "keep existing".
func ValidateFeatureUpdateRequest(req FeatureRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ValidateFeatureQueryRequest validates the paged listing parameters.
func ValidateFeatureQueryRequest(req FeatureQueryRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var validationErrors []ValidationError

	for _, err := range err.(validator.ValidationErrors) {
		var message string

		switch err.Tag() {
		case "required":
			message = "This field is required"
		case "min":
			message = fmt.Sprintf("Must be at least %s characters long", err.Param())
		case "max":
			message = fmt.Sprintf("Must be at most %s characters long", err.Param())
		case "oneof":
			message = fmt.Sprintf("Must be one of: %s", err.Param())
		default:
			message = "Invalid value"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return ValidationErrors{Errors: validationErrors}
}
