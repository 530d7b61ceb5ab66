package profession

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/registro/client/internal/domain/shared"
)

var validate = validator.New()

// CreateInput is the payload for creating a profession
type CreateInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateInput is the partial payload for updating a profession.
// A nil Name means the field is left untouched and is not transmitted.
type UpdateInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// normalizeName applies the schema-boundary normalization: names are trimmed
// and uppercased before any request leaves the client.
func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Normalized returns the input with its name trimmed and uppercased, or a
// validation error if the normalized name is empty or too long.
func (i CreateInput) Normalized() (CreateInput, error) {
	i.Name = normalizeName(i.Name)
	if err := validate.Struct(i); err != nil {
		return CreateInput{}, schemaError(err)
	}
	return i, nil
}

// Normalized returns the input with its name, when present, trimmed and
// uppercased, validating the same bounds as creation.
func (i UpdateInput) Normalized() (UpdateInput, error) {
	if i.Name != nil {
		name := normalizeName(*i.Name)
		i.Name = &name
	}
	if err := validate.Struct(i); err != nil {
		return UpdateInput{}, schemaError(err)
	}
	return i, nil
}

func schemaError(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		if fieldErrs[0].Tag() == "max" {
			return shared.NewValidationError("profession name cannot exceed 100 characters")
		}
		return shared.NewValidationError("profession name is required")
	}
	return shared.NewValidationError("profession name is invalid")
}
