package types

import (
	"sync"

	"github.com/go-playground/validator/v10"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateBody rejects a nil or incomplete request body before it is sent.
func ValidateBody(name string, body any) error {
	if body == nil {
		return lmserrors.NewValidationError("%s body is required", name)
	}
	if err := validatorInstance().Struct(body); err != nil {
		return lmserrors.WrapValidation(name, err)
	}
	return nil
}

// ValidateID rejects a missing path parameter.
func ValidateID(id int64, fieldName string) error {
	if id <= 0 {
		return lmserrors.NewValidationError("%s is required", fieldName)
	}
	return nil
}
