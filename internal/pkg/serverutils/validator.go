package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelmate-be/internal/apperr"
)

var validate = validator.New()

// ValidateStruct checks the `validate` tags on a request DTO and reports the
// first offending field as a validation error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return apperr.Validation(fmt.Sprintf("field '%s' failed on '%s' rule", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return apperr.Validation(err.Error())
}
