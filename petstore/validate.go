package petstore

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// petFieldMessages holds the message reported for each failing Pet field
var petFieldMessages = map[string]string{
	"Name":      "name is required and cannot be empty",
	"PhotoURLs": "photo_urls is required and cannot be empty",
	"Status":    "status must be one of: available, pending, sold",
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// notblank rejects empty and whitespace-only strings
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// ValidatePet checks the fields a pet must carry before it is created or
// updated. All failures are reported together, joined by "; ".
func ValidatePet(pet *Pet) error {
	if pet == nil {
		return newValidationError("pet is required")
	}

	err := getValidator().Struct(pet)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := petFieldMessages[fe.StructField()]
		if !ok {
			msg = fe.Error()
		}
		messages = append(messages, msg)
	}
	return newValidationError("%s", strings.Join(messages, "; "))
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return newValidationError("%s must be a positive integer", field)
	}
	return nil
}

// ParseID converts user input such as a CLI argument into an identifier.
// field names the identifier in the error message, e.g. "pet_id".
func ParseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, newValidationError("%s must be a positive integer", field)
	}
	if err := validateID(field, id); err != nil {
		return 0, err
	}
	return id, nil
}
