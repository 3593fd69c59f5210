package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		msg := fmt.Sprintf("Field '%s' failed validation: %s", first.Field(), first.Tag())
		return NewAPIError(fiber.StatusBadRequest, msg)
	}
	return NewAPIError(fiber.StatusBadRequest, "Invalid request body")
}
