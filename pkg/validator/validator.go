// Package validator registers the custom binding validations the request
// structs in internal/model rely on.
package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
)

// RegisterCustom installs the status-enum validations on gin's binding
// validator. Call once at startup before any request is served.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("casestatus", func(fl validator.FieldLevel) bool {
		return model.CaseStatus(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("failed to register casestatus validation: %w", err)
	}

	if err := v.RegisterValidation("apptstatus", func(fl validator.FieldLevel) bool {
		return model.AppointmentStatus(fl.Field().String()).Valid()
	}); err != nil {
		return fmt.Errorf("failed to register apptstatus validation: %w", err)
	}

	return nil
}
