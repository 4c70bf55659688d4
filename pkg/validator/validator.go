package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustom installs clinic-specific validations on gin's binding engine.
// Form fields carry dates as plain strings ("2024-06-01", "09:00"), so the
// rules validate the wire format rather than time.Time values.
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("timeonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
}
