package validation

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	registerCustomTags(validate)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomTags(v)
	}
}

func registerCustomTags(v *validator.Validate) {
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "card", "wallet", "cash":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("day_type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Weekday", "Weekend", "Holiday", "All":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("time_of_day", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("15:04", fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("caller_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "admin", "operator", "analyst", "customer":
			return true
		}
		return false
	})
}

// ValidateStruct validates a struct using its validate tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}
