// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("entry_type", validateEntryType)
		_ = v.RegisterValidation("summary_window", validateSummaryWindow)
	}
}

func validateEntryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "saving":
		return true
	}
	return false
}

func validateSummaryWindow(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "yearly", "overall":
		return true
	}
	return false
}
