package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/coursequiz/internal/model"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return model.Difficulty(fl.Field().String()).Valid()
	})
}
