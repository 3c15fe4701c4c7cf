package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("condition", validateCondition)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCondition(fl validator.FieldLevel) bool {
	condition := fl.Field().String()
	validConditions := []string{"operational", "faulty"}

	for _, valid := range validConditions {
		if condition == valid {
			return true
		}
	}
	return false
}
