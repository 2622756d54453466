package validation

import (
	"github.com/go-playground/validator/v10"

	"calibration-tracker/pkg/customvalidator"
)

// CustomValidator - обертка для использования в Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New создает и настраивает валидатор. Без зарегистрированных правил сервер стартовать не должен.
func New() *CustomValidator {
	v := validator.New()

	registerNullTypes(v)

	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
