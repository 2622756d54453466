package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"calibration-tracker/pkg/constants"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations регистрирует теги закрытых перечислений и прочие правила проекта.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"equipment_status":   isEquipmentStatus,
		"calibration_status": isCalibrationStatus,
		"user_role":          isUserRole,
		"custom_email":       isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return constants.EquipmentStatus(fl.Field().String()).IsValid()
}

func isCalibrationStatus(fl validator.FieldLevel) bool {
	return constants.CalibrationResult(fl.Field().String()).IsValid()
}

func isUserRole(fl validator.FieldLevel) bool {
	return constants.Role(fl.Field().String()).IsValid()
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
