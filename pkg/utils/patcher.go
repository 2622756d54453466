package utils

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	"calibration-tracker/pkg/types"
)

var (
	timePtrType   = reflect.TypeOf(new(time.Time))
	timeType      = reflect.TypeOf(time.Time{})
	stringPtrType = reflect.TypeOf(new(string))
	intPtrType    = reflect.TypeOf(new(int))
	uint64PtrType = reflect.TypeOf(new(uint64))
)

// ApplyPatch переносит в entity только те поля patchDTO, которые реально пришли в rawRequestBody.
// Поле сопоставляется по имени Go-поля, наличие в запросе - по json-тегу DTO.
// Явный null обнуляет поле сущности.
func ApplyPatch(entity interface{}, patchDTO interface{}, rawRequestBody []byte) error {
	var sentFields map[string]json.RawMessage
	if err := json.Unmarshal(rawRequestBody, &sentFields); err != nil {
		return err
	}

	entityValue := reflect.ValueOf(entity).Elem()
	patchDTOValue := reflect.ValueOf(patchDTO)
	if patchDTOValue.Kind() == reflect.Ptr {
		patchDTOValue = patchDTOValue.Elem()
	}

	for i := 0; i < patchDTOValue.NumField(); i++ {
		patchField := patchDTOValue.Field(i)
		patchFieldType := patchDTOValue.Type().Field(i)
		jsonFieldName := strings.Split(patchFieldType.Tag.Get("json"), ",")[0]

		raw, fieldWasSent := sentFields[jsonFieldName]
		if !fieldWasSent {
			continue
		}

		entityFieldValue := entityValue.FieldByName(patchFieldType.Name)
		if !entityFieldValue.IsValid() || !entityFieldValue.CanSet() {
			continue
		}

		if string(raw) == "null" {
			entityFieldValue.Set(reflect.Zero(entityFieldValue.Type()))
			continue
		}

		setField(entityFieldValue, patchField)
	}
	return nil
}

func setField(target reflect.Value, patchField reflect.Value) {
	targetType := target.Type()

	switch patchValue := patchField.Interface().(type) {
	case *string:
		if patchValue == nil {
			return
		}
		if target.Kind() == reflect.String {
			target.SetString(*patchValue)
		} else if targetType == stringPtrType {
			v := *patchValue
			target.Set(reflect.ValueOf(&v))
		}

	case *int:
		if patchValue == nil {
			return
		}
		if target.Kind() == reflect.Int {
			target.SetInt(int64(*patchValue))
		} else if targetType == intPtrType {
			v := *patchValue
			target.Set(reflect.ValueOf(&v))
		}

	case null.String:
		switch {
		case targetType == stringPtrType:
			if patchValue.Valid {
				v := patchValue.String
				target.Set(reflect.ValueOf(&v))
			} else {
				target.Set(reflect.Zero(targetType))
			}
		case target.Kind() == reflect.String && patchValue.Valid:
			target.SetString(patchValue.String)
		}

	case null.Int:
		if !patchValue.Valid {
			target.Set(reflect.Zero(targetType))
			return
		}
		setInteger(target, uint64(patchValue.Int), int64(patchValue.Int))

	case null.Uint64:
		if !patchValue.Valid {
			target.Set(reflect.Zero(targetType))
			return
		}
		setInteger(target, patchValue.Uint64, int64(patchValue.Uint64))

	case types.NullDate:
		if !patchValue.Set {
			return
		}
		switch targetType {
		case timePtrType:
			target.Set(reflect.ValueOf(patchValue.Ptr()))
		case timeType:
			if patchValue.Valid {
				target.Set(reflect.ValueOf(patchValue.Time))
			}
		}

	case *types.Date:
		if patchValue == nil {
			return
		}
		switch targetType {
		case timePtrType:
			target.Set(reflect.ValueOf(patchValue.Ptr()))
		case timeType:
			target.Set(reflect.ValueOf(patchValue.Time))
		}

	default:
		// *T -> T или *T -> *T для прочих типов (например, списка документов)
		if patchField.Kind() != reflect.Ptr || patchField.IsNil() {
			return
		}
		switch {
		case patchField.Type() == targetType:
			target.Set(patchField)
		case patchField.Elem().Type().ConvertibleTo(targetType):
			target.Set(patchField.Elem().Convert(targetType))
		}
	}
}

func setInteger(target reflect.Value, u uint64, i int64) {
	targetType := target.Type()
	switch targetType.Kind() {
	case reflect.Ptr:
		switch targetType {
		case intPtrType:
			v := int(i)
			target.Set(reflect.ValueOf(&v))
		case uint64PtrType:
			v := u
			target.Set(reflect.ValueOf(&v))
		}
	case reflect.Int, reflect.Int64:
		target.SetInt(i)
	case reflect.Uint, reflect.Uint64:
		target.SetUint(u)
	}
}
