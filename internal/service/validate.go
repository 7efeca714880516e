package service

import (
	"sripos/internal/apierror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validarStruct runs the DTO's validate tags and maps failures into the
// field-level validation error shown before any network call.
func validarStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		fields[fe.Field()] = "no cumple la regla '" + fe.Tag() + "'"
	}
	return apierror.NewValidation(fields)
}
