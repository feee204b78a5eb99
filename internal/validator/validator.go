package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"amigo-admin/internal/access"
	"amigo-admin/internal/common/apperr"

	"github.com/go-playground/validator/v10"
)

// HHMM matches wall-clock times like 9:05 or 23:59
var HHMM = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("hhmm", validateHHMM)
	v.RegisterValidation("permission", validatePermission)
	v.RegisterValidation("admin_role", validateAdminRole)
	v.RegisterValidation("user_role", validateUserRole)

	return &Validator{validate: v}
}

// Validate returns an InvalidArgument error describing the first failed field
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.New(apperr.InvalidArgument, describe(verrs[0]))
	}
	return apperr.Wrap(apperr.InvalidArgument, "Invalid request", err)
}

func describe(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "hhmm":
		return fmt.Sprintf("%s must use HH:MM format", field)
	case "permission":
		return fmt.Sprintf("%s contains an unknown permission", field)
	case "admin_role":
		return "Invalid role. Must be admin or subadmin"
	case "user_role":
		return "Invalid role. Must be user, subadmin, or admin"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateHHMM(fl validator.FieldLevel) bool {
	return HHMM.MatchString(fl.Field().String())
}

func validatePermission(fl validator.FieldLevel) bool {
	return access.ValidPermission(fl.Field().String())
}

func validateAdminRole(fl validator.FieldLevel) bool {
	return access.ValidAdminRole(fl.Field().String())
}

func validateUserRole(fl validator.FieldLevel) bool {
	return access.ValidUserRole(fl.Field().String())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
