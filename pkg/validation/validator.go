package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// engine returns the shared validator. Rules live in `validate` struct tags
// and errors are reported with the field's json name.
func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("validate")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// bcrypt rejects passwords longer than 72 bytes
		_ = v.RegisterValidation("maxbytes", maxBytes)
		// Aliases for the account schema
		v.RegisterAlias("account_email", "required,email,max=40")
		v.RegisterAlias("account_name", "required,min=3,max=20")
		v.RegisterAlias("account_pwd", "required,min=6,max=20,maxbytes=72")
		v.RegisterAlias("account_role", "required,oneof=user admin")
		instance = v
	})
	return instance
}

// maxBytes bounds the encoded length of a string field, where max counts
// characters.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate checks v against its `validate` tags and returns an
// *apperror.ValidationError describing the first violated rule, or nil.
// Fields are checked in declaration order.
func Validate(v any) error {
	err := engine().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &apperror.ValidationError{Field: fe.Field(), Message: Message(fe)}
	}
	return &apperror.ValidationError{Message: "invalid payload"}
}

// Message renders a field error in the form `"field" <rule description>`.
func Message(fe validator.FieldError) string {
	return fmt.Sprintf("%q %s", fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	param := fe.Param()
	// ActualTag resolves aliases such as account_email to the failing rule
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "length must be at least " + param + " characters long"
	case "max":
		return "length must be less than or equal to " + param + " characters long"
	case "maxbytes":
		return "must not exceed " + param + " bytes"
	case "eqfield":
		return fmt.Sprintf("must match %q", strings.ToLower(param))
	case "oneof":
		return "must be one of [" + strings.Join(strings.Fields(param), ", ") + "]"
	default:
		if param != "" {
			return fmt.Sprintf("failed rule '%s' with parameter '%s'", fe.ActualTag(), param)
		}
		return fmt.Sprintf("failed rule '%s'", fe.ActualTag())
	}
}
