package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dreyes/auth-service/pkg/policy"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the credential-policy rules as custom tags.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("usermail", func(fl validator.FieldLevel) bool {
		return policy.ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("userpwd", func(fl validator.FieldLevel) bool {
		return policy.ValidPassword(fl.Field().String())
	})
}

// ToDetails converts validation/binding errors into a single human-readable
// message for the error payload's detail field. Field messages are joined
// with ", ".
func ToDetails(err error) string {
	if err == nil {
		return ""
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return "invalid json payload"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Field()+" "+formatFieldError(fe))
		}
		return strings.Join(msgs, ", ")
	}

	return "invalid payload"
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "usermail":
		return "must be a valid email"
	case "userpwd":
		return "must be 8-12 letters and digits with exactly one uppercase letter and exactly two digits"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "dive":
		return "has invalid entries"
	default:
		return fmt.Sprintf("failed validation %q", fe.Tag())
	}
}
