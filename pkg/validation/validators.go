package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with custom rules and env/json tag field naming.
func New() *validator.Validate {
	v := validator.New()
	Configure(v)
	return v
}

// Configure registers custom validators and field naming on an existing
// validator instance (used for gin's binding engine).
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(FieldName)
	RegisterValidators(v)
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("loose_email", LooseEmail)
}

// FieldName reports a struct field by its env tag, then json tag, then Go name.
func FieldName(fld reflect.StructField) string {
	for _, tag := range []string{"env", "json"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// LooseEmail only requires an "@" somewhere in the value. Stricter parsing
// rejects addresses the mail provider happily accepts.
func LooseEmail(fl validator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), "@")
}
