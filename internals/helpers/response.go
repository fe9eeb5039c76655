package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct returns nil or a field → messages map keyed by the json name.
func ValidateStruct(v any) map[string][]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}

	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		out[field] = append(out[field], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid e-mail"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid id"
	case "datetime":
		return "must be a date in format " + fe.Param()
	}
	return "is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// FieldErrors carries validator output up to the fiber ErrorHandler, which
// renders it as a 422 envelope.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msgs := range f {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Normalizer is implemented by requests that clean their input (trim, lower-case)
// before validation runs.
type Normalizer interface {
	Normalize()
}

// BindAndValidate parses the JSON body into dst, normalizes it when dst is a
// Normalizer and runs struct validation.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	if fieldErrs := ValidateStruct(dst); fieldErrs != nil {
		return FieldErrors(fieldErrs)
	}
	return nil
}
