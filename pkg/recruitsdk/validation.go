package recruitsdk

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return jsonName(f.Tag.Get("json"), f.Name)
		})
	})
	return validate
}

// Validate checks a request body against its `validate` tags. A failure is
// returned as *ClientError with one human-readable clause per field.
func Validate(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &ClientError{Message: strings.Join(msgs, "; "), Err: err}
		}
		return &ClientError{Message: err.Error(), Err: err}
	}
	return nil
}

// validateBody runs Validate and logs a failure like any other request error.
func (c *Client) validateBody(method, path string, v any) error {
	err := Validate(v)
	if err != nil {
		c.logger.Error("api request error",
			"message", Message(err),
			"method", method,
			"url", c.url(path, nil),
		)
	}
	return err
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, jsonName("", fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// jsonName returns the JSON field name from a struct tag, falling back to a
// lower-camel form of the Go name.
func jsonName(tag, goName string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name != "" && name != "-" {
		return name
	}
	if goName == "" {
		return goName
	}
	return strings.ToLower(goName[:1]) + goName[1:]
}
