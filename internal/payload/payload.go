package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"konnect-service-go/internal/apperr"
)

// MaxBodyBytes bounds the size of a decoded request body.
const MaxBodyBytes = 1 << 20

const msgNotJSON = "Request body must be JSON."

var validate = newValidator()

// presence is implemented by every Field instantiation.
type presence interface {
	IsSet() bool
	IsNull() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	// Fields are validated as: absent -> nil, null -> false, value -> true.
	// `required` then means present and non-null, `present` means the key exists.
	v.RegisterCustomTypeFunc(fieldValue, Field[string]{}, Field[int64]{}, Field[float64]{})
	if err := v.RegisterValidation("present", func(validator.FieldLevel) bool { return true }); err != nil {
		panic(err)
	}
	return v
}

func fieldValue(v reflect.Value) any {
	p, ok := v.Interface().(presence)
	if !ok || !p.IsSet() {
		return nil
	}
	return !p.IsNull()
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Decode reads a JSON object from r into dst. Bodies that are not a JSON object,
// empty objects and values of the wrong JSON type are validation errors.
func Decode(r io.Reader, dst any) error {
	if r == nil {
		return apperr.Validation(msgNotJSON)
	}
	raw, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return apperr.Validation(msgNotJSON)
	}
	if len(raw) > MaxBodyBytes {
		return apperr.Validation("request body exceeds %d bytes", MaxBodyBytes)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || len(keys) == 0 {
		return apperr.Validation(msgNotJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field != "" {
				return apperr.Validation("field %q must be of type %s", typeErr.Field, typeErr.Type)
			}
			return apperr.Validation("a field has the wrong type: expected %s, got JSON %s", typeErr.Type, typeErr.Value)
		}
		return &apperr.Error{Kind: apperr.KindValidation, Message: msgNotJSON, Err: err}
	}
	return nil
}

// Validate runs the struct's `validate` tags and reports the offending wire names.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(fmt.Errorf("validate %T: %w", s, err))
	}

	var missing, nullable []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			nullable = append(nullable, fe.Field())
		default:
			missing = append(missing, fe.Field())
		}
	}
	if len(nullable) > 0 {
		return apperr.Validation("missing or null required fields: %s", strings.Join(nullable, ", "))
	}
	return apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
}
