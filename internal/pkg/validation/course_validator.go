package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// CourseValidator checks course payloads. A payload is a JSON object whose
// only key is "name", holding a string of at least three characters.
// Error messages name the offending key in double quotes and are safe to
// return to the client unchanged.
type CourseValidator struct {
	validate *validator.Validate
}

const nameKey = "name"

// minLengthTag measures strings in UTF-16 code units, the unit client side
// string lengths are counted in.
const minLengthTag = "utf16min"

// NewCourseValidator creates a validator for dto.CourseRequest payloads
func NewCourseValidator() *CourseValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	_ = validate.RegisterValidation(minLengthTag, utf16MinLength)

	return &CourseValidator{validate: validate}
}

// ValidateCourse decodes and validates a raw request body. An empty body is
// treated as an empty object.
func (v *CourseValidator) ValidateCourse(body []byte) (*dto.CourseRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, newError("value", "must be an object")
	}

	req := &dto.CourseRequest{}
	raw, present := fields[nameKey]
	if !present {
		return nil, newError(nameKey, "is required")
	}
	if err := decodeString(raw, &req.Name); err != nil {
		return nil, newError(nameKey, "must be a string")
	}

	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, newError(fieldErrs[0].Field(), formatValidationError(fieldErrs[0]))
		}
		return nil, fmt.Errorf("validating course: %w", err)
	}

	if key := firstUnknownKey(body); key != "" {
		return nil, newError(key, "is not allowed")
	}

	return req, nil
}

// decodeString rejects anything but a JSON string, null included.
func decodeString(raw json.RawMessage, dst *string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return errors.New("not a string")
	}
	return json.Unmarshal(trimmed, dst)
}

// formatValidationError creates a human-readable validation error message.
// Keys reaching the validator are always present, so a failed "required"
// means the value is empty.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is not allowed to be empty"
	case "min", minLengthTag:
		return "length must be at least " + e.Param() + " characters long"
	case "max":
		return "length must be less than or equal to " + e.Param() + " characters long"
	default:
		return "failed " + e.Tag() + " validation"
	}
}

func newError(key, reason string) *apperrors.CustomError {
	return apperrors.NewValidationError(fmt.Sprintf("%q %s", key, reason)).
		WithDetails(map[string]interface{}{"key": key})
}

// utf16MinLength reports whether a string field holds at least param
// UTF-16 code units.
func utf16MinLength(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) >= limit
}

// firstUnknownKey returns the first key other than name, in property order:
// array index keys ascending, then the rest as they appear in the body.
func firstUnknownKey(body []byte) string {
	for _, key := range objectKeys(body) {
		if key != nameKey {
			return key
		}
	}
	return ""
}

// objectKeys lists the keys of a JSON object once each, in property order.
// body must already be known to hold a valid object.
func objectKeys(body []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			break
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, aIndex := arrayIndex(keys[i])
		b, bIndex := arrayIndex(keys[j])
		if aIndex && bIndex {
			return a < b
		}
		return aIndex && !bIndex
	})
	return keys
}

// arrayIndex reports whether key is a canonical array index such as "0" or
// "12", which objects enumerate before their other keys.
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
