// Package validate decodes and validates operation request payloads against
// their declarative schemas. Validation is total: every violated field is
// reported, but acceptance is all-or-nothing.
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/versebridge/companion/internal/apperr"
)

var schema = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field paths by json tag, not Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalizer is implemented by request types that apply defaults before
// validation (e.g. language, translation name).
type Normalizer interface {
	Normalize()
}

// DecodeAndValidate decodes the JSON body into dst, applies defaults, and
// validates dst against its schema. Failures return INVALID_ARGUMENT listing
// every violated field path with a human-readable reason.
func DecodeAndValidate(body io.Reader, dst interface{}) error {
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return apperr.New(apperr.InvalidArgument, "invalid request body: not valid JSON")
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return Struct(dst)
}

// Struct validates an already-populated request value.
func Struct(dst interface{}) error {
	err := schema.Struct(dst)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Wrap(apperr.Internal, "request validation failed", err)
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, fieldPath(fe)+" "+reason(fe))
	}
	return apperr.New(apperr.InvalidArgument, strings.Join(reasons, "; "))
}

// fieldPath strips the root struct name from the namespace, leaving the
// json-tag path (e.g. documents[0].content).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
