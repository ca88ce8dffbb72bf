// Package forms decodes submitted HTML form values into typed request
// structs, validates them and maps order forms to and from stored records.
package forms

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// FieldErrors maps a form field name to the first message for that field.
type FieldErrors map[string]string

func (e FieldErrors) Any() bool { return len(e) > 0 }

func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

var messages = map[string]string{
	"required":  "This field is required.",
	"email":     "Invalid email address.",
	"eqfield":   "Field must be equal to password.",
	"oneof":     "Not a valid choice.",
	"gt":        "Number must be at least 1.",
	"gte":       "Number must be at least 0.",
	"orderdate": "Not a valid date value.",
	"finite":    "Not a valid float value.",
}

type Validator struct {
	validate *validator.Validate
	decoder  *schema.Decoder
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("schema"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("orderdate", func(fl validator.FieldLevel) bool {
		_, err := ParseOrderDate(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	}); err != nil {
		panic(err)
	}

	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return &Validator{validate: v, decoder: d}
}

// Bind parses the request form into dst and validates it.
func (v *Validator) Bind(r *http.Request, dst any) FieldErrors {
	if err := r.ParseForm(); err != nil {
		return FieldErrors{"form": "Could not read the submitted form."}
	}
	return v.Decode(dst, r.PostForm)
}

// Decode fills dst from values. Blank fields count as not submitted.
// Conversion failures are reported per field and fields that failed
// conversion are not validated further.
func (v *Validator) Decode(dst any, values url.Values) FieldErrors {
	errs := FieldErrors{}

	if err := v.decoder.Decode(dst, withoutBlanks(values)); err != nil {
		var multi schema.MultiError
		if !errors.As(err, &multi) {
			errs.Add("form", err.Error())
			return errs
		}
		for field, ferr := range multi {
			var conv schema.ConversionError
			if errors.As(ferr, &conv) {
				errs.Add(field, conversionMessage(conv.Type))
				continue
			}
			errs.Add(field, ferr.Error())
		}
	}

	for field, msg := range v.Struct(dst) {
		errs.Add(field, msg)
	}
	return errs
}

// Struct runs the validate tags of dst.
func (v *Validator) Struct(dst any) FieldErrors {
	errs := FieldErrors{}

	err := v.validate.Struct(dst)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("form", err.Error())
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func withoutBlanks(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vals := range values {
		for _, val := range vals {
			if strings.TrimSpace(val) != "" {
				out[key] = vals
				break
			}
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	if fe.Tag() == "min" {
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	}
	if msg, ok := messages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value."
}

func conversionMessage(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "Not a valid integer value."
	case reflect.Float32, reflect.Float64:
		return "Not a valid float value."
	}
	return "Invalid value."
}
