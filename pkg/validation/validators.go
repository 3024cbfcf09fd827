package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Field limits for contact submissions, counted in runes.
const (
	MaxNameLength    = 200
	MaxEmailLength   = 254
	MaxSubjectLength = 300
	MaxMessageLength = 10000
)

// Regex patterns
var (
	// local@domain.tld where every part is one or more non-whitespace, non-@ characters
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// New returns a validator with the custom contact rules registered and
// field names reported by their json tag.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// IsEmail reports whether s has the local@domain.tld shape accepted by the contact form.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ContactEmail validates the loose local@domain.tld shape.
// Empty values pass, use required if needed.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsEmail(val)
}

// NotBlank rejects values made only of whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimFunc(fl.Field().String(), unicode.IsSpace) != ""
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
