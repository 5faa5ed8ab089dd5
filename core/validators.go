package core

import (
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DateLayout is the wire format of every date field (HTML date inputs).
const DateLayout = "2006-01-02"

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "only alphanumeric characters and underscores are allowed"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w\s]+$`)

	dateTag  = "date"
	dateText = "enter a valid date (YYYY-MM-DD)"

	pastDateTag  = "pastdate"
	pastDateText = "this date cannot be in the future"

	minAgeTag  = "minage"
	minAgeText = "you must be at least {1} years old"

	clockTag   = "clock"
	clockText  = "enter a valid time (HH:MM)"
	clockRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	phoneTag   = "phone"
	phoneText  = "enter a valid phone number"
	phoneRegex = regexp.MustCompile(`^\+?[\d\s\-().]+$`)

	fileExtTag  = "fileext"
	fileExtText = "this file type is not allowed"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	// nowFunc is replaced in tests.
	nowFunc = time.Now
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(dateTag, dateValidation)
	RegisterCustomTranslation(validate, translator, dateTag, dateText)

	_ = validate.RegisterValidation(pastDateTag, pastDateValidation)
	RegisterCustomTranslation(validate, translator, pastDateTag, pastDateText)

	_ = validate.RegisterValidation(minAgeTag, minAgeValidation)
	RegisterCustomTranslation(validate, translator, minAgeTag, minAgeText)

	_ = validate.RegisterValidation(clockTag, clockValidation)
	RegisterCustomTranslation(validate, translator, clockTag, clockText)

	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(validate, translator, phoneTag, phoneText)

	_ = validate.RegisterValidation(fileExtTag, fileExtValidation)
	RegisterCustomTranslation(validate, translator, fileExtTag, fileExtText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// `{0}` in text is the field name, `{1}` the tag's param.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// ParseDate parses a date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

func dateValidation(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

func pastDateValidation(fl validator.FieldLevel) bool {
	date, err := ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return !date.After(nowFunc())
}

// minAgeValidation checks a birth date lies at least `param` years in the past.
func minAgeValidation(fl validator.FieldLevel) bool {
	years, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	birth, err := ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return !birth.AddDate(years, 0, 0).After(nowFunc())
}

func clockValidation(fl validator.FieldLevel) bool {
	return clockRegex.MatchString(fl.Field().String())
}

// phoneValidation allows digits and the usual separators, with at least 10 digits.
func phoneValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !phoneRegex.MatchString(s) {
		return false
	}
	var digits int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// fileExtValidation checks a filename against space separated extensions, eg: `fileext=pdf docx`.
func fileExtValidation(fl validator.FieldLevel) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fl.Field().String())), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range strings.Fields(fl.Param()) {
		if ext == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}
