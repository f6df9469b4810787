// Package validation holds the user record rules shared by the API handler
// and the users page form.
//
// Both rule sets run on a go-playground validator instance with four
// project tags registered: looseemail, zipcode, decimalstr and website.
// The API reports only the first failing rule group, the form reports a
// message for every field.
package validation

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"

	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipcodePattern  = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	decimalLiteral  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityLiteral = regexp.MustCompile(`^[+-]?Infinity$`)
	radixLiteral    = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)

	websitePattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)
)

// Error is a rejected create request. Message is safe to show to the client.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a *Error.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

// Validator checks user payloads.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the project tags registered.
func New() *Validator {
	validate := validator.New()

	tags := map[string]validator.Func{
		"looseemail": matchPattern(emailPattern),
		"zipcode":    matchPattern(zipcodePattern),
		"website":    matchPattern(websitePattern),
		"decimalstr": validateDecimalString,
	}
	for tag, fn := range tags {
		// Only fails on an empty tag or a nil func.
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}

	return &Validator{validate: validate}
}

func matchPattern(pattern *regexp.Regexp) validator.Func {
	return func(fieldLevel validator.FieldLevel) bool {
		return pattern.MatchString(fieldLevel.Field().String())
	}
}

func validateDecimalString(fieldLevel validator.FieldLevel) bool {
	return IsDecimal(fieldLevel.Field().String())
}

// IsDecimal reports whether s reads as a number the way a JavaScript
// Number() conversion does: surrounding whitespace is ignored, a blank
// string is zero, decimal and exponent forms, Infinity and unsigned
// 0x/0o/0b integers are numbers. "inf", "NaN" and hex floats are not.
func IsDecimal(s string) bool {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if s == "" {
		return true
	}

	return decimalLiteral.MatchString(s) ||
		infinityLiteral.MatchString(s) ||
		radixLiteral.MatchString(s)
}

// rule groups, in the order the API checks them
const (
	groupRequired = iota
	groupShortNames
	groupEmail
	groupZipcode
	groupCoordinates
	groupPhone
	groupWebsite
	groupShortCompanyTexts
)

var groupMessages = map[int]string{
	groupRequired:          "All required fields must be provided",
	groupShortNames:        "Name, username, and company name must be at least 2 characters",
	groupEmail:             "Invalid email format",
	groupZipcode:           "Invalid zipcode format",
	groupCoordinates:       "Latitude and longitude must be valid numbers",
	groupPhone:             "Phone must be at least 10 characters",
	groupWebsite:           "Invalid website URL",
	groupShortCompanyTexts: "Catch phrase and BS must be at least 5 characters",
}

func groupOf(fieldErr validator.FieldError) int {
	switch fieldErr.Tag() {
	case "required":
		return groupRequired
	case "looseemail":
		return groupEmail
	case "zipcode":
		return groupZipcode
	case "decimalstr":
		return groupCoordinates
	case "website":
		return groupWebsite
	}

	switch fieldErr.Field() {
	case "Phone":
		return groupPhone
	case "CatchPhrase", "BS":
		return groupShortCompanyTexts
	}

	return groupShortNames
}

// CheckNewUser applies the API rules to the payload as received and
// returns a *Error describing the first failing rule group, or nil.
func (v *Validator) CheckNewUser(usr models.NewUser) error {
	err := v.validate.Struct(usr)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	first := math.MaxInt
	for _, fieldErr := range fieldErrs {
		first = min(first, groupOf(fieldErr))
	}

	return &Error{Message: groupMessages[first]}
}

type fieldRule struct {
	get      func(u *models.NewUser) string
	set      func(e *models.UserErrors, msg string)
	tag      string
	required string
	invalid  string
}

var formRules = []fieldRule{
	{
		get:      func(u *models.NewUser) string { return u.Name },
		set:      func(e *models.UserErrors, msg string) { e.Name = msg },
		tag:      "min=2",
		required: "Name is required.",
		invalid:  "Name must be at least 2 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Username },
		set:      func(e *models.UserErrors, msg string) { e.Username = msg },
		tag:      "min=2",
		required: "Username is required.",
		invalid:  "Username must be at least 2 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Email },
		set:      func(e *models.UserErrors, msg string) { e.Email = msg },
		tag:      "looseemail",
		required: "Email is required.",
		invalid:  "Please enter a valid email address.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Address.Street },
		set:      func(e *models.UserErrors, msg string) { e.Address.Street = msg },
		tag:      "min=2",
		required: "Street is required.",
		invalid:  "Street must be at least 2 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Address.City },
		set:      func(e *models.UserErrors, msg string) { e.Address.City = msg },
		tag:      "min=2",
		required: "City is required.",
		invalid:  "City must be at least 2 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Address.Zipcode },
		set:      func(e *models.UserErrors, msg string) { e.Address.Zipcode = msg },
		tag:      "zipcode",
		required: "Zipcode is required.",
		invalid:  "Please enter a valid zipcode (e.g., 12345 or 12345-6789).",
	},
	{
		get:      func(u *models.NewUser) string { return u.Address.Geo.Lat },
		set:      func(e *models.UserErrors, msg string) { e.Address.Geo.Lat = msg },
		tag:      "decimalstr",
		required: "Latitude is required.",
		invalid:  "Latitude must be a valid number.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Address.Geo.Lng },
		set:      func(e *models.UserErrors, msg string) { e.Address.Geo.Lng = msg },
		tag:      "decimalstr",
		required: "Longitude is required.",
		invalid:  "Longitude must be a valid number.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Phone },
		set:      func(e *models.UserErrors, msg string) { e.Phone = msg },
		tag:      "min=10",
		required: "Phone is required.",
		invalid:  "Phone must be at least 10 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Website },
		set:      func(e *models.UserErrors, msg string) { e.Website = msg },
		tag:      "website",
		required: "Website is required.",
		invalid:  "Please enter a valid website URL.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Company.Name },
		set:      func(e *models.UserErrors, msg string) { e.Company.Name = msg },
		tag:      "min=2",
		required: "Company name is required.",
		invalid:  "Company name must be at least 2 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Company.CatchPhrase },
		set:      func(e *models.UserErrors, msg string) { e.Company.CatchPhrase = msg },
		tag:      "min=5",
		required: "Catch phrase is required.",
		invalid:  "Catch phrase must be at least 5 characters.",
	},
	{
		get:      func(u *models.NewUser) string { return u.Company.BS },
		set:      func(e *models.UserErrors, msg string) { e.Company.BS = msg },
		tag:      "min=5",
		required: "BS is required.",
		invalid:  "BS must be at least 5 characters.",
	},
}

// CheckFields applies the form rules to every field of the draft and returns
// the per-field messages. The draft is trimmed before checking; suite is
// optional.
func (v *Validator) CheckFields(draft models.NewUser) models.UserErrors {
	trimmed := draft.Trimmed()
	result := models.UserErrors{}

	for _, rule := range formRules {
		value := rule.get(&trimmed)
		if value == "" {
			rule.set(&result, rule.required)
			continue
		}
		if err := v.validate.Var(value, rule.tag); err != nil {
			rule.set(&result, rule.invalid)
		}
	}

	return result
}
