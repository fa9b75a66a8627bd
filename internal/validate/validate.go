// Package validate turns raw menu input into typed, normalized records.
//
// Every entity is described by an ordered list of field rules. A rule names
// the column, a go-playground/validator tag and an optional normalizer; the
// same rules drive whole-record validation and the per-field checks the menu
// uses to re-prompt.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/donations/pkg/types"
)

// datePattern is a shape check only; 2024-13-40 passes.
var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	for tag, fn := range map[string]validator.Func{
		"letters":   isLetters,
		"weakemail": isWeakEmail,
		"digits":    isDigits,
		"isodate":   isISODate,
		"positive":  isPositive,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
}

// reasons maps a failed validator tag to the message shown to the user.
var reasons = map[string]string{
	"required":  "is required",
	"letters":   "must contain only letters",
	"weakemail": "must be a valid email address (e.g. name@example.com)",
	"digits":    "must contain only digits",
	"isodate":   "must be in format YYYY-MM-DD",
	"positive":  "must be a number greater than zero and within range",
	"oneof":     "must be one of High, Medium, Low",
}

// isLetters accepts names like "Mary Ann": letters only once spaces are
// removed.
func isLetters(fl validator.FieldLevel) bool {
	s := strings.ReplaceAll(fl.Field().String(), " ", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isWeakEmail only requires an "@" and a ".". Stricter parsing would reject
// addresses the menus have always accepted.
func isWeakEmail(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

func isDigits(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isISODate(fl validator.FieldLevel) bool {
	return datePattern.MatchString(fl.Field().String())
}

// isPositive also rejects values a REAL column cannot hold: anything that
// overflows to an infinity or underflows to zero as a float64.
func isPositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || !d.IsPositive() {
		return false
	}
	f := d.InexactFloat64()
	return f > 0 && !math.IsInf(f, 0)
}

// titleCase capitalizes the first letter of each word and lowercases the
// rest. A Caser keeps state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// check runs one rule against a raw value and returns the normalized value.
func (r FieldRule) check(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if r.normalize != nil {
		v = r.normalize(v)
	}
	if err := validate.Var(v, r.tag); err != nil {
		return "", r.fail(raw, err)
	}
	return v, nil
}

func (r FieldRule) fail(raw string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		reason, ok := reasons[verrs[0].Tag()]
		if !ok {
			reason = "is invalid"
		}
		return &types.ValidationError{Field: r.Name, Value: raw, Reason: reason}
	}
	return &types.ValidationError{Field: r.Name, Value: raw, Reason: err.Error()}
}
