package validators

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneNoise   = strings.NewReplacer("+", "", "-", "", "(", "", ")", "", " ", "")
)

// TaxID reports whether s is a valid tax number: all digits, 10 or 12 long.
func TaxID(s string) bool {
	if len(s) != 10 && len(s) != 12 {
		return false
	}
	return allDigits(s)
}

// Email reports whether s matches the local@domain.tld shape.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s is a phone number: after stripping `+ - ( )` and
// spaces, only digits remain and there are at least 10 of them.
func Phone(s string) bool {
	stripped := phoneNoise.Replace(s)
	return len(stripped) >= 10 && allDigits(stripped)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// New returns a validator instance with the registry's custom validations
// (taxid, ruphone, companyemail) registered.
func New() *validator.Validate {
	v := validator.New()
	mustRegister(v, "taxid", TaxID)
	mustRegister(v, "ruphone", Phone)
	mustRegister(v, "companyemail", Email)
	return v
}

func mustRegister(v *validator.Validate, tag string, check func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}
