package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password the login form accepts.
const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// ValidateEmail reports whether s looks like local-part@domain.tld.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// EmailFieldError reports whether an inline email error should be shown.
// An empty field is neutral.
func EmailFieldError(s string) bool {
	return s != "" && !ValidateEmail(s)
}

// PasswordCheck holds the individual password complexity rules.
type PasswordCheck struct {
	HasCapital     bool `json:"has_capital"`
	HasMinLength   bool `json:"has_min_length"`
	HasSpecialChar bool `json:"has_special_char"`
}

// Valid reports whether every rule passed.
func (c PasswordCheck) Valid() bool {
	return c.HasCapital && c.HasMinLength && c.HasSpecialChar
}

// ValidatePassword evaluates s against the complexity rules. A special
// character is anything outside [A-Za-z0-9].
func ValidatePassword(s string) PasswordCheck {
	var c PasswordCheck
	c.HasMinLength = utf8.RuneCountInString(s) >= MinPasswordLength
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			c.HasCapital = true
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			c.HasSpecialChar = true
		}
	}
	return c
}

// LoginForm is the submitted sign-in form.
type LoginForm struct {
	Email    string `json:"email" validate:"required,luxor_email"`
	Password string `json:"password" validate:"required,luxor_password"`
}

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared validator with the login tags registered.
//   - Uses JSON tag names in errors.
//   - luxor_email / luxor_password wrap ValidateEmail / ValidatePassword.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("luxor_email", func(fl validator.FieldLevel) bool {
			return ValidateEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("luxor_password", func(fl validator.FieldLevel) bool {
			return ValidatePassword(fl.Field().String()).Valid()
		})
		engine = v
	})
	return engine
}

// Validate checks the form and returns the validator error, if any.
func (f LoginForm) Validate() error {
	return Engine().Struct(f)
}

// IsFormValid reports whether the form may be submitted. Empty fields are
// invalid here even though EmailFieldError treats them as neutral.
func IsFormValid(email, password string) bool {
	return LoginForm{Email: email, Password: password}.Validate() == nil
}

// ToDetails converts validation errors into a map[field]message.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email", "luxor_email":
		return "must be a valid email"
	case "luxor_password":
		return passwordMessage(ValidatePassword(fmt.Sprint(fe.Value())))
	case "min":
		return "must be at least " + param + " characters"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func passwordMessage(c PasswordCheck) string {
	var missing []string
	if !c.HasMinLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", MinPasswordLength))
	}
	if !c.HasCapital {
		missing = append(missing, "an uppercase letter")
	}
	if !c.HasSpecialChar {
		missing = append(missing, "a special character")
	}
	if len(missing) == 0 {
		return "is invalid"
	}
	return "must contain " + strings.Join(missing, ", ")
}
