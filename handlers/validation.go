package handlers

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	indianMobile = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRe    = regexp.MustCompile(`^\d{6}$`)
	nonDigits    = regexp.MustCompile(`\D`)

	registerOnce sync.Once
	registerErr  error
)

// NormalizePhone strips formatting and an optional +91 prefix, returning
// the 10-digit mobile number or "" when the input is not one.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if !indianMobile.MatchString(digits) {
		return ""
	}
	return digits
}

func validPhone(fl validator.FieldLevel) bool {
	return NormalizePhone(fl.Field().String()) != ""
}

func validPincode(fl validator.FieldLevel) bool {
	return pincodeRe.MatchString(fl.Field().String())
}

// RegisterValidations installs the in_phone and pincode rules on gin's validator.
func RegisterValidations() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if registerErr = v.RegisterValidation("in_phone", validPhone); registerErr != nil {
			return
		}
		registerErr = v.RegisterValidation("pincode", validPincode)
	})
	return registerErr
}

// validationMessage flattens validator errors into one readable line
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "in_phone":
			msgs = append(msgs, fe.Field()+" must be a valid 10-digit mobile number")
		case "pincode":
			msgs = append(msgs, fe.Field()+" must be a 6-digit pincode")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag()+" validation")
		}
	}
	return strings.Join(msgs, "; ")
}
