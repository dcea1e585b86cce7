package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"rentalhub/internal/domain"
)

const dayLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("day", isDay)
	_ = validate.RegisterValidation("dayafter", isDayNotBefore)
}

// isDay accepts exactly a YYYY-MM-DD calendar date, nothing before or after it.
func isDay(fl validator.FieldLevel) bool {
	_, err := time.Parse(dayLayout, fl.Field().String())
	return err == nil
}

// isDayNotBefore checks the field is on or after the sibling named by the param.
// Unparseable values pass here and are reported by the day tag instead.
func isDayNotBefore(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() || other.Kind() != reflect.String {
		return false
	}
	end, err := domain.ParseDay(fl.Field().String())
	if err != nil {
		return true
	}
	start, err := domain.ParseDay(other.String())
	if err != nil {
		return true
	}
	return !end.Before(start)
}

// Validate checks struct tags and returns field -> message, or nil when valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errors[fe.Field()] = message(fe)
	}
	return errors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "day":
		return "must be a date in YYYY-MM-DD format"
	case "dayafter":
		return fmt.Sprintf("must not be before %s", lowerFirst(fe.Param()))
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "numeric":
		return "must contain digits only"
	default:
		return fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
