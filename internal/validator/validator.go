// Package validator registers custom validation functions with Gin's binding
// engine and configures it to report errors by JSON field name.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taskdeck/internal/models"
)

// hexColorRegex matches exactly "#" followed by six hex digits. Three-digit
// shorthand is intentionally not accepted.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// emailRegex is the deliberately simple "something@something.tld" shape check
// applied to registration and login input.
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report violations under the JSON field name so field-error maps line
	// up with what clients sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("email_shape", validateEmailShape)
	_ = v.RegisterValidation("task_status", validateTaskStatus)
	_ = v.RegisterValidation("language", validateLanguage)
	_ = v.RegisterValidation("theme", validateTheme)
	_ = v.RegisterValidation("task_filter", validateTaskFilter)
	_ = v.RegisterValidation("task_sort", validateTaskSort)
}

// HexColor reports whether s is a #RRGGBB color.
func HexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// EmailShape reports whether s looks like an email address.
func EmailShape(s string) bool {
	return emailRegex.MatchString(s)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return HexColor(fl.Field().String())
}

func validateEmailShape(fl validator.FieldLevel) bool {
	return EmailShape(fl.Field().String())
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	return models.TaskStatus(fl.Field().String()).Valid()
}

func validateLanguage(fl validator.FieldLevel) bool {
	return models.ValidLanguage(fl.Field().String())
}

func validateTheme(fl validator.FieldLevel) bool {
	return models.ValidTheme(fl.Field().String())
}

func validateTaskFilter(fl validator.FieldLevel) bool {
	return models.ValidTaskFilter(fl.Field().String())
}

func validateTaskSort(fl validator.FieldLevel) bool {
	return models.ValidTaskSort(fl.Field().String())
}
