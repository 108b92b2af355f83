package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their form name so messages map onto inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("classification", func(fl validator.FieldLevel) bool {
		return model.HasOption(model.Classifications, fl.Field().String())
	}))
	must(v.RegisterValidation("movieformat", func(fl validator.FieldLevel) bool {
		return model.HasOption(model.Formats, fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// roomInput is the room create/edit form.
type roomInput struct {
	Name      string `form:"name" validate:"required,min=3"`
	Capacity  int    `form:"capacity" validate:"gt=0"`
	BreakTime int    `form:"break_time" validate:"gt=0"`
}

// movieInput is the movie create/edit form.
type movieInput struct {
	Title          string `form:"title" validate:"required,min=3"`
	Genre          string `form:"genre" validate:"required,min=3"`
	Duration       int    `form:"duration" validate:"gt=0"`
	Classification string `form:"classification" validate:"classification"`
	Format         string `form:"format" validate:"movieformat"`
}

// customerInput is the buyer form of the checkout page.  Seats mirrors the
// requested quantity and must be set.
type customerInput struct {
	Name  string `form:"name" validate:"required,min=3"`
	Email string `form:"email" validate:"required,emailaddr"`
	Phone string `form:"phone" validate:"omitempty,phone10"`
	Seats int    `form:"seats" validate:"gt=0"`
}

func (in *customerInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in *roomInput) trim()  { in.Name = strings.TrimSpace(in.Name) }
func (in *movieInput) trim() { in.Title = strings.TrimSpace(in.Title); in.Genre = strings.TrimSpace(in.Genre) }

// fieldErrors maps a form field name to the message shown under it.
type fieldErrors map[string]string

// check validates v and returns nil when it is valid.
func check(v interface{}) fieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fieldErrors{"form": "The form could not be validated."}
	}
	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

var fieldLabels = map[string]string{
	"name":           "Name",
	"capacity":       "Capacity",
	"break_time":     "Break time",
	"title":          "Title",
	"genre":          "Genre",
	"duration":       "Duration",
	"classification": "Classification",
	"format":         "Format",
	"email":          "Email",
	"phone":          "Phone",
	"seats":          "Number of seats",
}

func message(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "emailaddr":
		return "Enter a valid email address."
	case "phone10":
		return "Phone must have exactly 10 digits."
	case "classification":
		return "Choose a valid classification."
	case "movieformat":
		return "Choose a valid format."
	}
	return label + " is invalid."
}
