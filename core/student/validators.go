package student

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

var (
	courseCodeTag   = "coursecode"
	courseCodeText  = "{0} must be 2 letters followed by 1 to 3 digits, e.g. CS101"
	courseCodeRegex = regexp.MustCompile(`^[A-Za-z]{2}\d{1,3}$`)
)

func init() {
	_ = core.Validate.RegisterValidation(courseCodeTag, courseCodeValidation)
	core.RegisterCustomTranslation(courseCodeTag, courseCodeText)
}

// ValidCourse reports whether course is a well formed course code.
func ValidCourse(course string) bool {
	return courseCodeRegex.MatchString(course)
}

// Custom Validators

func courseCodeValidation(fl validator.FieldLevel) bool {
	return ValidCourse(fl.Field().String())
}
