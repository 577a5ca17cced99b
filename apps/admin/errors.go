package main

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/export"
)

// describeError renders err for a human; storage errors keep their wrapped context.
func describeError(err error) string {
	switch e := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		return describeFields(core.TranslateValidationErrors(e))
	case *core.ValidationError:
		if len(e.Fields) > 0 {
			return describeFields(e.Fields)
		}
	}

	switch {
	case errors.Is(err, student.ErrNotFound),
		errors.Is(err, attendance.ErrNotFound),
		errors.Is(err, report.ErrCourseNotFound):
		return "not found: " + err.Error()
	case errors.Is(err, exportsvc.ErrUnsupportedShape),
		errors.Is(err, exportsvc.ErrUnsupportedFormat):
		return "cannot export: " + err.Error()
	}
	return err.Error()
}

func describeFields(flds []core.FieldError) string {
	msgs := make([]string, 0, len(flds))
	for _, f := range flds {
		msgs = append(msgs, f.Error)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}
