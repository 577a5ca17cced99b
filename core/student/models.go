package student

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

// Columns
const (
	ColumnID             = "id"
	ColumnName           = "name"
	ColumnCourse         = "course"
	ColumnEnrollmentDate = "enrollment_date"
)

type Student struct {
	ID             int       `json:"student_id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Course         string    `json:"course" db:"course"`
	EnrollmentDate core.Date `json:"enrollment_date" db:"enrollment_date"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name   string `json:"name" validate:"required,notblank"`
	Course string `json:"course" validate:"required,coursecode"`
}

func (ns *NewStudent) Validate(ctx context.Context, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Course = core.CleanString(ns.Course)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ctx, ns.Name, 0)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Blank fields keep their current value.
type UpdateStudent struct {
	Name   string `json:"name"`
	Course string `json:"course" validate:"omitempty,coursecode"`
}

func (us *UpdateStudent) Validate(ctx context.Context, orig Student, svc *Service) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if course := core.CleanString(us.Course); course != "" {
		us.Course = course
	} else {
		us.Course = orig.Course
	}

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	if us.Name == orig.Name {
		return nil
	}
	return svc.checkUniqueness(ctx, us.Name, orig.ID)
}

// SearchFilter applies an AND operation on all the provided (valid) criteria.
// Name and Course are case-insensitive substring matches.
type SearchFilter struct {
	ID           null.Int
	Name         null.String
	Course       null.String
	EnrolledFrom core.Date
	EnrolledTo   core.Date
}

func (sf *SearchFilter) IsEmpty() bool {
	return !sf.ID.Valid && !sf.Name.Valid && !sf.Course.Valid && sf.EnrolledFrom.IsZero() && sf.EnrolledTo.IsZero()
}

// Clean trims text criteria and invalidates the blank ones.
func (sf *SearchFilter) Clean() {
	clean := func(s null.String) null.String {
		v := core.CleanString(s.String)
		return null.NewString(v, s.Valid && v != "")
	}
	sf.Name = clean(sf.Name)
	sf.Course = clean(sf.Course)
	if sf.ID.Valid && sf.ID.Int <= 0 {
		sf.ID = null.Int{}
	}
}
