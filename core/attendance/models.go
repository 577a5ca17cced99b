package attendance

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

// Columns
const (
	ColumnID        = "id"
	ColumnStudentID = "student_id"
	ColumnDate      = "date"
	ColumnStatus    = "status"
)

type Status string

const (
	Present Status = "Present"
	Absent  Status = "Absent"
)

// ParseStatus accepts "Present"/"Absent" in any case, or their first letter.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(core.CleanString(s)) {
	case "present", "p":
		return Present, nil
	case "absent", "a":
		return Absent, nil
	default:
		return "", core.NewValidationError(nil, core.FieldError{Field: "status", Error: fmt.Sprintf("invalid status %q, expected Present or Absent", s)})
	}
}

func (s Status) Valid() bool { return s == Present || s == Absent }

func (s Status) String() string { return string(s) }

// Scan implements sql.Scanner.
func (s *Status) Scan(src interface{}) error {
	var v string
	switch val := src.(type) {
	case string:
		v = val
	case []byte:
		v = string(val)
	default:
		return fmt.Errorf("cannot scan %T into attendance.Status", src)
	}
	*s = Status(v)
	if !s.Valid() {
		return fmt.Errorf("unknown attendance status %q", v)
	}
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown attendance status %q", string(s))
	}
	return string(s), nil
}

// Event is one attendance record for a student on a date.
type Event struct {
	ID        int       `json:"attendance_id" db:"id"`
	StudentID int       `json:"student_id" db:"student_id"`
	Date      core.Date `json:"date" db:"date"`
	Status    Status    `json:"status" db:"status"`
}

// Mark is the status of one student in a batch recording.
type Mark struct {
	StudentID int
	Status    Status
}

// EventFilter applies an AND operation on the non-zero fields. From and To are inclusive.
type EventFilter struct {
	StudentID int
	From      core.Date
	To        core.Date
}

// Summary is derived from a student's events; it is never stored.
type Summary struct {
	StudentID            int     `json:"student_id"`
	TotalDays            int     `json:"total_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Summarize counts the events of a student. The percentage only accounts for recorded days.
func Summarize(studentID int, events []Event) Summary {
	sum := Summary{StudentID: studentID}
	for _, e := range events {
		sum.TotalDays++
		switch e.Status {
		case Present:
			sum.PresentDays++
		case Absent:
			sum.AbsentDays++
		}
	}
	sum.AttendancePercentage = core.Percent(sum.PresentDays, sum.TotalDays)
	return sum
}
