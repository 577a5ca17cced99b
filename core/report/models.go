package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

// Kind tells which shape a Report has.
type Kind string

const (
	KindStudent Kind = "student"
	KindDaily   Kind = "daily"
	KindCourse  Kind = "course"
	KindMonthly Kind = "monthly"
)

// NotRecorded is the daily status of a student without an event on that date.
const NotRecorded attendance.Status = "Not Recorded"

// Report is implemented by *StudentReport, *DailyReport, *CourseReport and *MonthlyReport.
type Report interface {
	Kind() Kind
}

type (
	StudentReport struct {
		Student           student.Student    `json:"student"`
		AttendanceSummary attendance.Summary `json:"attendance_summary"`
		AttendanceRecords []attendance.Event `json:"attendance_records"` // latest first
		GeneratedAt       time.Time          `json:"generated_at"`
	}

	DailyEntry struct {
		StudentID int               `json:"student_id"`
		Name      string            `json:"name"`
		Course    string            `json:"course"`
		Status    attendance.Status `json:"status"`
	}

	DailyReport struct {
		Date                 core.Date    `json:"date"`
		PresentCount         int          `json:"present_count"`
		AbsentCount          int          `json:"absent_count"`
		NotRecorded          int          `json:"not_recorded"`
		TotalStudents        int          `json:"total_students"`
		AttendancePercentage float64      `json:"attendance_percentage"` // present / total_students
		Entries              []DailyEntry `json:"entries"`
		GeneratedAt          time.Time    `json:"generated_at"`
	}

	CourseEntry struct {
		Student           student.Student    `json:"student"`
		AttendanceSummary attendance.Summary `json:"attendance_summary"`
	}

	CourseReport struct {
		Course                      string        `json:"course"`
		StudentCount                int           `json:"student_count"`
		OverallAttendancePercentage float64       `json:"overall_attendance_percentage"` // sum(present) / sum(total)
		StudentReports              []CourseEntry `json:"student_reports"`
		GeneratedAt                 time.Time     `json:"generated_at"`
	}

	DayBreakdown struct {
		Date              core.Date `json:"date"`
		Present           int       `json:"present"`
		Absent            int       `json:"absent"`
		Total             int       `json:"total"`
		PresentPercentage float64   `json:"present_percentage"`
	}

	MonthlyReport struct {
		Year                        int            `json:"year"`
		Month                       time.Month     `json:"month"`
		MonthName                   string         `json:"month_name"`
		DaysInMonth                 int            `json:"days_in_month"`
		Days                        []DayBreakdown `json:"days"` // only dates with events, ascending
		TotalStudents               int            `json:"total_students"`
		TotalRecords                int            `json:"total_records"`
		TotalPresent                int            `json:"total_present"`
		TotalAbsent                 int            `json:"total_absent"`
		OverallAttendancePercentage float64        `json:"overall_attendance_percentage"`
		GeneratedAt                 time.Time      `json:"generated_at"`
	}
)

func (*StudentReport) Kind() Kind { return KindStudent }
func (*DailyReport) Kind() Kind   { return KindDaily }
func (*CourseReport) Kind() Kind  { return KindCourse }
func (*MonthlyReport) Kind() Kind { return KindMonthly }

// Document is the JSON representation of an exported report.
type Document struct {
	Kind   Kind            `json:"kind"`
	Report json.RawMessage `json:"report"`
}

var ErrUnknownKind = errors.New("unknown report kind")

// New returns an empty report of the given kind.
func New(kind Kind) (Report, error) {
	switch kind {
	case KindStudent:
		return &StudentReport{}, nil
	case KindDaily:
		return &DailyReport{}, nil
	case KindCourse:
		return &CourseReport{}, nil
	case KindMonthly:
		return &MonthlyReport{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
}

// Decode reads a Document and returns its typed report.
func Decode(r io.Reader) (Report, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding report document")
	}
	rep, err := New(doc.Kind)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(doc.Report, rep); err != nil {
		return nil, errors.Wrapf(err, "decoding %s report", doc.Kind)
	}
	return rep, nil
}
