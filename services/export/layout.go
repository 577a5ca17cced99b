package exportsvc

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
)

var ErrUnsupportedShape = errors.New("unsupported report shape")

type (
	field struct {
		Key   string
		Value string
	}

	// layout is the tabular rendering of a report shared by the CSV, text and PDF writers.
	layout struct {
		Title   string
		Summary []field
		Header  []string
		Rows    [][]string
	}
)

func itoa(i int) string { return strconv.Itoa(i) }

func percent(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func timestamp(t time.Time) string { return t.Format(time.RFC3339) }

func layoutOf(rep report.Report) (*layout, error) {
	switch r := rep.(type) {
	case *report.StudentReport:
		return studentLayout(r), nil
	case *report.DailyReport:
		return dailyLayout(r), nil
	case *report.CourseReport:
		return courseLayout(r), nil
	case *report.MonthlyReport:
		return monthlyLayout(r), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedShape, "%T", rep)
	}
}

func studentLayout(r *report.StudentReport) *layout {
	l := &layout{
		Title: "Student Attendance Report - " + r.Student.Name,
		Summary: []field{
			{"student_id", itoa(r.Student.ID)},
			{"name", r.Student.Name},
			{"course", r.Student.Course},
			{"enrollment_date", r.Student.EnrollmentDate.String()},
			{"total_days", itoa(r.AttendanceSummary.TotalDays)},
			{"present_days", itoa(r.AttendanceSummary.PresentDays)},
			{"absent_days", itoa(r.AttendanceSummary.AbsentDays)},
			{"attendance_percentage", percent(r.AttendanceSummary.AttendancePercentage)},
			{"generated_at", timestamp(r.GeneratedAt)},
		},
		Header: []string{"Date", "Status"},
		Rows:   make([][]string, 0, len(r.AttendanceRecords)),
	}
	for _, e := range r.AttendanceRecords {
		l.Rows = append(l.Rows, []string{e.Date.String(), e.Status.String()})
	}
	return l
}

func dailyLayout(r *report.DailyReport) *layout {
	l := &layout{
		Title: "Daily Attendance Report - " + r.Date.String(),
		Summary: []field{
			{"date", r.Date.String()},
			{"total_students", itoa(r.TotalStudents)},
			{"present_count", itoa(r.PresentCount)},
			{"absent_count", itoa(r.AbsentCount)},
			{"not_recorded", itoa(r.NotRecorded)},
			{"attendance_percentage", percent(r.AttendancePercentage)},
			{"generated_at", timestamp(r.GeneratedAt)},
		},
		Header: []string{"ID", "Name", "Course", "Status"},
		Rows:   make([][]string, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		l.Rows = append(l.Rows, []string{itoa(e.StudentID), e.Name, e.Course, e.Status.String()})
	}
	return l
}

func courseLayout(r *report.CourseReport) *layout {
	l := &layout{
		Title: "Course Attendance Report - " + r.Course,
		Summary: []field{
			{"course", r.Course},
			{"student_count", itoa(r.StudentCount)},
			{"overall_attendance_percentage", percent(r.OverallAttendancePercentage)},
			{"generated_at", timestamp(r.GeneratedAt)},
		},
		Header: []string{"ID", "Name", "Course", "TotalDays", "PresentDays", "AbsentDays", "Attendance%"},
		Rows:   make([][]string, 0, len(r.StudentReports)),
	}
	for _, sr := range r.StudentReports {
		sum := sr.AttendanceSummary
		l.Rows = append(l.Rows, []string{
			itoa(sr.Student.ID),
			sr.Student.Name,
			sr.Student.Course,
			itoa(sum.TotalDays),
			itoa(sum.PresentDays),
			itoa(sum.AbsentDays),
			percent(sum.AttendancePercentage),
		})
	}
	return l
}

func monthlyLayout(r *report.MonthlyReport) *layout {
	l := &layout{
		Title: "Monthly Attendance Report - " + r.MonthName + " " + itoa(r.Year),
		Summary: []field{
			{"year", itoa(r.Year)},
			{"month", itoa(int(r.Month))},
			{"month_name", r.MonthName},
			{"days_in_month", itoa(r.DaysInMonth)},
			{"total_students", itoa(r.TotalStudents)},
			{"total_records", itoa(r.TotalRecords)},
			{"total_present", itoa(r.TotalPresent)},
			{"total_absent", itoa(r.TotalAbsent)},
			{"overall_attendance_percentage", percent(r.OverallAttendancePercentage)},
			{"generated_at", timestamp(r.GeneratedAt)},
		},
		Header: []string{"Date", "Present", "Absent", "Total", "Percentage"},
		Rows:   make([][]string, 0, len(r.Days)),
	}
	for _, d := range r.Days {
		l.Rows = append(l.Rows, []string{d.Date.String(), itoa(d.Present), itoa(d.Absent), itoa(d.Total), percent(d.PresentPercentage)})
	}
	return l
}
