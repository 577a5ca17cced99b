package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

var (
	nowFunc = time.Now // mockable

	ErrCourseNotFound = errors.New("no students found for course")
)

type (
	// StudentReader is implemented by *student.Service.
	StudentReader interface {
		Get(ctx context.Context, id int) (student.Student, error)
		List(ctx context.Context) ([]student.Student, error)
		Search(ctx context.Context, filter student.SearchFilter) ([]student.Student, error)
	}

	// EventReader is implemented by *attendance.Service.
	EventReader interface {
		ForStudent(ctx context.Context, studentID int) ([]attendance.Event, error)
		ForDate(ctx context.Context, date core.Date) ([]attendance.Event, error)
		InRange(ctx context.Context, from, to core.Date) ([]attendance.Event, error)
	}

	// Service shapes raw students and events into reports. It performs no I/O besides the reader calls.
	Service struct {
		students StudentReader
		events   EventReader
	}
)

func NewService(students StudentReader, events EventReader) *Service {
	return &Service{students: students, events: events}
}

func generatedAt() time.Time {
	return nowFunc().UTC().Truncate(time.Second)
}

// StudentSummary returns the attendance totals of a student.
func (svc *Service) StudentSummary(ctx context.Context, studentID int) (attendance.Summary, error) {
	if _, err := svc.students.Get(ctx, studentID); err != nil {
		return attendance.Summary{}, err
	}
	events, err := svc.events.ForStudent(ctx, studentID)
	if err != nil {
		return attendance.Summary{}, err
	}
	return attendance.Summarize(studentID, events), nil
}

// Student returns the student, its summary and all of its events.
func (svc *Service) Student(ctx context.Context, studentID int) (*StudentReport, error) {
	stud, err := svc.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	events, err := svc.events.ForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []attendance.Event{}
	}
	return &StudentReport{
		Student:           stud,
		AttendanceSummary: attendance.Summarize(studentID, events),
		AttendanceRecords: events,
		GeneratedAt:       generatedAt(),
	}, nil
}

// Daily returns the status of every student of the roster on date.
// The percentage is computed against the whole roster, so unrecorded students lower it.
func (svc *Service) Daily(ctx context.Context, date core.Date) (*DailyReport, error) {
	roster, err := svc.students.List(ctx)
	if err != nil {
		return nil, err
	}
	events, err := svc.events.ForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	statuses := make(map[int]attendance.Status, len(events))
	for _, e := range events {
		statuses[e.StudentID] = e.Status
	}

	rep := &DailyReport{
		Date:          date,
		TotalStudents: len(roster),
		Entries:       make([]DailyEntry, 0, len(roster)),
		GeneratedAt:   generatedAt(),
	}
	for _, stud := range roster {
		status, ok := statuses[stud.ID]
		switch {
		case !ok:
			status = NotRecorded
			rep.NotRecorded++
		case status == attendance.Present:
			rep.PresentCount++
		case status == attendance.Absent:
			rep.AbsentCount++
		}
		rep.Entries = append(rep.Entries, DailyEntry{
			StudentID: stud.ID,
			Name:      stud.Name,
			Course:    stud.Course,
			Status:    status,
		})
	}
	rep.AttendancePercentage = core.Percent(rep.PresentCount, rep.TotalStudents)
	return rep, nil
}

// Course returns the summaries of the students whose course contains the (case-sensitive) substring.
// The overall percentage adds up the raw counts of all the students before dividing.
func (svc *Service) Course(ctx context.Context, course string) (*CourseReport, error) {
	course = core.CleanString(course)
	if course == "" {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "course", Error: "course is required"})
	}
	candidates, err := svc.students.Search(ctx, student.SearchFilter{Course: null.StringFrom(course)})
	if err != nil {
		return nil, err
	}

	rep := &CourseReport{
		Course:         course,
		StudentReports: make([]CourseEntry, 0, len(candidates)),
		GeneratedAt:    generatedAt(),
	}
	var present, total int
	for _, stud := range candidates {
		// the store may match case-insensitively
		if !strings.Contains(stud.Course, course) {
			continue
		}
		events, err := svc.events.ForStudent(ctx, stud.ID)
		if err != nil {
			return nil, err
		}
		sum := attendance.Summarize(stud.ID, events)
		present += sum.PresentDays
		total += sum.TotalDays
		rep.StudentReports = append(rep.StudentReports, CourseEntry{Student: stud, AttendanceSummary: sum})
	}
	if len(rep.StudentReports) == 0 {
		return nil, errors.Wrapf(ErrCourseNotFound, "%q", course)
	}
	rep.StudentCount = len(rep.StudentReports)
	rep.OverallAttendancePercentage = core.Percent(present, total)
	return rep, nil
}

// Monthly returns the per day breakdown of a month. Only the dates with at least one event are listed.
func (svc *Service) Monthly(ctx context.Context, year int, month time.Month) (*MonthlyReport, error) {
	if month < time.January || month > time.December {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "month", Error: "month must be between 1 and 12"})
	}
	if year < 1 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "year", Error: "year must be positive"})
	}
	from, to := core.MonthBounds(year, month)
	events, err := svc.events.InRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rep := &MonthlyReport{
		Year:        year,
		Month:       month,
		MonthName:   month.String(),
		DaysInMonth: core.DaysIn(year, month),
		Days:        make([]DayBreakdown, 0),
		GeneratedAt: generatedAt(),
	}
	students := make(map[int]struct{})
	days := make(map[core.Date]int) // date -> index in rep.Days
	for _, e := range events {
		idx, ok := days[e.Date]
		if !ok {
			idx = len(rep.Days)
			days[e.Date] = idx
			rep.Days = append(rep.Days, DayBreakdown{Date: e.Date})
		}
		day := &rep.Days[idx]
		day.Total++
		rep.TotalRecords++
		switch e.Status {
		case attendance.Present:
			day.Present++
			rep.TotalPresent++
		case attendance.Absent:
			day.Absent++
			rep.TotalAbsent++
		}
		students[e.StudentID] = struct{}{}
	}
	sortDays(rep.Days)
	for i := range rep.Days {
		rep.Days[i].PresentPercentage = core.Percent(rep.Days[i].Present, rep.Days[i].Total)
	}
	rep.TotalStudents = len(students)
	rep.OverallAttendancePercentage = core.Percent(rep.TotalPresent, rep.TotalRecords)
	return rep, nil
}

func sortDays(days []DayBreakdown) {
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
}
