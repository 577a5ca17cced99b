package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/inmem"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/tests"
)

var (
	stdRepo student.Repository
	attRepo attendance.Repository
)

func setup(t *testing.T) *report.Service {
	t.Helper()
	db := inmemdb.Open()
	stdRepo = inmemdb.NewStudentRepository(db)
	attRepo = inmemdb.NewAttendanceRepository(db)
	stdSvc := student.NewService(stdRepo)
	return report.NewService(stdSvc, attendance.NewService(attRepo, stdSvc))
}

func day(d int) core.Date { return core.NewDate(2024, time.March, d) }

func TestService_StudentSummary(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	sara := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")

	sum, err := svc.StudentSummary(ctx, sara.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.Summary{StudentID: sara.ID}, sum, "no events is 0%, not an error")

	testutil.RecordAttendance(t, attRepo, sara.ID, day(1), attendance.Present)
	testutil.RecordAttendance(t, attRepo, sara.ID, day(2), attendance.Absent)
	testutil.RecordAttendance(t, attRepo, sara.ID, day(3), attendance.Present)
	sum, err = svc.StudentSummary(ctx, sara.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalDays)
	assert.Equal(t, sum.TotalDays, sum.PresentDays+sum.AbsentDays)
	assert.Equal(t, 66.67, sum.AttendancePercentage)

	_, err = svc.StudentSummary(ctx, 99)
	assert.ErrorIs(t, err, student.ErrNotFound)
}

func TestService_Student(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	sara := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")

	rep, err := svc.Student(ctx, sara.ID)
	require.NoError(t, err)
	assert.NotNil(t, rep.AttendanceRecords)
	assert.Empty(t, rep.AttendanceRecords)
	assert.Equal(t, report.KindStudent, rep.Kind())

	e1 := testutil.RecordAttendance(t, attRepo, sara.ID, day(1), attendance.Present)
	e2 := testutil.RecordAttendance(t, attRepo, sara.ID, day(4), attendance.Absent)
	rep, err = svc.Student(ctx, sara.ID)
	require.NoError(t, err)
	assert.Equal(t, sara, rep.Student)
	assert.Equal(t, []attendance.Event{e2, e1}, rep.AttendanceRecords)
	assert.Equal(t, 50.0, rep.AttendanceSummary.AttendancePercentage)
	assert.False(t, rep.GeneratedAt.IsZero())

	_, err = svc.Student(ctx, 99)
	assert.ErrorIs(t, err, student.ErrNotFound)
}

func TestService_Daily(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	rep, err := svc.Daily(ctx, day(1))
	require.NoError(t, err)
	assert.Zero(t, rep.TotalStudents)
	assert.Zero(t, rep.AttendancePercentage)
	assert.Empty(t, rep.Entries)

	s1 := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")
	s2 := testutil.CreateStudent(t, stdRepo, "Ali Ahmed", "CS101")
	s3 := testutil.CreateStudent(t, stdRepo, "Omar Said", "MA201")
	testutil.RecordAttendance(t, attRepo, s3.ID, day(1), attendance.Present)
	testutil.RecordAttendance(t, attRepo, s1.ID, day(1), attendance.Absent)
	testutil.RecordAttendance(t, attRepo, s2.ID, day(2), attendance.Present) // other day

	rep, err = svc.Daily(ctx, day(1))
	require.NoError(t, err)
	assert.Equal(t, day(1), rep.Date)
	assert.Equal(t, 3, rep.TotalStudents)
	assert.Equal(t, 1, rep.PresentCount)
	assert.Equal(t, 1, rep.AbsentCount)
	assert.Equal(t, 1, rep.NotRecorded)
	assert.Equal(t, rep.TotalStudents, rep.PresentCount+rep.AbsentCount+rep.NotRecorded)
	assert.Equal(t, 33.33, rep.AttendancePercentage, "unrecorded students count in the denominator")

	want := []report.DailyEntry{
		{StudentID: s1.ID, Name: "Sara Ali", Course: "CS101", Status: attendance.Absent},
		{StudentID: s2.ID, Name: "Ali Ahmed", Course: "CS101", Status: report.NotRecorded},
		{StudentID: s3.ID, Name: "Omar Said", Course: "MA201", Status: attendance.Present},
	}
	assert.Equal(t, want, rep.Entries)
}

func TestService_Course(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	s1 := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")
	s2 := testutil.CreateStudent(t, stdRepo, "Ali Ahmed", "CS102")
	testutil.CreateStudent(t, stdRepo, "Omar Said", "cs103")
	testutil.CreateStudent(t, stdRepo, "Huda Nasser", "MA201")

	// 1 present out of 11 recorded days
	testutil.RecordAttendance(t, attRepo, s1.ID, day(1), attendance.Present)
	for d := 2; d <= 6; d++ {
		testutil.RecordAttendance(t, attRepo, s1.ID, day(d), attendance.Absent)
	}
	for d := 1; d <= 5; d++ {
		testutil.RecordAttendance(t, attRepo, s2.ID, day(d), attendance.Absent)
	}

	rep, err := svc.Course(ctx, " CS ")
	require.NoError(t, err)
	assert.Equal(t, "CS", rep.Course)
	assert.Equal(t, 2, rep.StudentCount, "matching is case-sensitive")
	assert.Len(t, rep.StudentReports, rep.StudentCount)
	assert.Equal(t, 9.09, rep.OverallAttendancePercentage)

	byStudent := make(map[int]attendance.Summary)
	for _, sr := range rep.StudentReports {
		byStudent[sr.Student.ID] = sr.AttendanceSummary
	}
	assert.Equal(t, 16.67, byStudent[s1.ID].AttendancePercentage)
	assert.Equal(t, 0.0, byStudent[s2.ID].AttendancePercentage)

	rep, err = svc.Course(ctx, "MA")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.StudentCount)
	assert.Zero(t, rep.OverallAttendancePercentage, "no recorded days is 0%")

	_, err = svc.Course(ctx, "BIO")
	assert.ErrorIs(t, err, report.ErrCourseNotFound)

	_, err = svc.Course(ctx, "  ")
	assert.True(t, core.IsValidation(err))
}

func TestService_Monthly(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	s1 := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")
	s2 := testutil.CreateStudent(t, stdRepo, "Ali Ahmed", "CS101")
	testutil.CreateStudent(t, stdRepo, "Omar Said", "MA201")

	feb := func(d int) core.Date { return core.NewDate(2024, time.February, d) }
	testutil.RecordAttendance(t, attRepo, s1.ID, feb(29), attendance.Present)
	testutil.RecordAttendance(t, attRepo, s2.ID, feb(29), attendance.Absent)
	testutil.RecordAttendance(t, attRepo, s1.ID, feb(5), attendance.Present)
	testutil.RecordAttendance(t, attRepo, s1.ID, feb(1), attendance.Absent)
	// out of the month
	testutil.RecordAttendance(t, attRepo, s1.ID, day(1), attendance.Present)
	testutil.RecordAttendance(t, attRepo, s2.ID, core.NewDate(2024, time.January, 31), attendance.Present)

	rep, err := svc.Monthly(ctx, 2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, "February", rep.MonthName)
	assert.Equal(t, 29, rep.DaysInMonth)
	assert.Equal(t, 2, rep.TotalStudents, "students with at least one event")
	assert.Equal(t, 4, rep.TotalRecords)
	assert.Equal(t, 2, rep.TotalPresent)
	assert.Equal(t, 2, rep.TotalAbsent)
	assert.Equal(t, 50.0, rep.OverallAttendancePercentage)

	want := []report.DayBreakdown{
		{Date: feb(1), Absent: 1, Total: 1, PresentPercentage: 0},
		{Date: feb(5), Present: 1, Total: 1, PresentPercentage: 100},
		{Date: feb(29), Present: 1, Absent: 1, Total: 2, PresentPercentage: 50},
	}
	assert.Equal(t, want, rep.Days, "only days with events, ascending")

	rep, err = svc.Monthly(ctx, 2023, time.February)
	require.NoError(t, err)
	assert.Equal(t, 28, rep.DaysInMonth)
	assert.NotNil(t, rep.Days)
	assert.Empty(t, rep.Days)
	assert.Zero(t, rep.OverallAttendancePercentage)

	for _, m := range []time.Month{0, 13} {
		_, err = svc.Monthly(ctx, 2024, m)
		assert.True(t, core.IsValidation(err), "month %d", m)
	}
	_, err = svc.Monthly(ctx, 0, time.January)
	assert.True(t, core.IsValidation(err))
}
