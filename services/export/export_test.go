package exportsvc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/tests"
)

var generatedAt = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

func day(d int) core.Date { return core.NewDate(2024, time.March, d) }

func studentReport() *report.StudentReport {
	sara := student.Student{ID: 1, Name: "Sara Ali", Course: "CS101", EnrollmentDate: day(1)}
	events := []attendance.Event{
		{ID: 3, StudentID: 1, Date: day(4), Status: attendance.Present},
		{ID: 2, StudentID: 1, Date: day(3), Status: attendance.Absent},
		{ID: 1, StudentID: 1, Date: day(2), Status: attendance.Present},
	}
	return &report.StudentReport{
		Student:           sara,
		AttendanceSummary: attendance.Summarize(sara.ID, events),
		AttendanceRecords: events,
		GeneratedAt:       generatedAt,
	}
}

func dailyReport() *report.DailyReport {
	return &report.DailyReport{
		Date:                 day(4),
		PresentCount:         1,
		AbsentCount:          0,
		NotRecorded:          1,
		TotalStudents:        2,
		AttendancePercentage: 50,
		Entries: []report.DailyEntry{
			{StudentID: 1, Name: "Sara Ali", Course: "CS101", Status: attendance.Present},
			{StudentID: 2, Name: "Ali, Jr.", Course: "CS101", Status: report.NotRecorded},
		},
		GeneratedAt: generatedAt,
	}
}

func courseReport() *report.CourseReport {
	s := studentReport()
	return &report.CourseReport{
		Course:                      "CS",
		StudentCount:                1,
		OverallAttendancePercentage: s.AttendanceSummary.AttendancePercentage,
		StudentReports:              []report.CourseEntry{{Student: s.Student, AttendanceSummary: s.AttendanceSummary}},
		GeneratedAt:                 generatedAt,
	}
}

func monthlyReport() *report.MonthlyReport {
	return &report.MonthlyReport{
		Year:        2024,
		Month:       time.March,
		MonthName:   "March",
		DaysInMonth: 31,
		Days: []report.DayBreakdown{
			{Date: day(2), Present: 1, Total: 1, PresentPercentage: 100},
			{Date: day(3), Present: 2, Absent: 1, Total: 3, PresentPercentage: 66.67},
		},
		TotalStudents:               3,
		TotalRecords:                4,
		TotalPresent:                3,
		TotalAbsent:                 1,
		OverallAttendancePercentage: 75,
		GeneratedAt:                 generatedAt,
	}
}

// unknownReport is none of the known shapes.
type unknownReport struct {
	Answer int `json:"answer"`
}

func (unknownReport) Kind() report.Kind { return "unknown" }

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name string
		rep  report.Report
		want string
	}{
		{
			name: "student",
			rep:  studentReport(),
			want: "Date,Status\n2024-03-04,Present\n2024-03-03,Absent\n2024-03-02,Present\n",
		},
		{
			name: "daily",
			rep:  dailyReport(),
			want: "ID,Name,Course,Status\n1,Sara Ali,CS101,Present\n2,\"Ali, Jr.\",CS101,Not Recorded\n",
		},
		{
			name: "course",
			rep:  courseReport(),
			want: "ID,Name,Course,TotalDays,PresentDays,AbsentDays,Attendance%\n1,Sara Ali,CS101,3,2,1,66.67\n",
		},
		{
			name: "monthly",
			rep:  monthlyReport(),
			want: "Date,Present,Absent,Total,Percentage\n2024-03-02,1,0,1,100.00\n2024-03-03,2,1,3,66.67\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, WriteCSV(buf, tt.rep))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	err := WriteCSV(new(bytes.Buffer), unknownReport{})
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestWriteJSON_roundTrip(t *testing.T) {
	for _, rep := range []report.Report{studentReport(), dailyReport(), courseReport(), monthlyReport()} {
		t.Run(string(rep.Kind()), func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, WriteJSON(buf, rep))
			assert.True(t, strings.HasPrefix(buf.String(), "{\n    \"kind\": \""+string(rep.Kind())+"\""), "pretty-printed envelope")

			got, err := report.Decode(buf)
			require.NoError(t, err)
			assert.Equal(t, rep, got)
		})
	}

	// any report can be dumped to JSON
	buf := new(bytes.Buffer)
	require.NoError(t, WriteJSON(buf, unknownReport{Answer: 42}))
	assert.Contains(t, buf.String(), `"answer": 42`)
}

func TestWriteText(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteText(buf, studentReport()))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Student Attendance Report - Sara Ali", lines[0])
	assert.Contains(t, lines, "student_id: 1")
	assert.Contains(t, lines, "attendance_percentage: 66.67")
	assert.Contains(t, lines, "generated_at: 2024-03-05T09:30:00Z")
	assert.Contains(t, lines, "2024-03-03  Absent")

	assert.ErrorIs(t, WriteText(new(bytes.Buffer), unknownReport{}), ErrUnsupportedShape)
}

func TestWritePDF(t *testing.T) {
	for _, rep := range []report.Report{studentReport(), dailyReport(), courseReport(), monthlyReport()} {
		buf := new(bytes.Buffer)
		require.NoError(t, WritePDF(buf, rep))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "%s report", rep.Kind())
	}
	assert.ErrorIs(t, WritePDF(new(bytes.Buffer), unknownReport{}), ErrUnsupportedShape)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": CSV, " JSON ": JSON, "Pdf": PDF, "txt": Text, "text": Text} {
		got, err := ParseFormat(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	ex := NewExporter(dir, &testutil.NopLogger{})
	rep := studentReport()

	t.Run("extension is appended", func(t *testing.T) {
		path, err := ex.Export(rep, CSV, "sara")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sara.csv"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Date,Status\n"))
	})

	t.Run("extension is kept", func(t *testing.T) {
		path, err := ex.Export(rep, JSON, "sara.JSON")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "sara.JSON"), path)
	})

	t.Run("generated name", func(t *testing.T) {
		path, err := ex.Export(rep, PDF, "")
		require.NoError(t, err)
		name := filepath.Base(path)
		assert.True(t, strings.HasPrefix(name, "student-report-"), name)
		assert.Len(t, name, len("student-report-")+8+len(".pdf"))
	})

	t.Run("absolute path", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "nested", "out.txt")
		path, err := ex.Export(rep, Text, want)
		require.NoError(t, err)
		assert.Equal(t, want, path)
	})

	t.Run("unsupported shape writes nothing", func(t *testing.T) {
		_, err := ex.Export(unknownReport{}, CSV, "unknown")
		assert.ErrorIs(t, err, ErrUnsupportedShape)
		_, err = os.Stat(filepath.Join(dir, "unknown.csv"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := ex.Export(rep, Format("xls"), "sara")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
