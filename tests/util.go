package testutil

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database"
)

// PrepareDB opens a migrated in-memory sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenSQLite(database.MemoryPath)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db, log.New(io.Discard, "", 0)); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// CreateStudent stores a student enrolled on the given date (today by default).
func CreateStudent(t *testing.T, repo student.Repository, name, course string, enrolledAt ...core.Date) student.Student {
	t.Helper()
	date := core.Today()
	if len(enrolledAt) > 0 {
		date = enrolledAt[0]
	}
	s, err := repo.CreateStudent(context.Background(), student.Student{Name: name, Course: course, EnrollmentDate: date})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func RecordAttendance(t *testing.T, repo attendance.Repository, studentID int, date core.Date, status attendance.Status) attendance.Event {
	t.Helper()
	e, err := repo.UpsertEvent(context.Background(), attendance.Event{StudentID: studentID, Date: date, Status: status})
	if err != nil {
		t.Fatalf("RecordAttendance() failed: %v", err)
	}
	return e
}

// NopLogger discards everything but keeps the debug messages for assertions.
type NopLogger struct {
	Debugs []string
}

var _ core.Logger = (*NopLogger)(nil)

func (l *NopLogger) Debug(msg string, _ ...interface{}) { l.Debugs = append(l.Debugs, msg) }
func (l *NopLogger) Info(string, ...interface{})        {}
func (l *NopLogger) Warn(string, ...interface{})        {}
func (l *NopLogger) Error(string, ...interface{})       {}
func (l *NopLogger) Fatal(string, ...interface{})       {}
