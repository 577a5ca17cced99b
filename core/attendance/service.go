package attendance

import (
	"context"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		// UpsertEvent inserts the event or replaces the status of the existing (student, date) event.
		UpsertEvent(ctx context.Context, e Event) (Event, error)
		// UpsertEvents upserts all the events atomically and returns how many were written.
		UpsertEvents(ctx context.Context, events []Event) (int, error)
		GetEvent(ctx context.Context, id int) (Event, error)
		QueryEvents(ctx context.Context, filter EventFilter, ordering []core.DBOrdering) ([]Event, error)
		DeleteEventsByID(ctx context.Context, ids []int) (int, error)
	}

	// StudentGetter is used to check that a student exists before recording its attendance.
	StudentGetter interface {
		Get(ctx context.Context, id int) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentGetter
	}
)

func NewService(repo Repository, students StudentGetter) *Service {
	return &Service{repo: repo, students: students}
}

// Record stores the status of a student on a date. Recording the same (student, date) twice keeps a single
// event holding the latest status.
func (svc *Service) Record(ctx context.Context, studentID int, date core.Date, status Status) (Event, error) {
	if err := validateMark(date, status); err != nil {
		return Event{}, err
	}
	if _, err := svc.students.Get(ctx, studentID); err != nil {
		return Event{}, err
	}
	return svc.repo.UpsertEvent(ctx, Event{StudentID: studentID, Date: date, Status: status})
}

// RecordBatch records the marks of several students on the same date in one go.
func (svc *Service) RecordBatch(ctx context.Context, date core.Date, marks []Mark) (int, error) {
	events := make([]Event, 0, len(marks))
	for _, m := range marks {
		if err := validateMark(date, m.Status); err != nil {
			return 0, err
		}
		if _, err := svc.students.Get(ctx, m.StudentID); err != nil {
			return 0, errors.WithMessagef(err, "student %d", m.StudentID)
		}
		events = append(events, Event{StudentID: m.StudentID, Date: date, Status: m.Status})
	}
	if len(events) == 0 {
		return 0, nil
	}
	return svc.repo.UpsertEvents(ctx, events)
}

func (svc *Service) Get(ctx context.Context, id int) (Event, error) {
	if id <= 0 {
		return Event{}, ErrNotFound
	}
	return svc.repo.GetEvent(ctx, id)
}

// ForStudent returns the events of a student, latest first.
func (svc *Service) ForStudent(ctx context.Context, studentID int) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, EventFilter{StudentID: studentID}, []core.DBOrdering{core.Desc(ColumnDate)})
}

// ForDate returns the events of a date ordered by student.
func (svc *Service) ForDate(ctx context.Context, date core.Date) ([]Event, error) {
	if date.IsZero() {
		return nil, errMissingDate
	}
	return svc.repo.QueryEvents(ctx, EventFilter{From: date, To: date}, []core.DBOrdering{core.Asc(ColumnStudentID)})
}

// InRange returns the events between from and to (inclusive) ordered by date, then student.
func (svc *Service) InRange(ctx context.Context, from, to core.Date) ([]Event, error) {
	if from.IsZero() || to.IsZero() {
		return nil, errMissingDate
	}
	return svc.repo.QueryEvents(ctx, EventFilter{From: from, To: to}, []core.DBOrdering{core.Asc(ColumnDate), core.Asc(ColumnStudentID)})
}

func (svc *Service) Delete(ctx context.Context, ids ...int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return svc.repo.DeleteEventsByID(ctx, ids)
}

// Summary returns the attendance totals of an existing student.
func (svc *Service) Summary(ctx context.Context, studentID int) (Summary, error) {
	if _, err := svc.students.Get(ctx, studentID); err != nil {
		return Summary{}, err
	}
	events, err := svc.ForStudent(ctx, studentID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(studentID, events), nil
}

var errMissingDate = core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date is required"})

func validateMark(date core.Date, status Status) error {
	if date.IsZero() {
		return errMissingDate
	}
	if !status.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "status must be Present or Absent"})
	}
	return nil
}
