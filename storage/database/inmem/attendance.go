package inmemdb

import (
	"cmp"
	"context"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func eventField(name string) (func(a, b attendance.Event) int, bool) {
	switch name {
	case attendance.ColumnID:
		return func(a, b attendance.Event) int { return cmp.Compare(a.ID, b.ID) }, true
	case attendance.ColumnStudentID:
		return func(a, b attendance.Event) int { return cmp.Compare(a.StudentID, b.StudentID) }, true
	case attendance.ColumnDate:
		return func(a, b attendance.Event) int { return compareDates(a.Date, b.Date) }, true
	case attendance.ColumnStatus:
		return func(a, b attendance.Event) int { return cmp.Compare(a.Status, b.Status) }, true
	}
	return nil, false
}

// upsert must be called with the write lock held.
func (repo *attendanceRepository) upsert(e attendance.Event) attendance.Event {
	for _, existing := range repo.db.events {
		if existing.StudentID == e.StudentID && existing.Date.Equal(e.Date) {
			existing.Status = e.Status
			return *existing
		}
	}
	repo.db.attendancePK++
	e.ID = repo.db.attendancePK
	repo.db.events[e.ID] = &e
	return e
}

func (repo *attendanceRepository) UpsertEvent(_ context.Context, e attendance.Event) (attendance.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[e.StudentID]; !ok {
		return attendance.Event{}, errForeignKey
	}
	return repo.upsert(e), nil
}

func (repo *attendanceRepository) UpsertEvents(_ context.Context, events []attendance.Event) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// all or nothing
	for _, e := range events {
		if _, ok := repo.db.students[e.StudentID]; !ok {
			return 0, errForeignKey
		}
	}
	for _, e := range events {
		repo.upsert(e)
	}
	return len(events), nil
}

func (repo *attendanceRepository) GetEvent(_ context.Context, id int) (attendance.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.events[id]; ok {
		return *e, nil
	}
	return attendance.Event{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) QueryEvents(_ context.Context, filter attendance.EventFilter, ordering []core.DBOrdering) ([]attendance.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]attendance.Event, 0)
	for _, e := range repo.db.events {
		if filter.StudentID != 0 && e.StudentID != filter.StudentID {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		events = append(events, *e)
	}
	ordering = append([]core.DBOrdering{}, ordering...)
	ordering = append(ordering, core.Asc(attendance.ColumnID))
	if err := sortBy(events, ordering, eventField); err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *attendanceRepository) DeleteEventsByID(_ context.Context, ids []int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.events[id]; ok {
			delete(repo.db.events, id)
			cnt++
		}
	}
	return cnt, nil
}
