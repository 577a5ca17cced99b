// Package inmemdb keeps students and attendance in memory. It backs the "memory" engine and service tests.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

var (
	errUnknownOrderingField = errors.New("unknown ordering field")
	errForeignKey           = errors.New("attendance references an unknown student")
)

type DB struct {
	mutex sync.RWMutex

	students     map[int]*student.Student
	events       map[int]*attendance.Event
	studentPK    int
	attendancePK int
}

func Open() *DB {
	return &DB{
		students: make(map[int]*student.Student),
		events:   make(map[int]*attendance.Event),
	}
}

// sortBy stably sorts items by ordering; field returns the comparison function of a field name.
func sortBy[T any](items []T, ordering []core.DBOrdering, field func(name string) (func(a, b T) int, bool)) error {
	fns := make([]func(a, b T) int, 0, len(ordering))
	for _, ord := range ordering {
		fn, ok := field(ord.Field)
		if !ok {
			return errors.Wrapf(errUnknownOrderingField, "%q", ord.Field)
		}
		if !ord.Ascending {
			asc := fn
			fn = func(a, b T) int { return -asc(a, b) }
		}
		fns = append(fns, fn)
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, fn := range fns {
			if c := fn(items[i], items[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

func compareDates(a, b core.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
