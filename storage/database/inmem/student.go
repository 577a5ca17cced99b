package inmemdb

import (
	"cmp"
	"context"
	"strings"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func studentField(name string) (func(a, b student.Student) int, bool) {
	switch name {
	case student.ColumnID:
		return func(a, b student.Student) int { return cmp.Compare(a.ID, b.ID) }, true
	case student.ColumnName:
		return func(a, b student.Student) int { return cmp.Compare(a.Name, b.Name) }, true
	case student.ColumnCourse:
		return func(a, b student.Student) int { return cmp.Compare(a.Course, b.Course) }, true
	case student.ColumnEnrollmentDate:
		return func(a, b student.Student) int { return compareDates(a.EnrollmentDate, b.EnrollmentDate) }, true
	}
	return nil, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matches(s student.Student, f *student.SearchFilter) bool {
	if f == nil {
		return true
	}
	if f.ID.Valid && s.ID != f.ID.Int {
		return false
	}
	if f.Name.Valid && !containsFold(s.Name, f.Name.String) {
		return false
	}
	if f.Course.Valid && !containsFold(s.Course, f.Course.String) {
		return false
	}
	if !f.EnrolledFrom.IsZero() && s.EnrollmentDate.Before(f.EnrolledFrom) {
		return false
	}
	if !f.EnrolledTo.IsZero() && s.EnrollmentDate.After(f.EnrolledTo) {
		return false
	}
	return true
}

func (repo *studentRepository) CheckNameUniqueness(_ context.Context, name string, excludedID int) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, s := range repo.db.students {
		if s.Name == name && s.ID != excludedID {
			return student.ErrNameExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.studentPK++
	s.ID = repo.db.studentPK
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id int) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return *s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter *student.SearchFilter, ordering []core.DBOrdering) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		if matches(*s, filter) {
			students = append(students, *s)
		}
	}
	// map iteration order is random: always start from the ID order
	ordering = append([]core.DBOrdering{}, ordering...)
	ordering = append(ordering, core.Asc(student.ColumnID))
	if err := sortBy(students, ordering, studentField); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save updatable fields
	orig, ok := repo.db.students[s.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	orig.Name = s.Name
	orig.Course = s.Course
	return *orig, nil
}

func (repo *studentRepository) UpdateCourse(_ context.Context, ids []int, course string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if s, ok := repo.db.students[id]; ok {
			s.Course = course
			cnt++
		}
	}
	return cnt, nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids []int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.students[id]; !ok {
			continue
		}
		delete(repo.db.students, id)
		cnt++
		for eid, e := range repo.db.events {
			if e.StudentID == id {
				delete(repo.db.events, eid)
			}
		}
	}
	return cnt, nil
}
