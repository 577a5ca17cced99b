package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound   = errors.New("student not found")
	ErrNameExists = errors.New("a student with this name already exists, try adding initials")
)

type (
	Repository interface {
		// CheckNameUniqueness returns ErrNameExists if another student (other than excludedID) has this exact name.
		CheckNameUniqueness(ctx context.Context, name string, excludedID int) error
		CreateStudent(ctx context.Context, s Student) (Student, error)
		GetStudent(ctx context.Context, id int) (Student, error)
		// QueryStudents applies an AND operation on the available SearchFilter fields; a nil filter matches all.
		QueryStudents(ctx context.Context, filter *SearchFilter, ordering []core.DBOrdering) ([]Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		UpdateCourse(ctx context.Context, ids []int, course string) (int, error)
		// DeleteStudentsByID also deletes the attendance events of the deleted students.
		DeleteStudentsByID(ctx context.Context, ids []int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, name string, excludedID int) error {
	if err := svc.repo.CheckNameUniqueness(ctx, name, excludedID); err != nil {
		if errors.Is(err, ErrNameExists) {
			return core.NewValidationError(ErrNameExists, core.FieldError{Field: "name", Error: ErrNameExists.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(ctx, svc); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, Student{
		Name:           ns.Name,
		Course:         ns.Course,
		EnrollmentDate: core.DateOf(nowFunc()),
	})
}

func (svc *Service) Get(ctx context.Context, id int) (Student, error) {
	if id <= 0 {
		return Student{}, ErrNotFound
	}
	return svc.repo.GetStudent(ctx, id)
}

// List returns the whole roster ordered by ID.
func (svc *Service) List(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, nil, []core.DBOrdering{core.Asc(ColumnID)})
}

// Search returns the students matching all the provided criteria, ordered by name.
func (svc *Service) Search(ctx context.Context, filter SearchFilter) ([]Student, error) {
	filter.Clean()
	var f *SearchFilter
	if !filter.IsEmpty() {
		f = &filter
	}
	return svc.repo.QueryStudents(ctx, f, []core.DBOrdering{core.Asc(ColumnName), core.Asc(ColumnID)})
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	orig, err := svc.Get(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if err = us.Validate(ctx, orig, svc); err != nil {
		return Student{}, err
	}
	orig.Name = us.Name
	orig.Course = us.Course
	return svc.repo.UpdateStudent(ctx, orig)
}

// UpdateCourse moves all the given students to course and returns how many were updated.
func (svc *Service) UpdateCourse(ctx context.Context, ids []int, course string) (int, error) {
	course = core.CleanString(course)
	if !ValidCourse(course) {
		text, _ := core.Translator.T(courseCodeTag, "course")
		return 0, core.NewValidationError(nil, core.FieldError{Field: "course", Error: text})
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return svc.repo.UpdateCourse(ctx, ids, course)
}

// Delete removes the students and their attendance; it returns how many students were deleted.
func (svc *Service) Delete(ctx context.Context, ids ...int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return svc.repo.DeleteStudentsByID(ctx, ids)
}
