package timedrepos

import (
	"context"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

type studentRepository struct {
	next   student.Repository
	logger core.Logger
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(next student.Repository, logger core.Logger) student.Repository {
	return &studentRepository{next: next, logger: logger}
}

func (repo studentRepository) CheckNameUniqueness(ctx context.Context, name string, excludedID int) error {
	defer track(repo.logger, "student.CheckNameUniqueness", begin())
	return repo.next.CheckNameUniqueness(ctx, name, excludedID)
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	defer track(repo.logger, "student.CreateStudent", begin())
	return repo.next.CreateStudent(ctx, s)
}

func (repo studentRepository) GetStudent(ctx context.Context, id int) (student.Student, error) {
	defer track(repo.logger, "student.GetStudent", begin())
	return repo.next.GetStudent(ctx, id)
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.SearchFilter, ordering []core.DBOrdering) ([]student.Student, error) {
	defer track(repo.logger, "student.QueryStudents", begin())
	return repo.next.QueryStudents(ctx, filter, ordering)
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	defer track(repo.logger, "student.UpdateStudent", begin())
	return repo.next.UpdateStudent(ctx, s)
}

func (repo studentRepository) UpdateCourse(ctx context.Context, ids []int, course string) (int, error) {
	defer track(repo.logger, "student.UpdateCourse", begin())
	return repo.next.UpdateCourse(ctx, ids, course)
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids []int) (int, error) {
	defer track(repo.logger, "student.DeleteStudentsByID", begin())
	return repo.next.DeleteStudentsByID(ctx, ids)
}
