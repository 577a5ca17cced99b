package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

const selectStudents = "SELECT id, name, course, enrollment_date FROM students"

type studentRepository struct {
	db core.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db core.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckNameUniqueness(ctx context.Context, name string, excludedID int) error {
	var count int
	q := repo.db.Rebind("SELECT COUNT(*) FROM students WHERE name = ? AND id <> ?")
	if err := repo.db.GetContext(ctx, &count, q, name, excludedID); err != nil {
		return errors.Wrap(err, "checking student name uniqueness")
	}
	if count > 0 {
		return student.ErrNameExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	q := repo.db.Rebind("INSERT INTO students (name, course, enrollment_date) VALUES (?, ?, ?) RETURNING id")
	if err := repo.db.QueryRowxContext(ctx, q, s.Name, s.Course, s.EnrollmentDate).Scan(&s.ID); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int) (student.Student, error) {
	var s student.Student
	if err := repo.db.GetContext(ctx, &s, repo.db.Rebind(selectStudents+" WHERE id = ?"), id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return s, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.SearchFilter, ordering []core.DBOrdering) ([]student.Student, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter != nil {
		if filter.ID.Valid {
			conds = append(conds, "id = ?")
			args = append(args, filter.ID.Int)
		}
		// students with Name or Course containing the keyword (any case)
		if filter.Name.Valid {
			conds = append(conds, `LOWER(name) LIKE LOWER(?) ESCAPE '\'`)
			args = append(args, likeContains(filter.Name.String))
		}
		if filter.Course.Valid {
			conds = append(conds, `LOWER(course) LIKE LOWER(?) ESCAPE '\'`)
			args = append(args, likeContains(filter.Course.String))
		}
		if !filter.EnrolledFrom.IsZero() {
			conds = append(conds, "enrollment_date >= ?")
			args = append(args, filter.EnrolledFrom)
		}
		if !filter.EnrolledTo.IsZero() {
			conds = append(conds, "enrollment_date <= ?")
			args = append(args, filter.EnrolledTo)
		}
	}

	q := selectStudents
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	order, err := orderBy(ordering, student.ColumnID, student.ColumnName, student.ColumnCourse, student.ColumnEnrollmentDate)
	if err != nil {
		return nil, err
	}
	q += order

	students := make([]student.Student, 0)
	if err = repo.db.SelectContext(ctx, &students, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	q := repo.db.Rebind("UPDATE students SET name = ?, course = ? WHERE id = ?")
	res, err := repo.db.ExecContext(ctx, q, s.Name, s.Course, s.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	n, err := rowsAffected(res, "updating student")
	if err != nil {
		return student.Student{}, err
	}
	if n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.GetStudent(ctx, s.ID)
}

func (repo studentRepository) UpdateCourse(ctx context.Context, ids []int, course string) (int, error) {
	q, args, err := inQuery(repo.db, "UPDATE students SET course = ? WHERE id IN (?)", course, ids)
	if err != nil {
		return 0, err
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "updating students course")
	}
	return rowsAffected(res, "updating students course")
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids []int) (int, error) {
	var cnt int
	err := withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		q, args, err := inQuery(tx, "DELETE FROM attendance WHERE student_id IN (?)", ids)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return errors.Wrap(err, "deleting students attendance")
		}

		if q, args, err = inQuery(tx, "DELETE FROM students WHERE id IN (?)", ids); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return errors.Wrap(err, "deleting students")
		}
		cnt, err = rowsAffected(res, "deleting students")
		return err
	})
	if err != nil {
		return 0, err
	}
	return cnt, nil
}
