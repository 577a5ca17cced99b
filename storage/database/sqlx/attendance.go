package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
)

const (
	selectEvents = "SELECT id, student_id, date, status FROM attendance"

	upsertEvent = `INSERT INTO attendance (student_id, date, status) VALUES (?, ?, ?)
ON CONFLICT (student_id, date) DO UPDATE SET status = excluded.status
RETURNING id`
)

type attendanceRepository struct {
	db core.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db core.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) upsert(ctx context.Context, exec core.DBExecutor, e attendance.Event) (attendance.Event, error) {
	if err := exec.QueryRowxContext(ctx, exec.Rebind(upsertEvent), e.StudentID, e.Date, e.Status).Scan(&e.ID); err != nil {
		return attendance.Event{}, errors.Wrap(err, "upserting attendance")
	}
	return e, nil
}

func (repo attendanceRepository) UpsertEvent(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	return repo.upsert(ctx, repo.db, e)
}

func (repo attendanceRepository) UpsertEvents(ctx context.Context, events []attendance.Event) (int, error) {
	err := withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		for _, e := range events {
			if _, err := repo.upsert(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (repo attendanceRepository) GetEvent(ctx context.Context, id int) (attendance.Event, error) {
	var e attendance.Event
	if err := repo.db.GetContext(ctx, &e, repo.db.Rebind(selectEvents+" WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Event{}, attendance.ErrNotFound
		}
		return attendance.Event{}, errors.Wrap(err, "finding attendance by ID")
	}
	return e, nil
}

func (repo attendanceRepository) QueryEvents(ctx context.Context, filter attendance.EventFilter, ordering []core.DBOrdering) ([]attendance.Event, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.StudentID != 0 {
		conds = append(conds, "student_id = ?")
		args = append(args, filter.StudentID)
	}
	if !filter.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, filter.To)
	}

	q := selectEvents
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	order, err := orderBy(ordering, attendance.ColumnID, attendance.ColumnStudentID, attendance.ColumnDate, attendance.ColumnStatus)
	if err != nil {
		return nil, err
	}
	q += order

	events := make([]attendance.Event, 0)
	if err = repo.db.SelectContext(ctx, &events, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	return events, nil
}

func (repo attendanceRepository) DeleteEventsByID(ctx context.Context, ids []int) (int, error) {
	q, args, err := inQuery(repo.db, "DELETE FROM attendance WHERE id IN (?)", ids)
	if err != nil {
		return 0, err
	}
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting attendance")
	}
	return rowsAffected(res, "deleting attendance")
}
