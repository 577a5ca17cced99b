package timedrepos

import (
	"context"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
)

type attendanceRepository struct {
	next   attendance.Repository
	logger core.Logger
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(next attendance.Repository, logger core.Logger) attendance.Repository {
	return &attendanceRepository{next: next, logger: logger}
}

func (repo attendanceRepository) UpsertEvent(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	defer track(repo.logger, "attendance.UpsertEvent", begin())
	return repo.next.UpsertEvent(ctx, e)
}

func (repo attendanceRepository) UpsertEvents(ctx context.Context, events []attendance.Event) (int, error) {
	defer track(repo.logger, "attendance.UpsertEvents", begin())
	return repo.next.UpsertEvents(ctx, events)
}

func (repo attendanceRepository) GetEvent(ctx context.Context, id int) (attendance.Event, error) {
	defer track(repo.logger, "attendance.GetEvent", begin())
	return repo.next.GetEvent(ctx, id)
}

func (repo attendanceRepository) QueryEvents(ctx context.Context, filter attendance.EventFilter, ordering []core.DBOrdering) ([]attendance.Event, error) {
	defer track(repo.logger, "attendance.QueryEvents", begin())
	return repo.next.QueryEvents(ctx, filter, ordering)
}

func (repo attendanceRepository) DeleteEventsByID(ctx context.Context, ids []int) (int, error) {
	defer track(repo.logger, "attendance.DeleteEventsByID", begin())
	return repo.next.DeleteEventsByID(ctx, ids)
}
