package timedrepos

import (
	"bytes"
	"context"
	"log"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/logger"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/inmem"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/tests"
)

type recordingLogger struct {
	testutil.NopLogger
	infos []string
	args  []interface{}
}

func (l *recordingLogger) Info(msg string, args ...interface{}) {
	l.infos = append(l.infos, msg)
	l.args = append(l.args, args...)
}

func fakeClock(t *testing.T) {
	tick := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time {
		tick = tick.Add(5 * time.Millisecond)
		return tick
	}
	var total, mallocs uint64
	readMemStatsFunc = func(ms *runtime.MemStats) {
		total += 512
		mallocs += 4
		ms.TotalAlloc, ms.Mallocs, ms.HeapAlloc = total, mallocs, 1<<20
	}
	t.Cleanup(func() {
		nowFunc = time.Now
		readMemStatsFunc = runtime.ReadMemStats
	})
}

func TestRepositories(t *testing.T) {
	fakeClock(t)

	logger := new(recordingLogger)
	db := inmemdb.Open()
	stdRepo := NewStudentRepository(inmemdb.NewStudentRepository(db), logger)
	attRepo := NewAttendanceRepository(inmemdb.NewAttendanceRepository(db), logger)
	ctx := context.Background()

	sara := testutil.CreateStudent(t, stdRepo, "Sara Ali", "CS101")
	got, err := stdRepo.GetStudent(ctx, sara.ID)
	require.NoError(t, err)
	assert.Equal(t, sara, got, "calls are passed through")

	_, err = stdRepo.GetStudent(ctx, 99)
	assert.ErrorIs(t, err, student.ErrNotFound, "errors are passed through")

	testutil.RecordAttendance(t, attRepo, sara.ID, core.Today(), attendance.Present)
	_, err = attRepo.QueryEvents(ctx, attendance.EventFilter{StudentID: sara.ID}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"storage call", "storage call", "storage call", "storage call", "storage call"}, logger.infos)
	assert.Empty(t, logger.Debugs)
	require.Len(t, logger.args, 5)
	assert.Equal(t, map[string]interface{}{
		"op":       "student.CreateStudent",
		"duration": "5ms",
		"alloc":    uint64(512),
		"mallocs":  uint64(4),
		"heap":     uint64(1 << 20),
	}, logger.args[0])
	assert.Equal(t, "attendance.QueryEvents", logger.args[4].(map[string]interface{})["op"])
}

func TestRepositories_profileWithoutDebug(t *testing.T) {
	fakeClock(t)

	buf := new(bytes.Buffer)
	logger := logsvc.NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "PROD", Profile: true, Debug: false, TestMode: true})
	db := inmemdb.Open()
	stdRepo := NewStudentRepository(inmemdb.NewStudentRepository(db), logger)

	_, err := stdRepo.GetStudent(context.Background(), 1)
	assert.ErrorIs(t, err, student.ErrNotFound)

	out := buf.String()
	assert.Contains(t, out, "INFO storage call")
	assert.Contains(t, out, "op:student.GetStudent")
	assert.Contains(t, out, "duration:5ms")
}
