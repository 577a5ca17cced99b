package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/color"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/export"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/logger"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/inmem"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/sqlx"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database/timed"
)

const pingAttempts = 10

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)
	rlog := logsvc.NewRollbarLogger(logger, conf)
	if !isTerminalFunc() {
		color.Disable()
	}

	// set up storage
	db, stdRepo, attRepo, err := openStorage(context.Background(), conf, rlog)
	if err != nil {
		rlog.Fatal("storage initialization failed", err)
	}
	if conf.Profile {
		stdRepo = timedrepos.NewStudentRepository(stdRepo, rlog)
		attRepo = timedrepos.NewAttendanceRepository(attRepo, rlog)
	}

	// start CLI
	cli := newCommandLine(db, stdRepo, attRepo, exportsvc.NewExporter(conf.ExportDir, rlog))
	err = cli.run(os.Args)
	if db != nil {
		_ = db.Close()
	}
	rlog.Close()
	if err != nil {
		if err != errHelp {
			cli.printError(err)
		}
		os.Exit(1)
	}
}

// openStorage returns a nil DB for the memory engine.
func openStorage(ctx context.Context, conf *core.Config, rlog core.Logger) (*sqlx.DB, student.Repository, attendance.Repository, error) {
	if conf.Database.Engine == core.EngineMemory {
		rlog.Warn("using the memory engine: nothing will be saved")
		mem := inmemdb.Open()
		return nil, inmemdb.NewStudentRepository(mem), inmemdb.NewAttendanceRepository(mem), nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = database.Ping(ctx, db, pingAttempts); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	if err = database.Migrate(ctx, db, dbLogger()); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	return db, sqlxrepos.NewStudentRepository(db), sqlxrepos.NewAttendanceRepository(db), nil
}

func dbLogger() *log.Logger {
	return log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds)
}

func newCommandLine(db *sqlx.DB, stdRepo student.Repository, attRepo attendance.Repository, exporter *exportsvc.Exporter) *commandLine {
	stdSvc := student.NewService(stdRepo)
	attSvc := attendance.NewService(attRepo, stdSvc)
	return &commandLine{
		out:        os.Stdout,
		in:         bufio.NewReader(os.Stdin),
		db:         db,
		dbLogger:   dbLogger(),
		students:   stdSvc,
		attendance: attSvc,
		reports:    report.NewService(stdSvc, attSvc),
		exporter:   exporter,
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
