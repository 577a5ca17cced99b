package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
)

func (cli *commandLine) attendanceRecord(args []string) error {
	fs := cli.flagSet("attendance record")
	studentID := fs.Int("student", 0, "student ID")
	dateStr := fs.String("date", "", "DATE (default today)")
	statusStr := fs.String("status", "", "Present (P) or Absent (A)")
	if err := parse(fs, args); err != nil {
		return err
	}
	date, err := dateOrToday(*dateStr)
	if err != nil {
		return err
	}
	status, err := attendance.ParseStatus(*statusStr)
	if err != nil {
		return err
	}

	e, err := cli.attendance.Record(context.Background(), *studentID, date, status)
	if err != nil {
		return err
	}
	cli.printSuccess("Student %d marked %s on %s.", e.StudentID, e.Status, e.Date)
	return nil
}

// attendanceBatch prompts for the status of every student of the roster, one line each:
// P (present), A (absent) or "-" / empty to skip. Nothing is saved if the input ends early.
func (cli *commandLine) attendanceBatch(args []string) error {
	fs := cli.flagSet("attendance batch")
	dateStr := fs.String("date", "", "DATE (default today)")
	if err := parse(fs, args); err != nil {
		return err
	}
	date, err := dateOrToday(*dateStr)
	if err != nil {
		return err
	}

	ctx := context.Background()
	roster, err := cli.students.List(ctx)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		fmt.Fprintln(cli.out, "No students found.")
		return nil
	}

	fmt.Fprintf(cli.out, "Attendance for %s (P = present, A = absent, - = skip)\n", date)
	marks := make([]attendance.Mark, 0, len(roster))
	for _, s := range roster {
		for {
			fmt.Fprintf(cli.out, "%s (%d, %s): ", s.Name, s.ID, s.Course)
			line, err := cli.in.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return fmt.Errorf("reading status of student %d: %w", s.ID, err)
			}
			line = strings.TrimSpace(line)
			if line == "" || line == "-" {
				break
			}
			status, err := attendance.ParseStatus(line)
			if err != nil {
				fmt.Fprintln(cli.out, describeError(err))
				continue
			}
			marks = append(marks, attendance.Mark{StudentID: s.ID, Status: status})
			break
		}
	}

	n, err := cli.attendance.RecordBatch(ctx, date, marks)
	if err != nil {
		return err
	}
	cli.printSuccess("%d attendance record(s) saved for %s.", n, date)
	return nil
}

func (cli *commandLine) attendanceList(args []string) error {
	fs := cli.flagSet("attendance list")
	studentID := fs.Int("student", 0, "student ID")
	dateStr := fs.String("date", "", "a single DATE")
	fromStr := fs.String("from", "", "first DATE of a range")
	toStr := fs.String("to", "", "last DATE of a range")
	if err := parse(fs, args); err != nil {
		return err
	}

	ctx := context.Background()
	var (
		events []attendance.Event
		err    error
	)
	switch {
	case *studentID != 0:
		if _, err = cli.students.Get(ctx, *studentID); err != nil {
			return err
		}
		events, err = cli.attendance.ForStudent(ctx, *studentID)
	case *dateStr != "":
		var date core.Date
		if date, err = core.ParseDate(*dateStr); err != nil {
			return err
		}
		events, err = cli.attendance.ForDate(ctx, date)
	case *fromStr != "" || *toStr != "":
		var from, to core.Date
		if from, err = core.ParseDate(*fromStr); err != nil {
			return err
		}
		if to, err = core.ParseDate(*toStr); err != nil {
			return err
		}
		events, err = cli.attendance.InRange(ctx, from, to)
	default:
		fs.Usage()
		return errHelp
	}
	if err != nil {
		return err
	}
	cli.printEvents(events)
	return nil
}

func (cli *commandLine) attendanceDelete(args []string) error {
	fs := cli.flagSet("attendance delete")
	ids := fs.String("ids", "", "comma separated attendance record IDs")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}
	parsed, err := core.ParseIDs(*ids)
	if err != nil {
		return err
	}

	if !*yes && !cli.confirm(fmt.Sprintf("Delete %d attendance record(s)?", len(parsed))) {
		fmt.Fprintln(cli.out, "Cancelled.")
		return nil
	}
	n, err := cli.attendance.Delete(context.Background(), parsed...)
	if err != nil {
		return err
	}
	cli.printSuccess("%d attendance record(s) deleted.", n)
	return nil
}

func (cli *commandLine) attendanceSummary(args []string) error {
	fs := cli.flagSet("attendance summary")
	studentID := fs.Int("student", 0, "student ID")
	if err := parse(fs, args); err != nil {
		return err
	}

	sum, err := cli.reports.StudentSummary(context.Background(), *studentID)
	if err != nil {
		return err
	}
	cli.printSummary(sum)
	return nil
}
