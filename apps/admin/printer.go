package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/labstack/gommon/color"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

func (cli *commandLine) printTable(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, color.Bold(strings.Join(header, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func (cli *commandLine) printStudents(students []student.Student) {
	if len(students) == 0 {
		fmt.Fprintln(cli.out, "No students found.")
		return
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{strconv.Itoa(s.ID), s.Name, s.Course, s.EnrollmentDate.String()})
	}
	cli.printTable([]string{"ID", "Name", "Course", "Enrolled"}, rows)
}

func (cli *commandLine) printEvents(events []attendance.Event) {
	if len(events) == 0 {
		fmt.Fprintln(cli.out, "No attendance records found.")
		return
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{strconv.Itoa(e.ID), strconv.Itoa(e.StudentID), e.Date.String(), statusText(e.Status)})
	}
	cli.printTable([]string{"ID", "Student", "Date", "Status"}, rows)
}

func (cli *commandLine) printSummary(sum attendance.Summary) {
	fmt.Fprintf(cli.out, "Student %d: %d days recorded, %d present, %d absent (%.2f%%)\n",
		sum.StudentID, sum.TotalDays, sum.PresentDays, sum.AbsentDays, sum.AttendancePercentage)
}

func statusText(s attendance.Status) string {
	switch s {
	case attendance.Present:
		return color.Green(s.String())
	case attendance.Absent:
		return color.Red(s.String())
	default:
		return color.Yellow(s.String())
	}
}

func (cli *commandLine) printSuccess(format string, args ...interface{}) {
	fmt.Fprintln(cli.out, color.Green(fmt.Sprintf(format, args...)))
}

func (cli *commandLine) printError(err error) {
	fmt.Fprintln(cli.out, color.Red("error: ")+describeError(err))
}
