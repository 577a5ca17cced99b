package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/attendance"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/export"
)

var (
	nowFunc        = time.Now                                                   // mockable
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out io.Writer
	in  *bufio.Reader

	db       *sqlx.DB // nil with the memory engine
	dbLogger *log.Logger

	students   *student.Service
	attendance *attendance.Service
	reports    *report.Service
	exporter   *exportsvc.Exporter

	inShell bool
}

type command struct {
	usage string
	run   func(cli *commandLine, args []string) error
}

// commands maps "group" or "group sub" to its handler.
var commands map[string]command

func init() {
	commands = map[string]command{
		"student add":       {"student add -name NAME -course CODE - enroll a new student today", (*commandLine).studentAdd},
		"student get":       {"student get -id ID - show a student", (*commandLine).studentGet},
		"student list":      {"student list - list all the students", (*commandLine).studentList},
		"student search":    {"student search [-id ID] [-name TEXT] [-course TEXT] [-from DATE] [-to DATE] - find students", (*commandLine).studentSearch},
		"student update":    {"student update -id ID [-name NAME] [-course CODE] - edit a student", (*commandLine).studentUpdate},
		"student setcourse": {"student setcourse -ids 1,2 -course CODE - move students to a course", (*commandLine).studentSetCourse},
		"student delete":    {"student delete -ids 1,2 [-yes] - delete students and their attendance", (*commandLine).studentDelete},

		"attendance record":  {"attendance record -student ID -status P|A [-date DATE] - record one student", (*commandLine).attendanceRecord},
		"attendance batch":   {"attendance batch [-date DATE] - prompt the status of every student", (*commandLine).attendanceBatch},
		"attendance list":    {"attendance list [-student ID] [-date DATE] [-from DATE -to DATE] - list records", (*commandLine).attendanceList},
		"attendance delete":  {"attendance delete -ids 1,2 [-yes] - delete records", (*commandLine).attendanceDelete},
		"attendance summary": {"attendance summary -student ID - attendance totals of a student", (*commandLine).attendanceSummary},

		"report student": {"report student -id ID [-export FORMAT] [-out NAME]", (*commandLine).reportStudent},
		"report daily":   {"report daily [-date DATE] [-export FORMAT] [-out NAME]", (*commandLine).reportDaily},
		"report course":  {"report course -course TEXT [-export FORMAT] [-out NAME]", (*commandLine).reportCourse},
		"report monthly": {"report monthly [-year YYYY] [-month M] [-export FORMAT] [-out NAME]", (*commandLine).reportMonthly},
		"report show":    {"report show -file REPORT.json - print an exported JSON report", (*commandLine).reportShow},

		"migrate": {"migrate up|down|redo|reset|status|version - manage the database schema", (*commandLine).migrate},
		"shell":   {"shell - run commands interactively", (*commandLine).shell},
	}
}

func (cli *commandLine) printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(cli.out, "Usage:")
	for _, name := range names {
		fmt.Fprintf(cli.out, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(cli.out, "Dates are YYYY-MM-DD. Export formats: csv, json, pdf, txt.")
}

// run dispatches args (program name first) to the matching command.
func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	name, rest := args[1], args[2:]
	if _, ok := commands[name]; !ok && len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		name, rest = args[1]+" "+rest[0], rest[1:]
	}
	cmd, ok := commands[name]
	if !ok {
		cli.printUsage()
		if s := suggest(name); s != "" {
			fmt.Fprintf(cli.out, "\nUnknown command %q, did you mean %q?\n", name, s)
		}
		return errHelp
	}
	return cmd.run(cli, rest)
}

// flagSet returns a FlagSet printing to cli.out and returning errors instead of exiting.
func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	fs.Usage = func() {
		fmt.Fprintf(cli.out, "Usage of %s:\n  %s\n", name, commands[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

// confirm asks a yes/no question when a human is at the keyboard; it always agrees otherwise.
func (cli *commandLine) confirm(question string) bool {
	if !isTerminalFunc() {
		return true
	}
	fmt.Fprintf(cli.out, "%s [y/N]: ", question)
	line, _ := cli.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

const minSuggestionRatio = 0.6

// suggest returns the known command closest to name.
func suggest(name string) string {
	var (
		best      string
		bestRatio float64
	)
	m := difflib.NewMatcher(nil, strings.Split(name, ""))
	for known := range commands {
		m.SetSeq1(strings.Split(known, ""))
		if r := m.Ratio(); r > bestRatio || (r == bestRatio && known < best) {
			best, bestRatio = known, r
		}
	}
	if bestRatio < minSuggestionRatio {
		return ""
	}
	return best
}
