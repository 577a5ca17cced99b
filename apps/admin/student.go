package main

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/student"
)

func (cli *commandLine) studentAdd(args []string) error {
	fs := cli.flagSet("student add")
	name := fs.String("name", "", "full name, unique")
	course := fs.String("course", "", "course code, e.g. CS101")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := cli.students.Create(context.Background(), student.NewStudent{Name: *name, Course: *course})
	if err != nil {
		return err
	}
	cli.printSuccess("Student %q added with ID %d.", s.Name, s.ID)
	return nil
}

func (cli *commandLine) studentGet(args []string) error {
	fs := cli.flagSet("student get")
	id := fs.Int("id", 0, "student ID")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := cli.students.Get(context.Background(), *id)
	if err != nil {
		return err
	}
	cli.printStudents([]student.Student{s})
	return nil
}

func (cli *commandLine) studentList(args []string) error {
	fs := cli.flagSet("student list")
	if err := parse(fs, args); err != nil {
		return err
	}

	students, err := cli.students.List(context.Background())
	if err != nil {
		return err
	}
	cli.printStudents(students)
	return nil
}

func (cli *commandLine) studentSearch(args []string) error {
	fs := cli.flagSet("student search")
	id := fs.Int("id", 0, "student ID")
	name := fs.String("name", "", "part of the name (any case)")
	course := fs.String("course", "", "part of the course code (any case)")
	from := fs.String("from", "", "enrolled on or after DATE")
	to := fs.String("to", "", "enrolled on or before DATE")
	if err := parse(fs, args); err != nil {
		return err
	}

	filter := student.SearchFilter{
		ID:     null.NewInt(*id, *id > 0),
		Name:   null.NewString(*name, *name != ""),
		Course: null.NewString(*course, *course != ""),
	}
	var err error
	if filter.EnrolledFrom, err = optionalDate(*from); err != nil {
		return err
	}
	if filter.EnrolledTo, err = optionalDate(*to); err != nil {
		return err
	}
	if filter.IsEmpty() {
		fs.Usage()
		return errHelp
	}

	students, err := cli.students.Search(context.Background(), filter)
	if err != nil {
		return err
	}
	cli.printStudents(students)
	return nil
}

func (cli *commandLine) studentUpdate(args []string) error {
	fs := cli.flagSet("student update")
	id := fs.Int("id", 0, "student ID")
	name := fs.String("name", "", "new name (unchanged if blank)")
	course := fs.String("course", "", "new course code (unchanged if blank)")
	if err := parse(fs, args); err != nil {
		return err
	}

	s, err := cli.students.Update(context.Background(), *id, student.UpdateStudent{Name: *name, Course: *course})
	if err != nil {
		return err
	}
	cli.printSuccess("Student %d updated.", s.ID)
	cli.printStudents([]student.Student{s})
	return nil
}

func (cli *commandLine) studentSetCourse(args []string) error {
	fs := cli.flagSet("student setcourse")
	ids := fs.String("ids", "", "comma separated student IDs")
	course := fs.String("course", "", "course code, e.g. CS101")
	if err := parse(fs, args); err != nil {
		return err
	}
	parsed, err := core.ParseIDs(*ids)
	if err != nil {
		return err
	}

	n, err := cli.students.UpdateCourse(context.Background(), parsed, *course)
	if err != nil {
		return err
	}
	cli.printSuccess("%d student(s) moved to %s.", n, core.CleanString(*course))
	return nil
}

func (cli *commandLine) studentDelete(args []string) error {
	fs := cli.flagSet("student delete")
	ids := fs.String("ids", "", "comma separated student IDs")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}
	parsed, err := core.ParseIDs(*ids)
	if err != nil {
		return err
	}

	if !*yes && !cli.confirm(fmt.Sprintf("Delete %d student(s) and all their attendance?", len(parsed))) {
		fmt.Fprintln(cli.out, "Cancelled.")
		return nil
	}
	n, err := cli.students.Delete(context.Background(), parsed...)
	if err != nil {
		return err
	}
	cli.printSuccess("%d student(s) deleted.", n)
	return nil
}

// optionalDate parses s unless it is blank.
func optionalDate(s string) (core.Date, error) {
	if s = core.CleanString(s); s == "" {
		return core.Date{}, nil
	}
	return core.ParseDate(s)
}

// dateOrToday parses s, defaulting to today when blank.
func dateOrToday(s string) (core.Date, error) {
	d, err := optionalDate(s)
	if err != nil || !d.IsZero() {
		return d, err
	}
	return core.DateOf(nowFunc()), nil
}
