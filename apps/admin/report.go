package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/services/export"
)

type exportFlags struct {
	format *string
	out    *string
}

func addExportFlags(fs *flag.FlagSet) exportFlags {
	return exportFlags{
		format: fs.String("export", "", "also write the report to a csv, json, pdf or txt file"),
		out:    fs.String("out", "", "file name of the export (generated if blank)"),
	}
}

// showReport prints rep then exports it if asked to.
func (cli *commandLine) showReport(rep report.Report, ef exportFlags) error {
	if err := exportsvc.WriteText(cli.out, rep); err != nil {
		return err
	}
	if *ef.format == "" {
		return nil
	}
	format, err := exportsvc.ParseFormat(*ef.format)
	if err != nil {
		return err
	}
	path, err := cli.exporter.Export(rep, format, *ef.out)
	if err != nil {
		return err
	}
	cli.printSuccess("Report exported to %s", path)
	return nil
}

// validateExport fails early on an unknown format, before any report is computed.
func validateExport(ef exportFlags) error {
	if *ef.format == "" {
		return nil
	}
	_, err := exportsvc.ParseFormat(*ef.format)
	return err
}

func (cli *commandLine) reportStudent(args []string) error {
	fs := cli.flagSet("report student")
	id := fs.Int("id", 0, "student ID")
	ef := addExportFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := validateExport(ef); err != nil {
		return err
	}

	rep, err := cli.reports.Student(context.Background(), *id)
	if err != nil {
		return err
	}
	return cli.showReport(rep, ef)
}

func (cli *commandLine) reportDaily(args []string) error {
	fs := cli.flagSet("report daily")
	dateStr := fs.String("date", "", "DATE (default today)")
	ef := addExportFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := validateExport(ef); err != nil {
		return err
	}
	date, err := dateOrToday(*dateStr)
	if err != nil {
		return err
	}

	rep, err := cli.reports.Daily(context.Background(), date)
	if err != nil {
		return err
	}
	return cli.showReport(rep, ef)
}

func (cli *commandLine) reportCourse(args []string) error {
	fs := cli.flagSet("report course")
	course := fs.String("course", "", "course code or part of it (case-sensitive)")
	ef := addExportFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := validateExport(ef); err != nil {
		return err
	}

	rep, err := cli.reports.Course(context.Background(), *course)
	if err != nil {
		return err
	}
	return cli.showReport(rep, ef)
}

func (cli *commandLine) reportMonthly(args []string) error {
	now := nowFunc()
	fs := cli.flagSet("report monthly")
	year := fs.Int("year", now.Year(), "year")
	month := fs.Int("month", int(now.Month()), "month, 1 to 12")
	ef := addExportFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := validateExport(ef); err != nil {
		return err
	}

	rep, err := cli.reports.Monthly(context.Background(), *year, time.Month(*month))
	if err != nil {
		return err
	}
	return cli.showReport(rep, ef)
}

func (cli *commandLine) reportShow(args []string) error {
	fs := cli.flagSet("report show")
	path := fs.String("file", "", "JSON file written by -export json")
	if err := parse(fs, args); err != nil {
		return err
	}
	if core.CleanString(*path) == "" {
		fs.Usage()
		return errHelp
	}

	f, err := os.Open(*path)
	if err != nil {
		return errors.Wrap(err, "opening report")
	}
	defer f.Close()

	rep, err := report.Decode(f)
	if err != nil {
		return err
	}
	return exportsvc.WriteText(cli.out, rep)
}
