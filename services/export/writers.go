package exportsvc

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
)

// WriteCSV writes the table of rep: a header row then one row per record.
func WriteCSV(w io.Writer, rep report.Report) error {
	l, err := layoutOf(rep)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err = cw.Write(l.Header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	if err = cw.WriteAll(l.Rows); err != nil {
		return errors.Wrap(err, "writing CSV rows")
	}
	return nil
}

// WriteJSON writes rep inside a report.Document so that report.Decode can read it back.
func WriteJSON(w io.Writer, rep report.Report) error {
	raw, err := json.Marshal(rep)
	if err != nil {
		return errors.Wrapf(err, "encoding %s report", rep.Kind())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return errors.Wrap(enc.Encode(report.Document{Kind: rep.Kind(), Report: raw}), "writing JSON document")
}

// WriteText writes the title, one "key: value" line per summary field, then the aligned table.
func WriteText(w io.Writer, rep report.Report) error {
	l, err := layoutOf(rep)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, l.Title)
	fmt.Fprintln(tw)
	for _, f := range l.Summary {
		fmt.Fprintf(tw, "%s: %s\n", f.Key, f.Value)
	}
	fmt.Fprintln(tw)
	printRow(tw, l.Header)
	for _, row := range l.Rows {
		printRow(tw, row)
	}
	return errors.Wrap(tw.Flush(), "writing text document")
}

func printRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

const (
	pdfMargin     = 10.0
	pdfPageWidth  = 210.0 // A4, mm
	pdfLineHeight = 6.0
)

// WritePDF renders the same document as WriteText on A4 pages.
func WritePDF(w io.Writer, rep report.Report) error {
	l, err := layoutOf(rep)
	if err != nil {
		return err
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(l.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, f := range l.Summary {
		pdf.CellFormat(0, pdfLineHeight, tr(f.Key+": "+f.Value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	colWidth := (pdfPageWidth - 2*pdfMargin) / float64(len(l.Header))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for _, h := range l.Header {
		pdf.CellFormat(colWidth, pdfLineHeight+1, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range l.Rows {
		for _, c := range row {
			pdf.CellFormat(colWidth, pdfLineHeight, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return errors.Wrap(pdf.Output(w), "writing PDF document")
}
