// Package exportsvc writes reports to CSV, JSON, PDF or plain text files.
package exportsvc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core/report"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	PDF  Format = "pdf"
	Text Format = "txt"
)

var (
	Formats = []Format{CSV, JSON, PDF, Text}

	ErrUnsupportedFormat = errors.New("unsupported export format")
)

func ParseFormat(s string) (Format, error) {
	f := Format(core.CleanString(s, true /* lower */))
	if f == "text" {
		return Text, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// Ext returns the canonical file extension, dot included.
func (f Format) Ext() string { return "." + string(f) }

func (f Format) writer() (func(io.Writer, report.Report) error, error) {
	switch f {
	case CSV:
		return WriteCSV, nil
	case JSON:
		return WriteJSON, nil
	case PDF:
		return WritePDF, nil
	case Text:
		return WriteText, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", string(f))
	}
}

type Exporter struct {
	dir    string
	logger core.Logger
}

func NewExporter(dir string, logger core.Logger) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, logger: logger}
}

// Path returns where a report would be written: base gets the format's extension if it lacks it, relative paths
// land in the export directory and a blank base gets a generated name.
func (ex *Exporter) Path(rep report.Report, format Format, base string) string {
	base = core.CleanString(base)
	if base == "" {
		base = string(rep.Kind()) + "-report-" + uuid.NewString()[:8]
	}
	if !strings.EqualFold(filepath.Ext(base), format.Ext()) {
		base += format.Ext()
	}
	if !filepath.IsAbs(base) {
		base = filepath.Join(ex.dir, base)
	}
	return base
}

// Export writes rep to a file and returns its absolute path.
// Nothing is written when the format or the report shape is not supported.
func (ex *Exporter) Export(rep report.Report, format Format, base string) (string, error) {
	write, err := format.writer()
	if err != nil {
		return "", err
	}
	if format != JSON {
		// fail before creating the file
		if _, err = layoutOf(rep); err != nil {
			return "", err
		}
	}

	path, err := filepath.Abs(ex.Path(rep, format, base))
	if err != nil {
		return "", errors.Wrap(err, "resolving export path")
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "creating export directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating export file")
	}
	if err = write(f, rep); err != nil {
		_ = f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrap(err, "closing export file")
	}
	ex.logger.Debug("report exported", map[string]interface{}{"kind": rep.Kind(), "format": format, "path": path})
	return path, nil
}
