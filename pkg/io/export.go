package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
	"github.com/matzehuels/chartcore/pkg/pipeline"
)

// WriteReport encodes a report as indented JSON and writes it to w.
func WriteReport(w io.Writer, r *pipeline.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// ExportReport writes a report to the file at path.
func ExportReport(r *pipeline.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteReport(w, r) })
}

// WriteChart encodes a chart definition as indented JSON. The output can be
// read back with [ReadJSON].
func WriteChart(w io.Writer, def *chart.Definition) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(def); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode chart")
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
