package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartcore/pkg/chart"
	"github.com/matzehuels/chartcore/pkg/errors"
)

// Format is a chart definition encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPath, "unsupported chart file %q", path)
	}
}

// Read decodes a chart definition from r in the given format. filename is
// only used in diagnostics.
func Read(r io.Reader, format Format, filename string) (*chart.Definition, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatHCL:
		return ReadHCL(r, filename)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported chart format %q", format)
	}
}

// ReadJSON decodes a JSON chart definition. Unknown fields are errors.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*chart.Definition, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var def chart.Definition
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json chart")
	}
	return &def, nil
}

// ReadTOML decodes a TOML chart definition. Keys that do not map to a
// definition field are errors. ReadTOML does not close r.
func ReadTOML(r io.Reader) (*chart.Definition, error) {
	var def chart.Definition
	md, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml chart")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown toml keys: %s", strings.Join(keys, ", "))
	}
	return &def, nil
}

// ImportChart reads the chart definition file at path, choosing the decoder
// from the file extension.
func ImportChart(path string) (*chart.Definition, error) {
	if err := errors.ValidateChartPath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	def, err := Read(bytes.NewReader(data), format, path)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return def, nil
}
