package display

import (
	"bytes"
	"io"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/teranos/auragraph/errors"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
)

// Formats lists the encodings accepted by ParseFormat.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat resolves a --format flag value (case-insensitive, "yml" accepted).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatTable, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", errors.WithHintf(
		errors.Wrapf(errors.ErrInvalidRequest, "unsupported format %q", s),
		"supported: %s", strings.Join(names, ", "))
}

// Marshal encodes v as JSON, YAML or TOML. TOML documents must be tables,
// so a top-level slice is wrapped as {items = [...]}.
func Marshal(v interface{}, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return MarshalJSON(v)
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			v = map[string]interface{}{"items": v}
		}
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Wrapf(errors.ErrInvalidRequest, "format %q has no encoding", f)
}

// Encode writes v to w in format f, ending with a newline.
func Encode(w io.Writer, v interface{}, f Format) error {
	data, err := Marshal(v, f)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", f)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
