package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/auragraph/errors"
)

type sample struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value float64 `json:"value" yaml:"value" toml:"value"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" YAML ", FormatYAML},
		{"yml", FormatYAML},
		{"toml", FormatTOML},
		{"", FormatTable},
		{"table", FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Contains(t, errors.FlattenHints(err), "toml")
}

func TestMarshal(t *testing.T) {
	v := sample{Name: "trust", Value: 1.5}

	data, err := Marshal(v, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"trust","value":1.5}`, string(data))

	data, err = Marshal(v, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "name: trust\nvalue: 1.5\n", string(data))

	data, err = Marshal(v, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name = 'trust'")
	assert.Contains(t, string(data), "value = 1.5")

	_, err = Marshal(v, FormatTable)
	assert.Error(t, err)
}

func TestMarshal_TOMLWrapsSlices(t *testing.T) {
	data, err := Marshal([]sample{{Name: "a", Value: 1}, {Name: "b", Value: 2}}, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[items]]")
	assert.Contains(t, string(data), "name = 'b'")
}

func TestEncode_TerminatesWithNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample{Name: "x"}, FormatJSON))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
}
