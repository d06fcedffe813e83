package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teranos/auragraph/errors"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3.7", 3},
		{" 12 ", 12},
		{"-1.2", -2},
	}
	for _, tt := range tests {
		got, err := parseCount(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"", "abc", "NaN", "Inf"} {
		_, err := parseCount(in)
		assert.True(t, errors.IsInvalidRequestError(err), in)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"trust", "humor", "ambition"}, splitList("trust, humor,,ambition "))
	assert.Nil(t, splitList(" , "))
}
