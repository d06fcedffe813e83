package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/auragraph/errors"
	"github.com/teranos/auragraph/population"
)

func person(id int, attrs population.AttributeSet, prefs population.PreferenceSet) population.Person {
	if attrs == nil {
		attrs = population.AttributeSet{}
	}
	if prefs == nil {
		prefs = population.PreferenceSet{}
	}
	return population.Person{ID: id, Name: "p", Attributes: attrs, Preferences: prefs}
}

func TestSimilarityDistance(t *testing.T) {
	a := person(0, population.AttributeSet{"trust": 3, "humor": 8}, nil)
	b := person(1, population.AttributeSet{"trust": 5, "humor": 8, "ambition": 1}, nil)
	loner := person(2, population.AttributeSet{"ambition": 4}, nil)
	empty := person(3, nil, nil)

	assert.Zero(t, SimilarityDistance(a, a, 10, 200, 1), "self distance")
	assert.Zero(t, SimilarityDistance(b, b, 10, 200, 0.5))

	// trust: (10-2)/10 = 0.8, humor: 1.0, mean 0.9
	assert.InDelta(t, 20.0, SimilarityDistance(a, b, 10, 200, 1), 1e-9)
	assert.InDelta(t, SimilarityDistance(a, b, 10, 200, 1), SimilarityDistance(b, a, 10, 200, 1), 1e-9, "symmetric")
	assert.InDelta(t, 10.0, SimilarityDistance(a, b, 10, 200, 0.5), 1e-9, "scaled by proportion")

	assert.Equal(t, 200.0, SimilarityDistance(a, loner, 10, 200, 1), "nothing shared is zero similarity")
	assert.Equal(t, 200.0, SimilarityDistance(empty, empty, 10, 200, 1))
	assert.Equal(t, 200.0, SimilarityDistance(a, b, 0, 200, 1), "zero range does not produce NaN")
}

func TestSignAttraction(t *testing.T) {
	tests := []struct {
		name  string
		pref  population.Preference
		value int
		want  float64
	}{
		{"greater above", population.Preference{Value: 3, Sign: population.SignGreater, Weight: 4}, 5, 4},
		{"greater below", population.Preference{Value: 5, Sign: population.SignGreater, Weight: 4}, 3, 0},
		{"greater equal", population.Preference{Value: 5, Sign: population.SignGreater, Weight: 4}, 5, 0},
		{"lesser above", population.Preference{Value: 3, Sign: population.SignLesser, Weight: 4}, 5, 0},
		{"lesser below", population.Preference{Value: 5, Sign: population.SignLesser, Weight: 4}, 3, 4},
		{"exact match", population.Preference{Value: 7, Sign: population.SignExact, Weight: 2}, 7, 2},
		{"exact miss", population.Preference{Value: 7, Sign: population.SignExact, Weight: 2}, 6, 0},
		{"closer match", population.Preference{Value: 4, Sign: population.SignCloser, Weight: 3}, 4, 3},
		// unit = 3/9, 3 - 2/3 = 2.333.. floored to 2.33
		{"closer near", population.Preference{Value: 4, Sign: population.SignCloser, Weight: 3}, 6, 2.33},
		// unit = 1, 9 - 9 = 0
		{"closer far", population.Preference{Value: 1, Sign: population.SignCloser, Weight: 9}, 10, 0},
		{"zero weight", population.Preference{Value: 1, Sign: population.SignExact, Weight: 0}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SignAttraction(tt.pref, tt.value, 10), 1e-9)
		})
	}
}

func TestSignAttraction_CloserGoesNegative(t *testing.T) {
	// range 3: unit = 5/2, |1-3| * 2.5 = 5, so attraction is 0; range 2 gives 5 - 1*5
	pref := population.Preference{Value: 1, Sign: population.SignCloser, Weight: 5}
	assert.InDelta(t, 0.0, SignAttraction(pref, 3, 3), 1e-9)

	pref = population.Preference{Value: 1, Sign: population.SignCloser, Weight: 1}
	assert.Less(t, SignAttraction(pref, 3, 2), 0.0)
	assert.False(t, math.IsNaN(SignAttraction(pref, 3, 1)), "range 1 guards the unit denominator")
}

func TestAttractionTo_Directional(t *testing.T) {
	focal := person(0, nil, population.PreferenceSet{
		"trust": {Value: 3, Sign: population.SignGreater, Weight: 2},
	})
	other := person(1, population.AttributeSet{"trust": 5}, population.PreferenceSet{
		"trust": {Value: 3, Sign: population.SignLesser, Weight: 2},
	})

	assert.Equal(t, 2.0, AttractionTo(focal, other, "trust", 10))
	// other prefers lesser values, but focal has no trust value defined
	assert.Zero(t, AttractionTo(other, focal, "trust", 10))
	assert.Zero(t, AttractionTo(focal, other, "humor", 10), "no preference")
}

func TestAggregateAndTotal(t *testing.T) {
	focal := person(0, population.AttributeSet{"trust": 9}, population.PreferenceSet{
		"trust": {Value: 3, Sign: population.SignGreater, Weight: 2},
		"humor": {Value: 5, Sign: population.SignExact, Weight: 4},
	})
	p1 := person(1, population.AttributeSet{"trust": 5, "humor": 5}, nil)
	p2 := person(2, population.AttributeSet{"trust": 1}, nil)
	shown := []population.Person{focal, p1, p2}

	assert.Equal(t, 2.0, AggregateAttraction(focal, shown, "trust", 10), "focal itself is skipped")
	assert.Equal(t, 4.0, AggregateAttraction(focal, shown, "humor", 10))
	assert.Equal(t, 6.0, TotalAttraction(focal, p1, 10))
	assert.Zero(t, TotalAttraction(focal, p2, 10))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(2, 2, 6))
	assert.Equal(t, 0.5, Normalize(4, 2, 6))
	assert.Equal(t, 1.0, Normalize(6, 2, 6))
	assert.Equal(t, 0.5, Normalize(3, 3, 3), "zero width")
	assert.Equal(t, 0.5, Normalize(math.NaN(), 0, 1))
	assert.Equal(t, 1.0, Normalize(9, 0, 1), "clamped")
}

func TestColors(t *testing.T) {
	assert.Equal(t, "hsl(0, 100%, 50%)", HueColor(0, 10))
	assert.Equal(t, "hsl(60, 100%, 50%)", HueColor(5, 10))
	assert.Equal(t, "hsl(120, 100%, 50%)", HueColor(10, 10))
	assert.Equal(t, "hsl(0, 100%, 50%)", HueColor(5, 0))

	assert.Equal(t, "rgba(255, 200, 0, 1)", PersonColor(0, 0, 10, 1))
	assert.Equal(t, "rgba(255, 0, 0, 0.5)", PersonColor(10, 0, 10, 0.5))
	assert.Equal(t, "rgba(255, 100, 0, 1)", PersonColor(4, 4, 4, 1), "zero width is the midpoint")

	assert.Equal(t, "rgba(255, 0, 255, 1)", AttributeColor(3, 1, 3, true, 1))
	assert.Equal(t, "rgba(0, 0, 0, 0.2)", AttributeColor(1, 1, 3, false, 0.2))
	assert.Equal(t, "rgba(128, 128, 128, 1)", AttributeColor(2, 2, 2, false, 1))

	assert.Equal(t, "rgba(255, 0, 166, 0.25)", RGBA(focalRGB, 0.25))
}

func TestNew(t *testing.T) {
	s, err := New(ModelAttraction, Params{})
	require.NoError(t, err)
	assert.Equal(t, ModelAttraction, s.Model())

	s, err = New("", Params{})
	require.NoError(t, err)
	assert.Equal(t, ModelSimilarity, s.Model())

	_, err = New("gravity", Params{})
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
