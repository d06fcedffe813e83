package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/auragraph/errors"
	"go.uber.org/zap/zaptest"
)

var trio = []string{"trust", "humor", "ambition"}

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	return NewGenerator(Options{
		Params:     Params{RangeAttributes: 10, RangeWeight: 5, MaxAuraRadius: 200},
		Seed:       seed,
		Attributes: trio,
		Percent:    70,
		Logger:     zaptest.NewLogger(t).Sugar(),
	})
}

func ids(persons []Person) []int {
	out := make([]int, len(persons))
	for i, p := range persons {
		out[i] = p.ID
	}
	return out
}

func TestGenerate_ProducesCountPersons(t *testing.T) {
	g := newTestGenerator(t, 7)

	persons, err := g.Generate(10, 70, trio)
	require.NoError(t, err)
	require.Len(t, persons, 10)

	for i, p := range persons {
		assert.Equal(t, i, p.ID)
		assert.ElementsMatch(t, trio, p.Preferences.Names(), "preferences cover every selected attribute")
		assert.NotEmpty(t, p.Name)

		for name, v := range p.Attributes {
			assert.Contains(t, trio, name)
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 10)
		}
		for _, pref := range p.Preferences {
			assert.GreaterOrEqual(t, pref.Value, 1)
			assert.LessOrEqual(t, pref.Value, 10)
			assert.GreaterOrEqual(t, pref.Weight, 1)
			assert.LessOrEqual(t, pref.Weight, 5)
			assert.Contains(t, Signs, pref.Sign)
		}
		want := 200 * float64(len(p.Attributes)) / 3
		assert.InDelta(t, want, p.PersonalAuraRadius, 1e-9)
	}
}

func TestGenerate_NameCarriesAgeSuffix(t *testing.T) {
	g := newTestGenerator(t, 3)
	persons, err := g.Generate(20, 70, trio)
	require.NoError(t, err)

	for _, p := range persons {
		var name string
		var age int
		n, err := parseDisplayName(p.Name, &name, &age)
		require.NoError(t, err, p.Name)
		require.Equal(t, 2, n)
		assert.GreaterOrEqual(t, age, 19)
		assert.LessOrEqual(t, age, 28)
		assert.Contains(t, DefaultNames, name)
	}
}

func TestGenerate_TooSmallIsNoOp(t *testing.T) {
	g := newTestGenerator(t, 1)
	before, err := g.Generate(5, 70, trio)
	require.NoError(t, err)

	for _, count := range []int{1, 0, -3} {
		shown, err := g.Generate(count, 70, trio)
		assert.True(t, errors.Is(err, errors.ErrPopulationTooSmall))
		assert.Equal(t, before, shown)
	}
	assert.Equal(t, before, g.Shown())
	assert.Len(t, g.Created(), 5)
}

func TestGenerate_EmptyAttributesIsNoOp(t *testing.T) {
	g := newTestGenerator(t, 1)
	before, err := g.Generate(4, 70, trio)
	require.NoError(t, err)

	_, err = g.Generate(6, 70, nil)
	assert.True(t, errors.Is(err, errors.ErrNoAttributes))
	assert.Equal(t, before, g.Shown())
}

func TestGenerate_LargerCountAppends(t *testing.T) {
	g := newTestGenerator(t, 11)

	first, err := g.Generate(5, 70, trio)
	require.NoError(t, err)

	second, err := g.Generate(9, 70, trio)
	require.NoError(t, err)

	require.Len(t, second, 9)
	assert.Equal(t, first, second[:5], "existing persons are unchanged")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, ids(second))
}

func TestGenerate_SmallerCountShowsPrefix(t *testing.T) {
	g := newTestGenerator(t, 5)

	all, err := g.Generate(10, 70, trio)
	require.NoError(t, err)

	shown, err := g.Generate(4, 70, trio)
	require.NoError(t, err)
	assert.Equal(t, all[:4], shown)
	assert.Len(t, g.Created(), 10, "created superset is untouched")

	shown, err = g.Generate(8, 70, trio)
	require.NoError(t, err)
	assert.Equal(t, all[:8], shown, "growing within the created set reuses persons")

	shown, err = g.Generate(10, 70, trio)
	require.NoError(t, err)
	assert.Equal(t, all, shown)
}

func TestGenerate_AttributeChangeRegenerates(t *testing.T) {
	g := newTestGenerator(t, 9)
	_, err := g.Generate(10, 70, trio)
	require.NoError(t, err)

	pair := []string{"trust", "kindness", "loyalty"}
	persons, err := g.Generate(6, 70, pair)
	require.NoError(t, err)

	require.Len(t, persons, 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ids(persons))
	assert.Len(t, g.Created(), 6, "created set is replaced")
	for _, p := range persons {
		assert.ElementsMatch(t, pair, p.Preferences.Names())
	}
	assert.ElementsMatch(t, pair, g.Selected())
}

func TestGenerate_AttributeOrderIsNotAChange(t *testing.T) {
	g := newTestGenerator(t, 9)
	first, err := g.Generate(5, 70, trio)
	require.NoError(t, err)

	again, err := g.Generate(5, 70, []string{"ambition", "trust", "humor"})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGenerate_PercentChangeRegenerates(t *testing.T) {
	g := newTestGenerator(t, 2)
	_, err := g.Generate(10, 70, trio)
	require.NoError(t, err)

	persons, err := g.Generate(4, 100, trio)
	require.NoError(t, err)
	assert.Len(t, g.Created(), 4)
	assert.Equal(t, 100, g.Percent())
	for _, p := range persons {
		assert.Len(t, p.Attributes, 3, "100%% defines every attribute")
		assert.InDelta(t, 200.0, p.PersonalAuraRadius, 1e-9)
	}

	persons, err = g.Generate(4, 0, trio)
	require.NoError(t, err)
	for _, p := range persons {
		assert.Empty(t, p.Attributes)
		assert.Len(t, p.Preferences, 3, "preferences exist even with no defined attributes")
		assert.Zero(t, p.PersonalAuraRadius)
	}
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	a, err := newTestGenerator(t, 42).Generate(12, 70, trio)
	require.NoError(t, err)
	b, err := newTestGenerator(t, 42).Generate(12, 70, trio)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_ReturnsCopies(t *testing.T) {
	g := newTestGenerator(t, 4)
	persons, err := g.Generate(3, 100, trio)
	require.NoError(t, err)

	persons[0].Attributes["trust"] = 99
	persons[0].Preferences["trust"] = Preference{}

	p, ok := g.Person(0)
	require.True(t, ok)
	assert.NotEqual(t, 99, p.Attributes["trust"])
	assert.NotZero(t, p.Preferences["trust"].Weight)
}

func TestApplyFilter(t *testing.T) {
	g := newTestGenerator(t, 21)
	all, err := g.Generate(10, 70, trio)
	require.NoError(t, err)

	filtered := g.ApplyFilter(2, []string{"trust", "humor"})
	for _, p := range filtered {
		_, hasTrust := p.Attributes["trust"]
		_, hasHumor := p.Attributes["humor"]
		assert.True(t, hasTrust && hasHumor, "person %d lacks a required attribute", p.ID)
	}

	expected := 0
	for _, p := range all {
		if p.CountDefined([]string{"trust", "humor"}) == 2 {
			expected++
		}
	}
	assert.Len(t, filtered, expected)
	assert.Equal(t, filtered, g.Shown())

	// filters restart from the generated population
	assert.Equal(t, all, g.ApplyFilter(0, nil))
	assert.Empty(t, g.ApplyFilter(1, []string{"unknown"}))
}

func TestApplyFilter_RespectsTruncatedCount(t *testing.T) {
	g := newTestGenerator(t, 21)
	_, err := g.Generate(10, 100, trio)
	require.NoError(t, err)
	_, err = g.Generate(4, 100, trio)
	require.NoError(t, err)

	assert.Len(t, g.ApplyFilter(1, trio), 4)
}

func TestApplyFilter_StartsFromBaseNotPreviousFilter(t *testing.T) {
	g := newTestGenerator(t, 33)
	all, err := g.Generate(12, 70, trio)
	require.NoError(t, err)

	narrow := g.ApplyFilter(3, trio)
	broad := g.ApplyFilter(1, []string{"trust"})

	expected := 0
	for _, p := range all {
		if p.CountDefined([]string{"trust"}) >= 1 {
			expected++
		}
	}
	assert.Len(t, broad, expected)
	assert.GreaterOrEqual(t, len(broad), len(narrow))
}

func TestUpdatePersonAttribute(t *testing.T) {
	g := newTestGenerator(t, 8)
	_, err := g.Generate(5, 0, trio)
	require.NoError(t, err)

	updated, err := g.UpdatePersonAttribute(2, "humor", 42)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Attributes["humor"], "value is clamped to the attribute range")
	assert.InDelta(t, 200.0/3, updated.PersonalAuraRadius, 1e-9)

	shown := g.Shown()
	assert.Equal(t, 10, shown[2].Attributes["humor"], "shown view sees the edit")

	_, err = g.UpdatePersonAttribute(99, "humor", 1)
	assert.True(t, errors.Is(err, errors.ErrPersonNotFound))

	_, err = g.UpdatePersonAttribute(1, "kindness", 1)
	assert.True(t, errors.Is(err, errors.ErrUnknownAttribute))
}

func TestSubscribe(t *testing.T) {
	g := newTestGenerator(t, 8)

	var batches [][]Person
	unsubscribe := g.Subscribe(func(p []Person) { batches = append(batches, p) })

	_, err := g.Generate(3, 70, trio)
	require.NoError(t, err)
	g.ApplyFilter(0, nil)
	_, err = g.Generate(1, 70, trio)
	require.Error(t, err)

	require.Len(t, batches, 2, "no-op generation does not notify")
	assert.Len(t, batches[0], 3)

	unsubscribe()
	_, err = g.Generate(4, 70, trio)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}
