// SPDX-License-Identifier: MIT

package coin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bandit/coin"
	"github.com/katalvlaran/bandit/sampler"
)

func TestParseType(t *testing.T) {
	cases := map[string]coin.Type{
		"normal":                coin.TypeNormal,
		"NORMAL":                coin.TypeNormal,
		"dependent":             coin.TypeDependent,
		"Multivariant":          coin.TypeMultivariant,
		"dependentMultivariant": coin.TypeDependentMultivariant,
		"dependentmultivariant": coin.TypeDependentMultivariant,
	}
	for in, want := range cases {
		got, err := coin.ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "variant", "dependentVariant", "feature"} {
		_, err := coin.ParseType(bad)
		assert.ErrorIs(t, err, coin.ErrInvalidType, bad)
	}
}

func TestNew_Normal(t *testing.T) {
	c, err := coin.New(coin.Definition{
		Name:        "banner",
		Type:        "normal",
		Probability: coin.Prob(40),
		Metadata:    map[string]any{"owner": "growth"},
	})
	require.NoError(t, err)

	assert.Equal(t, "banner", c.Name())
	assert.Equal(t, coin.TypeNormal, c.Type())
	assert.Equal(t, 40, c.Probability())
	assert.Equal(t, map[string]any{"owner": "growth"}, c.Metadata())
	assert.False(t, c.IsMultivariant())
	assert.False(t, c.IsDependent())
	assert.Equal(t, []sampler.Bucket{{Count: 40, Value: "banner"}}, c.SamplingMapping())

	_, ok := c.Variant("banner")
	assert.False(t, ok)
}

func TestNew_DefaultsAndImmutability(t *testing.T) {
	meta := map[string]any{"k": "v"}
	c, err := coin.New(coin.Definition{Name: "a", Type: "normal", Probability: coin.Prob(0), Metadata: meta})
	require.NoError(t, err)

	meta["k"] = "changed"
	assert.Equal(t, "v", c.Metadata()["k"], "definition changes do not leak in")

	got := c.Metadata()
	got["k"] = "mutated"
	assert.Equal(t, "v", c.Metadata()["k"], "accessor copies do not leak out")

	empty, err := coin.New(coin.Definition{Name: "b", Type: "normal", Probability: coin.Prob(10)})
	require.NoError(t, err)
	assert.NotNil(t, empty.Metadata())
	assert.Empty(t, empty.Metadata())
}

func TestNew_Dependent(t *testing.T) {
	rules := []coin.DependencyRule{
		{Name: "banner", Active: true, Behavior: false, Priority: 1},
		{Name: "search", Active: false, Behavior: true, Priority: 0},
	}
	c, err := coin.New(coin.Definition{Name: "checkout", Type: "dependent", Probability: coin.Prob(50), DependsOn: rules})
	require.NoError(t, err)

	assert.True(t, c.IsDependent())
	assert.True(t, coin.IsDependent(c))
	assert.False(t, coin.IsMultivariant(c))
	assert.Equal(t, rules, c.DependsOn())

	r, ok := c.Dependent("search")
	require.True(t, ok)
	assert.Equal(t, rules[1], r)
	_, ok = c.Dependent("missing")
	assert.False(t, ok)

	got := c.DependsOn()
	got[0].Behavior = true
	assert.False(t, c.DependsOn()[0].Behavior)

	noRules, err := coin.New(coin.Definition{Name: "lonely", Type: "dependent", Probability: coin.Prob(5)})
	require.NoError(t, err)
	assert.Empty(t, noRules.DependsOn())
}

func TestNew_Multivariant(t *testing.T) {
	c, err := coin.New(coin.Definition{
		Name: "layout",
		Type: "multivariant",
		Variants: []coin.VariantDefinition{
			{Name: "layout-a", Probability: coin.Prob(30)},
			{Name: "layout-b", Probability: coin.Prob(30), Metadata: map[string]any{"color": "red"}},
			{Name: "layout-c", Probability: coin.Prob(40), DependsOn: []coin.DependencyRule{{Name: "x"}}},
		},
	})
	require.NoError(t, err)

	assert.True(t, c.IsMultivariant())
	assert.False(t, c.IsDependent())
	assert.Equal(t, []string{"layout", "layout-a", "layout-b", "layout-c"}, c.Names())
	assert.Equal(t, []sampler.Bucket{
		{Count: 30, Value: "layout-a"},
		{Count: 30, Value: "layout-b"},
		{Count: 40, Value: "layout-c"},
	}, c.SamplingMapping())

	v, ok := c.Variant("layout-c")
	require.True(t, ok)
	assert.Equal(t, coin.TypeVariant, v.Type(), "plain multivariant drops variant rules")
	assert.Nil(t, v.DependsOn())
	assert.Equal(t, "layout", v.Coin())

	v, ok = c.Variant("layout-b")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"color": "red"}, v.Metadata())
}

func TestNew_VariantMetadataFallsBackToCoin(t *testing.T) {
	def := coin.Definition{
		Name:     "layout",
		Type:     "dependentMultivariant",
		Metadata: map[string]any{"team": "growth"},
		Variants: []coin.VariantDefinition{
			{Name: "layout-a", Probability: coin.Prob(50)},
			{Name: "layout-b", Probability: coin.Prob(50), Metadata: map[string]any{"color": "red"}},
			{Name: "layout-c", Probability: coin.Prob(0), Metadata: map[string]any{}},
		},
	}
	c, err := coin.New(def)
	require.NoError(t, err)

	a, _ := c.Variant("layout-a")
	assert.Equal(t, map[string]any{"team": "growth"}, a.Metadata())
	b, _ := c.Variant("layout-b")
	assert.Equal(t, map[string]any{"color": "red"}, b.Metadata(), "own metadata is not merged")
	cc, _ := c.Variant("layout-c")
	assert.Empty(t, cc.Metadata(), "an explicit empty map is kept")

	def.Metadata["team"] = "changed"
	assert.Equal(t, "growth", a.Metadata()["team"], "inherited metadata is a copy")
}

func TestNew_DependentMultivariant(t *testing.T) {
	c, err := coin.New(coin.Definition{
		Name: "pricing",
		Type: "dependentMultivariant",
		Variants: []coin.VariantDefinition{
			{Name: "pricing-low", Probability: coin.Prob(50), DependsOn: []coin.DependencyRule{{Name: "banner", Active: true, Behavior: true}}},
			{Name: "pricing-high", Probability: coin.Prob(50)},
			{Name: "pricing-none", Probability: coin.Prob(0), DependsOn: []coin.DependencyRule{}},
		},
	})
	require.NoError(t, err)

	assert.True(t, c.IsMultivariant())
	assert.True(t, c.IsDependent())

	low, _ := c.Variant("pricing-low")
	high, _ := c.Variant("pricing-high")
	none, _ := c.Variant("pricing-none")
	assert.Equal(t, coin.TypeDependentVariant, low.Type())
	assert.True(t, low.IsDependent())
	assert.Equal(t, coin.TypeVariant, high.Type())
	assert.False(t, high.IsDependent())
	assert.Equal(t, coin.TypeDependentVariant, none.Type(), "an empty rule list still marks a dependent variant")

	r, ok := c.Dependent("banner")
	require.True(t, ok)
	assert.True(t, r.Behavior)
	_, ok = c.Dependent("pricing-high")
	assert.False(t, ok)
}

func TestNew_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		def  coin.Definition
		want error
	}{
		{
			name: "invalid type",
			def:  coin.Definition{Name: "a", Type: "flag", Probability: coin.Prob(1)},
			want: coin.ErrInvalidType,
		},
		{
			name: "missing type",
			def:  coin.Definition{Name: "a", Probability: coin.Prob(1)},
			want: coin.ErrInvalidType,
		},
		{
			name: "missing name",
			def:  coin.Definition{Type: "normal", Probability: coin.Prob(1)},
			want: coin.ErrMissingField,
		},
		{
			name: "missing probability",
			def:  coin.Definition{Name: "a", Type: "dependent"},
			want: coin.ErrMissingField,
		},
		{
			name: "probability above range",
			def:  coin.Definition{Name: "a", Type: "normal", Probability: coin.Prob(101)},
			want: coin.ErrProbabilityOutOfRange,
		},
		{
			name: "probability below range",
			def:  coin.Definition{Name: "a", Type: "normal", Probability: coin.Prob(-1)},
			want: coin.ErrProbabilityOutOfRange,
		},
		{
			name: "rule without name",
			def:  coin.Definition{Name: "a", Type: "dependent", Probability: coin.Prob(1), DependsOn: []coin.DependencyRule{{Priority: 1}}},
			want: coin.ErrMissingField,
		},
		{
			name: "variant without name",
			def:  coin.Definition{Name: "m", Type: "multivariant", Variants: []coin.VariantDefinition{{Probability: coin.Prob(1)}}},
			want: coin.ErrMissingField,
		},
		{
			name: "variant without probability",
			def:  coin.Definition{Name: "m", Type: "multivariant", Variants: []coin.VariantDefinition{{Name: "v"}}},
			want: coin.ErrMissingField,
		},
		{
			name: "variant probability out of range",
			def:  coin.Definition{Name: "m", Type: "dependentMultivariant", Variants: []coin.VariantDefinition{{Name: "v", Probability: coin.Prob(300)}}},
			want: coin.ErrProbabilityOutOfRange,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := coin.New(tc.def)
			assert.Nil(t, c)
			require.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), tc.def.String(), "message echoes the definition")
		})
	}
}

func TestNew_BoundaryProbabilities(t *testing.T) {
	for _, p := range []int{0, 100} {
		c, err := coin.New(coin.Definition{Name: "edge", Type: "normal", Probability: coin.Prob(p)})
		require.NoError(t, err)
		assert.Equal(t, p, c.Probability())
	}
}
