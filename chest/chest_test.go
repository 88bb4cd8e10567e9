// SPDX-License-Identifier: MIT

package chest_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bandit/chest"
	"github.com/katalvlaran/bandit/coin"
)

func TestNew_Empty(t *testing.T) {
	c, err := chest.New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.FlipCoins())
	assert.Empty(t, c.MixCoins())
}

func TestNew_DuplicateName(t *testing.T) {
	cases := []struct {
		name string
		defs []coin.Definition
		dup  string
	}{
		{
			name: "two coins",
			defs: []coin.Definition{normal("banner", 10), dependent("banner", 20)},
			dup:  "banner",
		},
		{
			name: "variant shadows coin",
			defs: []coin.Definition{
				normal("layout-a", 10),
				multivariant("layout", "multivariant", variant("layout-a", 50), variant("layout-b", 50)),
			},
			dup: "layout-a",
		},
		{
			name: "variants inside one coin",
			defs: []coin.Definition{
				multivariant("layout", "multivariant", variant("same", 50), variant("same", 50)),
			},
			dup: "same",
		},
		{
			name: "variant named like its coin",
			defs: []coin.Definition{
				multivariant("layout", "dependentMultivariant", variant("layout", 50)),
			},
			dup: "layout",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := chest.New(tc.defs)
			assert.Nil(t, c)
			require.ErrorIs(t, err, chest.ErrDuplicateName)
			assert.Contains(t, err.Error(), "the name "+tc.dup+" ")
			assert.Contains(t, err.Error(), "is already in use")
		})
	}
}

func TestNew_InvalidType(t *testing.T) {
	def := coin.Definition{Name: "x", Type: "rollout", Probability: coin.Prob(10)}
	c, err := chest.New([]coin.Definition{normal("ok", 1), def})
	assert.Nil(t, c)
	require.ErrorIs(t, err, coin.ErrInvalidType)
	assert.Contains(t, err.Error(), def.String())
	assert.Contains(t, err.Error(), "definition 1")
}

func TestNew_FieldErrors(t *testing.T) {
	_, err := chest.New([]coin.Definition{{Name: "x", Type: "normal", Probability: coin.Prob(140)}})
	assert.ErrorIs(t, err, coin.ErrProbabilityOutOfRange)

	_, err = chest.New([]coin.Definition{{Name: "x", Type: "dependent"}})
	assert.ErrorIs(t, err, coin.ErrMissingField)
}

func TestNew_CircularDependency(t *testing.T) {
	cases := []struct {
		name string
		defs []coin.Definition
		node string
	}{
		{
			name: "mutual reference",
			defs: []coin.Definition{
				dependent("A", 50, rule("B", true, true, 0)),
				dependent("B", 50, rule("A", true, true, 0)),
			},
			node: "A",
		},
		{
			name: "self reference",
			defs: []coin.Definition{
				normal("N", 10),
				dependent("S", 50, rule("S", true, false, 0)),
			},
			node: "S",
		},
		{
			name: "through a dependent variant",
			defs: []coin.Definition{
				dependent("D", 50, rule("m1", true, true, 0)),
				multivariant("M", "dependentMultivariant",
					variant("m1", 50, rule("D", false, false, 0)),
					variant("m2", 50)),
			},
			node: "D",
		},
		{
			name: "three step loop",
			defs: []coin.Definition{
				dependent("A", 50, rule("B", true, true, 0)),
				dependent("B", 50, rule("C", true, true, 0)),
				dependent("C", 50, rule("A", true, true, 0)),
			},
			node: "A",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := chest.New(tc.defs)
			assert.Nil(t, c)
			require.ErrorIs(t, err, chest.ErrCircularDependency)
			assert.Contains(t, err.Error(), "the "+tc.node+" test")
		})
	}
}

func TestNew_RuleFreeIsAcyclic(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		normal("a", 10),
		dependent("b", 10),
		multivariant("m", "dependentMultivariant", variant("m1", 10), variant("m2", 10)),
	})
	require.NoError(t, err)

	_, circular := c.DependencyGraph().IsCircular()
	assert.False(t, circular)
}

// TestGetCoin_RoundTrip checks every defined name resolves to an entity that
// matches its definition.
func TestGetCoin_RoundTrip(t *testing.T) {
	defs := []coin.Definition{
		normal("banner", 25),
		dependent("checkout", 60, rule("banner", true, false, 1)),
		multivariant("layout", "multivariant", variant("layout-a", 40), variant("layout-b", 60)),
		multivariant("pricing", "dependentMultivariant",
			variant("pricing-low", 50, rule("banner", true, true, 0)),
			variant("pricing-high", 50)),
	}
	c, err := chest.New(defs)
	require.NoError(t, err)

	for _, def := range defs {
		e, ok := c.GetCoin(def.Name)
		require.True(t, ok, def.Name)
		cn, isCoin := e.(*coin.Coin)
		require.True(t, isCoin)
		assert.Equal(t, def.Name, cn.Name())
		assert.Equal(t, coin.Type(def.Type), cn.Type())

		if def.Probability != nil {
			assert.Equal(t, *def.Probability, cn.Probability())
		}
		require.Len(t, cn.Variants(), len(def.Variants))
		for i, vd := range def.Variants {
			assert.Equal(t, vd.Name, cn.Variants()[i].Name())
			assert.Equal(t, *vd.Probability, cn.Variants()[i].Probability())

			ve, ok := c.GetCoin(vd.Name)
			require.True(t, ok, vd.Name)
			v, isVariant := ve.(*coin.Variant)
			require.True(t, isVariant)
			assert.Equal(t, def.Name, v.Coin())
		}
	}

	_, ok := c.GetCoin("missing")
	assert.False(t, ok)
	assert.Len(t, c.Coins(), len(defs))
}

func TestNew_TypeTagIsCaseInsensitive(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		{Name: "a", Type: "NORMAL", Probability: coin.Prob(1)},
		{Name: "m", Type: "DependentMultiVariant", Variants: []coin.VariantDefinition{variant("m1", 1)}},
	})
	require.NoError(t, err)

	e, _ := c.GetCoin("a")
	assert.Equal(t, coin.TypeNormal, e.Type())
	e, _ = c.GetCoin("m")
	assert.Equal(t, coin.TypeDependentMultivariant, e.Type())
}

func TestPickingOrder(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		dependent("D", 50, rule("C", true, true, 0)),
		dependent("C", 50, rule("N", true, true, 0)),
		normal("N", 50),
		dependent("E", 50),
		multivariant("M", "multivariant", variant("m1", 50)),
	})
	require.NoError(t, err)

	var got []string
	for _, cn := range c.PickingOrder() {
		got = append(got, cn.Name())
	}
	assert.Equal(t, []string{"N", "M", "C", "D", "E"}, got)
}

// TestPickingOrder_ChainAgainstDefinitionOrder uses a chain the pairwise
// comparator could not order from this input.
func TestPickingOrder_ChainAgainstDefinitionOrder(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		dependent("A", 50, rule("B", true, true, 0)),
		dependent("X", 50),
		dependent("B", 50, rule("C", true, true, 0)),
		dependent("C", 50),
	})
	require.NoError(t, err)

	pos := make(map[string]int)
	for i, cn := range c.PickingOrder() {
		pos[cn.Name()] = i
	}
	assert.Less(t, pos["C"], pos["B"])
	assert.Less(t, pos["B"], pos["A"])
}

func TestPickingOrder_VariantOwner(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		dependent("D", 50, rule("p1", true, true, 0)),
		multivariant("P", "dependentMultivariant",
			variant("p1", 50, rule("N", true, true, 0)),
			variant("p2", 50)),
		normal("N", 50),
	})
	require.NoError(t, err)

	var got []string
	for _, cn := range c.PickingOrder() {
		got = append(got, cn.Name())
	}
	assert.Equal(t, []string{"N", "P", "D"}, got)
}

func TestNew_UnknownReferenceIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := chest.New([]coin.Definition{
		dependent("D", 50, rule("ghost", true, true, 0)),
	}, chest.WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "references unknown test")
	assert.Contains(t, buf.String(), "name=ghost")
	assert.Contains(t, buf.String(), "chest constructed")
}

func TestWriteDOT(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		normal("N", 50),
		dependent("D", 30, rule("N", true, false, 0)),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteDOT(&buf))
	out := buf.String()
	assert.Contains(t, out, `digraph "dependencies" {`)
	assert.Contains(t, out, `"D" -> "N";`)
	assert.Contains(t, out, `label="D\ndependent 30%"`)
	assert.Contains(t, out, `label="N\nreference"`)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { chest.WithRand(nil) })
	assert.Panics(t, func() { chest.WithLogger(nil) })
	assert.Panics(t, func() { chest.WithSampleSize(0) })
}

func TestDependencyGraph_ForwardReferenceKeepsDetail(t *testing.T) {
	c, err := chest.New([]coin.Definition{
		dependent("D", 30, rule("C", true, true, 0)),
		dependent("C", 70),
	})
	require.NoError(t, err)

	g := c.DependencyGraph()
	assert.Equal(t, []string{"D", "C"}, g.Nodes())
	d, ok := g.Detail("C")
	require.True(t, ok)
	assert.Equal(t, coin.TypeDependent, d.Type)
	assert.Equal(t, 70, d.Probability)
	assert.True(t, g.HasEdgeTo("D", "C"))
}
