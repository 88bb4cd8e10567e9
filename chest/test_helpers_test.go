// SPDX-License-Identifier: MIT

package chest_test

import (
	"github.com/katalvlaran/bandit/coin"
)

func normal(name string, p int) coin.Definition {
	return coin.Definition{Name: name, Type: "normal", Probability: coin.Prob(p)}
}

func dependent(name string, p int, rules ...coin.DependencyRule) coin.Definition {
	return coin.Definition{Name: name, Type: "dependent", Probability: coin.Prob(p), DependsOn: rules}
}

func variant(name string, p int, rules ...coin.DependencyRule) coin.VariantDefinition {
	v := coin.VariantDefinition{Name: name, Probability: coin.Prob(p)}
	if rules != nil {
		v.DependsOn = rules
	}
	return v
}

func multivariant(name, typ string, variants ...coin.VariantDefinition) coin.Definition {
	return coin.Definition{Name: name, Type: typ, Variants: variants}
}

func rule(name string, active, behavior bool, priority int) coin.DependencyRule {
	return coin.DependencyRule{Name: name, Active: active, Behavior: behavior, Priority: priority}
}
