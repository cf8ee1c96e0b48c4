package flavor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compound(name string, notes ...string) FlavorCompound {
	return FlavorCompound{CompoundID: "id_" + name, CompoundName: name, Category: CompoundOther, FlavorNotes: notes}
}

func TestMatchingCompounds(t *testing.T) {
	target := []FlavorCompound{
		compound("Allicin", "pungent", "sulfurous"),
		compound("Diallyl Disulfide", "garlic", "strong"),
	}
	candidate := []FlavorCompound{
		compound("Gingerol", "pungent", "warm"),
		compound("Zingiberene", "woody"),
		compound("Shogaol", "garlic", "pungent"),
	}

	assert.Equal(t, []string{"Gingerol", "Shogaol"}, MatchingCompounds(target, candidate))
}

func TestMatchingCompounds_Deduplicated(t *testing.T) {
	// Shogaol overlaps both target compounds; it is reported once.
	target := []FlavorCompound{
		compound("A", "pungent"),
		compound("B", "sharp"),
	}
	candidate := []FlavorCompound{
		compound("Shogaol", "sharp", "pungent"),
		compound("Shogaol", "pungent"),
	}

	assert.Equal(t, []string{"Shogaol"}, MatchingCompounds(target, candidate))
}

func TestMatchingCompounds_EmptyInputs(t *testing.T) {
	c := []FlavorCompound{compound("X", "earthy")}

	assert.Empty(t, MatchingCompounds(nil, c))
	assert.Empty(t, MatchingCompounds(c, nil))
	assert.NotNil(t, MatchingCompounds(nil, nil))
}

func TestMatchingCompounds_NoteLessCompoundsNeverMatch(t *testing.T) {
	target := []FlavorCompound{compound("T"), compound("U", "")}
	candidate := []FlavorCompound{compound("C", "earthy"), compound("D")}

	assert.Empty(t, MatchingCompounds(target, candidate))
	assert.Empty(t, MatchingCompounds([]FlavorCompound{compound("T", "earthy")}, []FlavorCompound{compound("D")}))
}

func TestMatchingCompounds_OrderIndependentSet(t *testing.T) {
	target := []FlavorCompound{
		compound("P", "pungent", "tear-inducing"),
		compound("Q", "onion", "sweet"),
	}
	candidate := []FlavorCompound{
		compound("Ferulic Acid", "earthy"),
		compound("Umbelliferone", "sweet"),
		compound("Asaresinotannol", "pungent"),
	}
	reversedTarget := []FlavorCompound{target[1], target[0]}
	reversedCandidate := []FlavorCompound{candidate[2], candidate[1], candidate[0]}

	base := MatchingCompounds(target, candidate)
	assert.ElementsMatch(t, base, MatchingCompounds(reversedTarget, candidate))
	assert.ElementsMatch(t, base, MatchingCompounds(target, reversedCandidate))
	assert.ElementsMatch(t, base, MatchingCompounds(reversedTarget, reversedCandidate))
}

func TestProfileSimilarity_Example(t *testing.T) {
	target := FlavorProfile{Pungency: 9, Umami: 7, Sweetness: 2}
	candidate := FlavorProfile{Pungency: 10, Umami: 4, Sweetness: 1}

	assert.Equal(t, 5, ProfileDiff(target, candidate))
	assert.Equal(t, 75, ProfileSimilarity(target, candidate))
}

func TestProfileSimilarity_IgnoresBitternessAndAstringency(t *testing.T) {
	a := FlavorProfile{Pungency: 3, Umami: 3, Sweetness: 3, Bitterness: 0, Astringency: 0}
	b := FlavorProfile{Pungency: 3, Umami: 3, Sweetness: 3, Bitterness: 10, Astringency: 10}

	assert.Equal(t, 100, ProfileSimilarity(a, b))
}

func TestProfileSimilarity_FloorsAtZero(t *testing.T) {
	a := FlavorProfile{Pungency: 0, Umami: 0, Sweetness: 0}
	b := FlavorProfile{Pungency: 10, Umami: 10, Sweetness: 10}

	assert.Equal(t, 30, ProfileDiff(a, b))
	assert.Equal(t, 0, ProfileSimilarity(a, b))
}

func TestProfileSimilarity_ClampsOutOfRange(t *testing.T) {
	a := FlavorProfile{Pungency: 42, Umami: -3, Sweetness: 5}
	b := FlavorProfile{Pungency: 10, Umami: 0, Sweetness: 5}

	assert.Equal(t, 0, ProfileDiff(a, b))
	assert.Equal(t, 100, ProfileSimilarity(a, b))
}

func TestProfileSimilarity_BoundsOverGrid(t *testing.T) {
	for p := -2; p <= 12; p += 2 {
		for u := -2; u <= 12; u += 3 {
			for s := 0; s <= 10; s += 5 {
				a := FlavorProfile{Pungency: p, Umami: u, Sweetness: s}
				b := FlavorProfile{Pungency: 10 - p, Umami: u, Sweetness: 10 - s}
				sim := ProfileSimilarity(a, b)
				assert.GreaterOrEqual(t, sim, 0)
				assert.LessOrEqual(t, sim, 100)

				ca, cb := a.Clamp(), b.Clamp()
				equal := ca.Pungency == cb.Pungency && ca.Umami == cb.Umami && ca.Sweetness == cb.Sweetness
				assert.Equal(t, equal, sim == 100)
			}
		}
	}
}

func TestRatioRules_Lookup(t *testing.T) {
	rules := DefaultRatioRules()

	tests := []struct {
		name   string
		ratio  float64
		reason string
	}{
		{"Asafoetida (Hing)", 0.05, "Sulfur compounds (Asaresinotannol) mimic garlic's allicin pungency"},
		{"Cumin", 0.4, "Cuminaldehyde provides earthy umami base similar to cooked onions"},
		{"Ginger", 0.3, "Gingerol and shogaol add pungent heat without sulfur"},
		{"Fenugreek Leaves (Kasuri Methi)", 0.25, "Sotolone adds sweet caramelized onion notes"},
		{"Black Pepper", 0.3, "Complements base flavors"},
		{"cumin", 0.3, "Complements base flavors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratio, reason := rules.Lookup(tt.name)
			assert.Equal(t, tt.ratio, ratio)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestRatioRules_FirstMatchWins(t *testing.T) {
	ratio, _ := DefaultRatioRules().Lookup("Asafoetida and Cumin")
	assert.Equal(t, 0.05, ratio)
}

func TestNewRatioRules_DropsInvalid(t *testing.T) {
	rules := NewRatioRules(RatioRule{Ratio: 0},
		RatioRule{Match: "", Ratio: 0.5},
		RatioRule{Match: "Salt", Ratio: 1.5},
		RatioRule{Match: "Mint", Ratio: 0.1, Reason: "cooling"},
	)

	assert.Len(t, rules.Rules(), 1)
	ratio, reason := rules.Lookup("Turmeric")
	assert.Equal(t, DefaultRatioRule.Ratio, ratio)
	assert.Equal(t, DefaultRatioRule.Reason, reason)
}

func TestNoteTable_ExactMatchOnly(t *testing.T) {
	basis := DefaultScientificBasis()

	assert.Contains(t, basis.Lookup("Garlic"), "Allicin (C6H10OS2)")
	assert.Contains(t, basis.Lookup("garlic"), "Molecular substitution targets")
	assert.Contains(t, DefaultPreparationNotes().Lookup("Leek"), "oil-solubility")
}
