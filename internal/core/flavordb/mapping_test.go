package flavordb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sattvic-kitchen/internal/core/flavor"
	"sattvic-kitchen/internal/pkg/common"
)

func TestToIngredient(t *testing.T) {
	ing := ToIngredient(Compound{
		ID:               "77",
		Name:             "Zingerone",
		CommonName:       "Dried Ginger",
		Category:         "Spice Extract",
		FunctionalGroups: []string{"Phenolic", "ketone"},
		FlavorProfile:    []string{"pungent", "sweet"},
		MolecularWeight:  194.23,
		ALogP:            1.24,
		HBDCount:         1,
	})

	assert.Equal(t, "api_77", ing.ID)
	assert.Equal(t, "Dried Ginger", ing.Name)
	assert.Equal(t, flavor.CategorySpice, ing.Category)
	assert.Equal(t, flavor.StatusAllowed, ing.SattvicStatus)
	assert.False(t, ing.HasSubstitutes())
	require.Len(t, ing.Compounds, 1)
	assert.Equal(t, "77", ing.Compounds[0].CompoundID)
	assert.Equal(t, "Zingerone", ing.Compounds[0].CompoundName)
	assert.Equal(t, flavor.CompoundPhenolic, ing.Compounds[0].Category)
	assert.Equal(t, []string{"pungent", "sweet"}, ing.Compounds[0].FlavorNotes)
	assert.Equal(t, 194.23, ing.Compounds[0].MolecularWeight)
	assert.Equal(t, flavor.FlavorProfile{Pungency: 2, Umami: 2}, ing.FlavorProfile)
}

func TestToIngredient_Defaults(t *testing.T) {
	ing := ToIngredient(Compound{ID: "5", Name: "Linalool", FunctionalGroups: []string{"alcohol"}})

	assert.Equal(t, "Linalool", ing.Name)
	assert.Equal(t, flavor.CategoryAromatic, ing.Category)
	assert.Equal(t, flavor.CompoundOther, ing.Compounds[0].Category)
	assert.NotNil(t, ing.Compounds[0].FlavorNotes)
	assert.Equal(t, 5, ing.FlavorProfile.Pungency)
	assert.Equal(t, 5, ing.FlavorProfile.Umami)
}

func TestToIngredient_SliderBounds(t *testing.T) {
	tests := []struct {
		alogp    float64
		hbd      int
		pungency int
		umami    int
	}{
		{alogp: 9.3, hbd: 8, pungency: 10, umami: 10},
		{alogp: -1.5, hbd: 3, pungency: 1, umami: 6},
		{alogp: 0.2, hbd: 5, pungency: 1, umami: 10},
		{alogp: 2.25, hbd: 1, pungency: 5, umami: 2},
	}
	for _, tt := range tests {
		p := ToIngredient(Compound{ID: "1", Name: "c", ALogP: tt.alogp, HBDCount: tt.hbd}).FlavorProfile
		assert.Equal(t, tt.pungency, p.Pungency, "alogp %v", tt.alogp)
		assert.Equal(t, tt.umami, p.Umami, "hbd %v", tt.hbd)
		assert.Zero(t, p.Sweetness)
	}
}

func TestToIngredient_HerbCategory(t *testing.T) {
	assert.Equal(t, flavor.CategoryHerb, ToIngredient(Compound{ID: "1", Category: "Culinary HERB"}).Category)
}

func TestCompoundIDFrom(t *testing.T) {
	id, ok := CompoundIDFrom("api_123")
	assert.True(t, ok)
	assert.Equal(t, ID("123"), id)

	_, ok = CompoundIDFrom("ing_garlic")
	assert.False(t, ok)
	_, ok = CompoundIDFrom("api_")
	assert.False(t, ok)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var c Compound
	require.NoError(t, common.ParseJSON(`{"id":991,"pubchemId":"702","name":"x"}`, &c))
	assert.Equal(t, ID("991"), c.ID)
	assert.Equal(t, ID("702"), c.PubchemID)

	assert.Error(t, common.ParseJSON(`{"id":{"a":1}}`, &c))
}
