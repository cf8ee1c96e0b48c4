package flavor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sattvic-kitchen/internal/pkg/common"
)

func ids(items []Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, ing := range items {
		out = append(out, ing.ID)
	}
	return out
}

func TestDefaultIngredients(t *testing.T) {
	items, err := DefaultIngredients()
	require.NoError(t, err)
	assert.Len(t, items, 8)

	for _, ing := range items {
		if ing.SattvicStatus == StatusForbidden {
			assert.True(t, ing.HasSubstitutes(), ing.ID)
		} else {
			assert.False(t, ing.HasSubstitutes(), ing.ID)
		}
	}
}

func TestCatalog_FindForbiddenAndAllowed(t *testing.T) {
	cat := Snapshot(defaultProvider(t))

	assert.Equal(t, []string{"ing_garlic", "ing_onion"}, ids(cat.FindForbidden()))
	assert.Equal(t, []string{
		"ing_asafoetida", "ing_cumin", "ing_ginger", "ing_black_pepper", "ing_fenugreek", "ing_turmeric",
	}, ids(cat.FindAllowed()))
}

func TestCatalog_Search(t *testing.T) {
	cat := Snapshot(defaultProvider(t))

	assert.Equal(t, []string{"ing_ginger"}, ids(cat.Search("GING")))
	// compound name match
	assert.Equal(t, []string{"ing_fenugreek"}, ids(cat.Search("sotolone")))
	// "pepper" matches the black pepper name only
	assert.Equal(t, []string{"ing_black_pepper"}, ids(cat.Search("pepper")))
	assert.Empty(t, cat.Search("saffron"))
}

func TestCatalog_SearchEmptyQueryReturnsAll(t *testing.T) {
	cat := Snapshot(defaultProvider(t))

	assert.Equal(t, ids(cat.All()), ids(cat.Search("")))
	assert.Len(t, cat.Search("   "), 8)
}

func TestCatalog_FindByID(t *testing.T) {
	cat := Snapshot(defaultProvider(t))

	ing, ok := cat.FindByID("ing_turmeric")
	require.True(t, ok)
	assert.Equal(t, "Turmeric", ing.Name)

	_, ok = cat.FindByID("api_123")
	assert.False(t, ok)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	cat := Snapshot(defaultProvider(t))
	all := cat.All()
	all[0].Name = "changed"

	ing, _ := cat.FindByID(all[0].ID)
	assert.NotEqual(t, "changed", ing.Name)
	assert.Equal(t, 8, cat.Len())
}

func TestLoadFixture_ClampsProfile(t *testing.T) {
	items, err := LoadFixture(strings.NewReader(`[{"id":"x","name":"X","category":"herb","sattvicStatus":"allowed","compounds":[],"flavorProfile":{"pungency":15,"umami":-1,"sweetness":3,"bitterness":0,"astringency":0}}]`))
	require.NoError(t, err)
	assert.Equal(t, FlavorProfile{Pungency: 10, Umami: 0, Sweetness: 3}, items[0].FlavorProfile)
}

func TestLoadFixture_Validation(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing id", `[{"name":"X","category":"herb","sattvicStatus":"allowed"}]`},
		{"duplicate id", `[{"id":"a","name":"A","category":"herb","sattvicStatus":"allowed"},{"id":"a","name":"B","category":"herb","sattvicStatus":"allowed"}]`},
		{"bad category", `[{"id":"a","name":"A","category":"grain","sattvicStatus":"allowed"}]`},
		{"bad status", `[{"id":"a","name":"A","category":"herb","sattvicStatus":"rajasic"}]`},
		{"bad compound category", `[{"id":"a","name":"A","category":"herb","sattvicStatus":"allowed","compounds":[{"compoundId":"c","compoundName":"C","category":"ester"}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixture(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
		})
	}
}

func TestLoadFixture_UnknownField(t *testing.T) {
	_, err := LoadFixture(strings.NewReader(`[{"id":"a","name":"A","category":"herb","sattvicStatus":"allowed","colour":"red"}]`))
	assert.Error(t, err)
}

func TestLoadFixtureFile_Missing(t *testing.T) {
	_, err := LoadFixtureFile("/nonexistent/ingredients.json")
	assert.Error(t, err)
}
