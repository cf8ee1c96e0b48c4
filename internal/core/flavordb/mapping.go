package flavordb

import (
	"math"
	"strings"

	"sattvic-kitchen/internal/core/flavor"
)

// IDPrefix 遠端食材 id 前綴
const IDPrefix = "api_"

// defaultSlider 遠端資料缺少對應欄位時的預設值
const defaultSlider = 5

// IngredientID 化合物對應的食材 id
func IngredientID(compoundID ID) string {
	return IDPrefix + string(compoundID)
}

// CompoundIDFrom 從 api_ 食材 id 取出化合物 id
func CompoundIDFrom(ingredientID string) (ID, bool) {
	if !strings.HasPrefix(ingredientID, IDPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(ingredientID, IDPrefix)
	if rest == "" {
		return "", false
	}
	return ID(rest), true
}

// ToIngredient 將遠端化合物轉換為 allowed 食材
func ToIngredient(c Compound) flavor.Ingredient {
	name := c.CommonName
	if name == "" {
		name = c.Name
	}

	notes := make([]string, len(c.FlavorProfile))
	copy(notes, c.FlavorProfile)

	return flavor.Ingredient{
		ID:            IngredientID(c.ID),
		Name:          name,
		Category:      mapCategory(c.Category),
		SattvicStatus: flavor.StatusAllowed,
		Compounds: []flavor.FlavorCompound{{
			CompoundID:      string(c.ID),
			CompoundName:    c.Name,
			Category:        mapCompoundCategory(c.FunctionalGroups),
			FlavorNotes:     notes,
			MolecularWeight: c.MolecularWeight,
			RetentionTime:   0,
		}},
		FlavorProfile: flavor.FlavorProfile{
			Pungency: pungency(c.ALogP),
			Umami:    umami(c.HBDCount),
		},
	}
}

func mapCategory(remote string) flavor.IngredientCategory {
	lower := strings.ToLower(remote)
	switch {
	case strings.Contains(lower, "spice"):
		return flavor.CategorySpice
	case strings.Contains(lower, "herb"):
		return flavor.CategoryHerb
	}
	return flavor.CategoryAromatic
}

func mapCompoundCategory(groups []string) flavor.CompoundCategory {
	if len(groups) == 0 {
		return flavor.CompoundOther
	}
	cat := flavor.CompoundCategory(strings.ToLower(strings.TrimSpace(groups[0])))
	if !cat.Valid() {
		return flavor.CompoundOther
	}
	return cat
}

// pungency 以脂溶性估計辛辣度，範圍 [1,10]
func pungency(alogp float64) int {
	if alogp == 0 {
		return defaultSlider
	}
	v := int(math.Round(alogp * 2))
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

// umami 以氫鍵供體數估計鮮味
func umami(hbd int) int {
	if hbd <= 0 {
		return defaultSlider
	}
	if hbd*2 > 10 {
		return 10
	}
	return hbd * 2
}
