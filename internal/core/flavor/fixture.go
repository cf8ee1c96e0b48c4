package flavor

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"sattvic-kitchen/internal/pkg/common"
)

//go:embed fixtures/ingredients.json
var defaultFixture []byte

// DefaultIngredients 內建的參考食材資料
func DefaultIngredients() ([]Ingredient, error) {
	return LoadFixture(bytes.NewReader(defaultFixture))
}

// LoadFixtureFile 從檔案載入食材資料
func LoadFixtureFile(path string) ([]Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()
	return LoadFixture(f)
}

// LoadFixture 解析並驗證食材資料，風味輪廓會被限制在 [0,10]
func LoadFixture(r io.Reader) ([]Ingredient, error) {
	var items []Ingredient
	if err := common.DecodeJSONStrict(r, &items); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		ing := &items[i]
		if ing.ID == "" {
			return nil, common.NewValidationError(fmt.Sprintf("ingredient #%d has no id", i))
		}
		if _, dup := seen[ing.ID]; dup {
			return nil, common.NewValidationError(fmt.Sprintf("duplicate ingredient id %q", ing.ID))
		}
		seen[ing.ID] = struct{}{}

		if !ing.Category.Valid() {
			return nil, common.NewValidationError(fmt.Sprintf("ingredient %q has unknown category %q", ing.ID, ing.Category))
		}
		if !ing.SattvicStatus.Valid() {
			return nil, common.NewValidationError(fmt.Sprintf("ingredient %q has unknown sattvic status %q", ing.ID, ing.SattvicStatus))
		}
		for _, comp := range ing.Compounds {
			if !comp.Category.Valid() {
				return nil, common.NewValidationError(fmt.Sprintf("compound %q of %q has unknown category %q", comp.CompoundID, ing.ID, comp.Category))
			}
		}
		ing.FlavorProfile = ing.FlavorProfile.Clamp()
	}
	return items, nil
}
