package flavor

// CompoundCategory 風味化合物的化學類別
type CompoundCategory string

const (
	CompoundSulfur   CompoundCategory = "sulfur"
	CompoundAllicin  CompoundCategory = "allicin"
	CompoundPhenolic CompoundCategory = "phenolic"
	CompoundTerpene  CompoundCategory = "terpene"
	CompoundOther    CompoundCategory = "other"
)

// Valid 檢查是否為已知類別
func (c CompoundCategory) Valid() bool {
	switch c {
	case CompoundSulfur, CompoundAllicin, CompoundPhenolic, CompoundTerpene, CompoundOther:
		return true
	}
	return false
}

// IngredientCategory 食材分類
type IngredientCategory string

const (
	CategoryVegetable IngredientCategory = "vegetable"
	CategorySpice     IngredientCategory = "spice"
	CategoryHerb      IngredientCategory = "herb"
	CategoryAromatic  IngredientCategory = "aromatic"
)

// Valid 檢查是否為已知分類
func (c IngredientCategory) Valid() bool {
	switch c {
	case CategoryVegetable, CategorySpice, CategoryHerb, CategoryAromatic:
		return true
	}
	return false
}

// SattvicStatus 悅性飲食分級
type SattvicStatus string

const (
	StatusAllowed    SattvicStatus = "allowed"
	StatusForbidden  SattvicStatus = "forbidden"
	StatusRestricted SattvicStatus = "restricted"
)

// Valid 檢查是否為已知分級
func (s SattvicStatus) Valid() bool {
	switch s {
	case StatusAllowed, StatusForbidden, StatusRestricted:
		return true
	}
	return false
}

// FlavorCompound 風味化合物
type FlavorCompound struct {
	CompoundID      string           `json:"compoundId"`
	CompoundName    string           `json:"compoundName"`
	Category        CompoundCategory `json:"category"`
	FlavorNotes     []string         `json:"flavorNotes"`
	MolecularWeight float64          `json:"molecularWeight"` // g/mol，僅供展示
	RetentionTime   float64          `json:"retentionTime"`   // 僅供展示
}

// FlavorProfile 五維風味向量，每項介於 0 到 10
type FlavorProfile struct {
	Pungency    int `json:"pungency"`
	Umami       int `json:"umami"`
	Sweetness   int `json:"sweetness"`
	Bitterness  int `json:"bitterness"`
	Astringency int `json:"astringency"`
}

const (
	profileMin = 0
	profileMax = 10
)

// Clamp 將每一項限制在 [0,10]
func (p FlavorProfile) Clamp() FlavorProfile {
	return FlavorProfile{
		Pungency:    clampSlider(p.Pungency),
		Umami:       clampSlider(p.Umami),
		Sweetness:   clampSlider(p.Sweetness),
		Bitterness:  clampSlider(p.Bitterness),
		Astringency: clampSlider(p.Astringency),
	}
}

func clampSlider(v int) int {
	if v < profileMin {
		return profileMin
	}
	if v > profileMax {
		return profileMax
	}
	return v
}

// Ingredient 食材
type Ingredient struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Category      IngredientCategory `json:"category"`
	SattvicStatus SattvicStatus      `json:"sattvicStatus"`
	Compounds     []FlavorCompound   `json:"compounds"`
	FlavorProfile FlavorProfile      `json:"flavorProfile"`
	// MolecularSubstitutes 只出現在 forbidden 食材上，定義替代候選池
	MolecularSubstitutes []string `json:"molecularSubstitutes,omitempty"`
}

// HasSubstitutes 是否宣告了替代候選
func (i Ingredient) HasSubstitutes() bool {
	return len(i.MolecularSubstitutes) > 0
}

// Substitute 替代配方中的單一食材
type Substitute struct {
	Ingredient        Ingredient `json:"ingredient"`
	Ratio             float64    `json:"ratio"`
	Reason            string     `json:"reason"`
	MatchingCompounds []string   `json:"matchingCompounds"`
	ProfileSimilarity int        `json:"profileSimilarity"`
}

// SubstitutionBlend 替代配方，每次查詢計算一次
type SubstitutionBlend struct {
	TargetIngredient string       `json:"targetIngredient"`
	Substitutes      []Substitute `json:"substitutes"`
	FlavorSimilarity int          `json:"flavorSimilarity"`
	ScientificBasis  string       `json:"scientificBasis"`
	PreparationNotes string       `json:"preparationNotes"`
}
