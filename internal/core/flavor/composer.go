package flavor

import (
	"fmt"
	"math"
)

// FixedFlavorSimilarity 相容模式下回傳的整體相似度
const FixedFlavorSimilarity = 85

// SimilarityMode 決定 flavorSimilarity 的計算方式
type SimilarityMode string

const (
	// SimilarityFixed 固定回傳 85
	SimilarityFixed SimilarityMode = "fixed"
	// SimilarityComputed 回傳各替代食材輪廓相似度的平均值
	SimilarityComputed SimilarityMode = "computed"
)

// ParseSimilarityMode 解析設定值
func ParseSimilarityMode(s string) (SimilarityMode, error) {
	switch SimilarityMode(s) {
	case "", SimilarityFixed:
		return SimilarityFixed, nil
	case SimilarityComputed:
		return SimilarityComputed, nil
	}
	return "", fmt.Errorf("unknown similarity mode %q", s)
}

// Outcome 查詢結果類型
type Outcome int

const (
	// OutcomeComposed 成功組出替代配方（替代清單可能為空）
	OutcomeComposed Outcome = iota
	// OutcomeNotFound 目錄中沒有此食材
	OutcomeNotFound
	// OutcomeNoSubstitution 食材存在但沒有宣告替代候選
	OutcomeNoSubstitution
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComposed:
		return "composed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNoSubstitution:
		return "no_substitution"
	}
	return "unknown"
}

// Result 帶標記的查詢結果
type Result struct {
	Outcome Outcome
	Blend   *SubstitutionBlend
	// Dropped 無法解析而被略過的替代食材 id
	Dropped []string
}

// Composer 替代配方組合器
type Composer struct {
	provider Provider
	ratios   RatioRules
	basis    NoteTable
	prep     NoteTable
	mode     SimilarityMode
}

// ComposerOption 組合器選項
type ComposerOption func(*Composer)

// WithRatioRules 替換比例規則表
func WithRatioRules(rules RatioRules) ComposerOption {
	return func(c *Composer) {
		c.ratios = rules
	}
}

// WithNoteTables 替換科學依據與烹調說明
func WithNoteTables(basis, prep NoteTable) ComposerOption {
	return func(c *Composer) {
		c.basis = basis
		c.prep = prep
	}
}

// WithSimilarityMode 設定 flavorSimilarity 的計算方式
func WithSimilarityMode(mode SimilarityMode) ComposerOption {
	return func(c *Composer) {
		c.mode = mode
	}
}

// NewComposer 創建組合器
func NewComposer(provider Provider, opts ...ComposerOption) *Composer {
	c := &Composer{
		provider: provider,
		ratios:   DefaultRatioRules(),
		basis:    DefaultScientificBasis(),
		prep:     DefaultPreparationNotes(),
		mode:     SimilarityFixed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SimilarityMode 目前使用的相似度模式
func (c *Composer) SimilarityMode() SimilarityMode {
	return c.mode
}

// GetSubstitutes 回傳替代配方；食材不存在或沒有替代候選時回傳 nil
func (c *Composer) GetSubstitutes(ingredientID string) *SubstitutionBlend {
	return c.Resolve(ingredientID).Blend
}

// Resolve 在一份目錄快照上組合替代配方
func (c *Composer) Resolve(ingredientID string) Result {
	return c.ResolveIn(Snapshot(c.provider), ingredientID)
}

// ResolveIn 在指定的目錄快照上組合替代配方
func (c *Composer) ResolveIn(catalog *Catalog, ingredientID string) Result {
	target, ok := catalog.FindByID(ingredientID)
	if !ok {
		return Result{Outcome: OutcomeNotFound}
	}
	if !target.HasSubstitutes() {
		return Result{Outcome: OutcomeNoSubstitution}
	}

	var dropped []string
	substitutes := make([]Substitute, 0, len(target.MolecularSubstitutes))
	for _, subID := range target.MolecularSubstitutes {
		sub, found := catalog.FindByID(subID)
		if !found {
			dropped = append(dropped, subID)
			continue
		}
		ratio, reason := c.ratios.Lookup(sub.Name)
		substitutes = append(substitutes, Substitute{
			Ingredient:        sub,
			Ratio:             ratio,
			Reason:            reason,
			MatchingCompounds: MatchingCompounds(target.Compounds, sub.Compounds),
			ProfileSimilarity: ProfileSimilarity(target.FlavorProfile, sub.FlavorProfile),
		})
	}

	return Result{
		Outcome: OutcomeComposed,
		Blend: &SubstitutionBlend{
			TargetIngredient: target.Name,
			Substitutes:      substitutes,
			FlavorSimilarity: c.blendSimilarity(substitutes),
			ScientificBasis:  c.basis.Lookup(target.Name),
			PreparationNotes: c.prep.Lookup(target.Name),
		},
		Dropped: dropped,
	}
}

func (c *Composer) blendSimilarity(substitutes []Substitute) int {
	if c.mode != SimilarityComputed {
		return FixedFlavorSimilarity
	}
	if len(substitutes) == 0 {
		return 0
	}
	total := 0
	for _, s := range substitutes {
		total += s.ProfileSimilarity
	}
	return int(math.Round(float64(total) / float64(len(substitutes))))
}
