package flavor

import "strings"

// RatioRule 以替代食材名稱子字串決定用量比例與說明
type RatioRule struct {
	Match  string  `json:"match" mapstructure:"match"`
	Ratio  float64 `json:"ratio" mapstructure:"ratio"`
	Reason string  `json:"reason" mapstructure:"reason"`
}

// RatioRules 有序規則表，第一個命中的規則生效
type RatioRules struct {
	rules    []RatioRule
	fallback RatioRule
}

// DefaultRatioRule 沒有規則命中時的比例與說明
var DefaultRatioRule = RatioRule{
	Ratio:  0.3,
	Reason: "Complements base flavors",
}

// NewRatioRules 建立規則表；fallback 的比例不在 (0,1] 時改用 DefaultRatioRule
func NewRatioRules(fallback RatioRule, rules ...RatioRule) RatioRules {
	if fallback.Ratio <= 0 || fallback.Ratio > 1 {
		fallback = DefaultRatioRule
	}
	kept := make([]RatioRule, 0, len(rules))
	for _, r := range rules {
		if r.Match == "" || r.Ratio <= 0 || r.Ratio > 1 {
			continue
		}
		kept = append(kept, r)
	}
	return RatioRules{rules: kept, fallback: fallback}
}

// DefaultRatioRules 內建的替代比例規則
func DefaultRatioRules() RatioRules {
	return NewRatioRules(DefaultRatioRule,
		RatioRule{
			Match:  "Asafoetida",
			Ratio:  0.05, // 一小撮
			Reason: "Sulfur compounds (Asaresinotannol) mimic garlic's allicin pungency",
		},
		RatioRule{
			Match:  "Cumin",
			Ratio:  0.4,
			Reason: "Cuminaldehyde provides earthy umami base similar to cooked onions",
		},
		RatioRule{
			Match:  "Ginger",
			Ratio:  0.3,
			Reason: "Gingerol and shogaol add pungent heat without sulfur",
		},
		RatioRule{
			Match:  "Fenugreek",
			Ratio:  0.25,
			Reason: "Sotolone adds sweet caramelized onion notes",
		},
	)
}

// Lookup 依名稱回傳比例與說明，大小寫敏感
func (r RatioRules) Lookup(name string) (float64, string) {
	for _, rule := range r.rules {
		if strings.Contains(name, rule.Match) {
			return rule.Ratio, rule.Reason
		}
	}
	return r.fallback.Ratio, r.fallback.Reason
}

// Rules 回傳規則副本
func (r RatioRules) Rules() []RatioRule {
	out := make([]RatioRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// NoteTable 以目標食材名稱精確查找的說明文字
type NoteTable struct {
	entries  map[string]string
	fallback string
}

// NewNoteTable 建立說明表
func NewNoteTable(fallback string, entries map[string]string) NoteTable {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return NoteTable{entries: copied, fallback: fallback}
}

// Lookup 回傳對應說明，找不到時回傳通用說明
func (t NoteTable) Lookup(name string) string {
	if v, ok := t.entries[name]; ok {
		return v
	}
	return t.fallback
}

// DefaultScientificBasis 內建的科學依據說明
func DefaultScientificBasis() NoteTable {
	return NewNoteTable(
		"Molecular substitution targets similar flavor compound classes (terpenes, phenolics, sulfur compounds) to replicate the sensory experience.",
		map[string]string{
			"Garlic": "Allicin (C6H10OS2) in garlic creates sulfur-based pungency. Asafoetida contains asaresinotannols which release sulfur compounds when heated, mimicking garlic's flavor profile at the molecular level. Cumin's cuminaldehyde provides the Maillard-reaction umami that cooked garlic contributes.",
			"Onion":  "Propylthiosulfinic acid creates onion's characteristic tear-inducing pungency. The blend uses Asafoetida for sulfur notes, fenugreek's sotolone for caramelized sweetness (similar to cooked onion's reducing sugars), and cumin for earthy base notes.",
		},
	)
}

// DefaultPreparationNotes 內建的烹調說明
func DefaultPreparationNotes() NoteTable {
	return NewNoteTable(
		"Add substitutes in order of oil-solubility: terpenes first, then phenolics, then sulfur compounds.",
		map[string]string{
			"Garlic": "Heat asafoetida in oil first to release sulfur compounds (2-3 seconds only, burns easily). Add cumin early in cooking for Maillard reaction depth. Ginger works best when added mid-cooking to preserve pungency.",
			"Onion":  "Toast fenugreek leaves lightly before adding. Bloom asafoetida in hot oil/ghee. Cumin should be whole seeds toasted until fragrant, then ground.",
		},
	)
}

// Extend 回傳新的規則表，extra 優先於既有規則
func (r RatioRules) Extend(extra ...RatioRule) RatioRules {
	merged := make([]RatioRule, 0, len(extra)+len(r.rules))
	merged = append(merged, extra...)
	merged = append(merged, r.rules...)
	return NewRatioRules(r.fallback, merged...)
}
