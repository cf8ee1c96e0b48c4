package planner

import "strings"

// Freshness 新鮮度
type Freshness string

// EnergyType 能量屬性
type EnergyType string

const (
	FreshnessVeryFresh Freshness = "very_fresh"
	FreshnessFresh     Freshness = "fresh"
	FreshnessProcessed Freshness = "processed"

	EnergyCooling EnergyType = "cooling"
	EnergyWarming EnergyType = "warming"
	EnergyNeutral EnergyType = "neutral"
)

const (
	maxPranicScore   = 10
	minPranicScore   = 1
	processedPenalty = 2
)

var (
	processedKeywords = []string{"canned", "packaged", "frozen", "refined"}
	coolingKeywords   = []string{"cucumber", "mint", "fennel", "coconut", "coriander"}
	warmingKeywords   = []string{"ginger", "pepper", "cinnamon", "cumin"}
)

// PranicValue 生命能量評分
type PranicValue struct {
	Score       int        `json:"score"`
	Explanation string     `json:"explanation"`
	Freshness   Freshness  `json:"freshness"`
	EnergyType  EnergyType `json:"energyType"`
}

// PranicScore 依食材清單計算生命能量評分
func PranicScore(ingredients []string) PranicValue {
	score := maxPranicScore
	freshness := FreshnessVeryFresh
	hasCooling, hasWarming := false, false

	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		if containsAny(lower, processedKeywords) {
			score -= processedPenalty
			freshness = FreshnessProcessed
		}
		hasCooling = hasCooling || containsAny(lower, coolingKeywords)
		hasWarming = hasWarming || containsAny(lower, warmingKeywords)
	}

	energy := EnergyNeutral
	switch {
	case hasCooling && !hasWarming:
		energy = EnergyCooling
	case hasWarming && !hasCooling:
		energy = EnergyWarming
	}

	if score < minPranicScore {
		score = minPranicScore
	}

	return PranicValue{
		Score:       score,
		Explanation: explanation(energy),
		Freshness:   freshness,
		EnergyType:  energy,
	}
}

func explanation(energy EnergyType) string {
	const base = "High life-force energy from fresh, whole ingredients. "
	switch energy {
	case EnergyCooling:
		return base + "Cooling properties calm the mind."
	case EnergyWarming:
		return base + "Warming properties energize the body."
	}
	return base + "Balanced energy for overall wellness."
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
