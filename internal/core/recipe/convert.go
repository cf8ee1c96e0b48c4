package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	defaultCuisine     = "International"
	defaultTitle       = "Untitled Recipe"
	defaultTotalTime   = 45
	defaultServings    = 4
	defaultInstruction = "Follow the recipe instructions from the source."
	processSeparator   = "||"
)

// Convert 將 RecipeDB 食譜轉換為 Recipe，並依檢查結果標記悅性狀態；
// fallbackID 用於來源沒有任何 id 的食譜
func (a *Auditor) Convert(src FoodoscopeRecipe, fallbackID string) Recipe {
	names := make([]string, 0, len(src.Ingredients))
	for _, ing := range src.Ingredients {
		names = append(names, string(ing.Ingredient))
	}

	vegan := isFlag(src.Vegan, "1.0", "1")
	vegetarian := isFlag(src.OvoLactoVegetarian, "1.0") || isFlag(src.LactoVegetarian, "1.0")
	report := a.AuditRecipe(names, vegan || vegetarian)

	items := make([]RecipeItem, 0, len(report.Items))
	for i, audited := range report.Items {
		items = append(items, RecipeItem{
			Item:        audited.Item,
			Quantity:    quantity(src.Ingredients[i]),
			IsForbidden: audited.IsForbidden,
			Substitute:  audited.Substitute,
			Blend:       audited.Blend,
		})
	}
	hasForbidden := report.ForbiddenCount > 0

	cuisine := firstNonEmpty(string(src.Region), string(src.SubRegion), string(src.Continent), defaultCuisine)
	category := "Main Course"
	switch {
	case vegan:
		category = "Vegan"
	case vegetarian:
		category = "Vegetarian"
	}

	total := parseNumber(src.TotalTime, defaultTotalTime)
	prep := parseNumber(src.PrepTime, math.Floor(total*0.3))
	cook := parseNumber(src.CookTime, total-prep)

	return Recipe{
		ID:           firstNonEmpty(string(src.RecipeID), string(src.MongoID), fallbackID),
		Name:         firstNonEmpty(string(src.Title), defaultTitle),
		Description:  description(cuisine, vegan, vegetarian, hasForbidden),
		Cuisine:      cuisine,
		Category:     category,
		PrepTime:     int(math.Round(prep)),
		CookTime:     int(math.Round(cook)),
		Servings:     int(math.Round(parseNumber(src.Servings, defaultServings))),
		Ingredients:  items,
		Instructions: instructions(string(src.Processes)),
		Nutrition: Nutrition{
			Calories: parseNumber(Text(firstNonEmpty(string(src.EnergyKcal), string(src.Calories))), 0),
			Protein:  parseNumber(src.Protein, 0),
			Carbs:    parseNumber(src.Carbohydrate, 0),
			Fat:      parseNumber(src.Fat, 0),
		},
		SattvicStatus: report.SattvicStatus,
		Tags:          tags(cuisine, category, vegan, vegetarian, hasForbidden),
	}
}

func description(cuisine string, vegan, vegetarian, hasForbidden bool) string {
	diet := ""
	switch {
	case vegan:
		diet = "Vegan-friendly."
	case vegetarian:
		diet = "Vegetarian-friendly."
	}
	status := "Sattvic-compliant."
	if hasForbidden {
		status = "Contains ingredients that need Sattvic substitution."
	}
	return fmt.Sprintf("Delicious %s recipe. %s %s", cuisine, diet, status)
}

func instructions(processes string) []string {
	var steps []string
	for _, p := range strings.Split(processes, processSeparator) {
		if p == "" {
			continue
		}
		steps = append(steps, fmt.Sprintf("Step %d: %s the ingredients as needed.", len(steps)+1, capitalize(p)))
	}
	if len(steps) == 0 {
		return []string{defaultInstruction}
	}
	return steps
}

func tags(cuisine, category string, vegan, vegetarian, hasForbidden bool) []string {
	out := []string{
		strings.Join(strings.Fields(strings.ToLower(cuisine)), "-"),
		strings.ToLower(category),
	}
	if vegan {
		out = append(out, "vegan")
	}
	if vegetarian {
		out = append(out, "vegetarian")
	}
	if !hasForbidden {
		out = append(out, "sattvic")
	}
	return out
}

func quantity(ing FoodoscopeIngredient) string {
	if ing.Phrase != "" {
		return string(ing.Phrase)
	}
	return strings.TrimSpace(string(ing.Quantity) + " " + string(ing.Unit))
}

// parseNumber 解析數值，容許 "30 mins" 這類帶單位的字串
func parseNumber(v Text, def float64) float64 {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return def
	}
	if fields := strings.Fields(s); len(fields) > 1 {
		s = fields[0]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func isFlag(v Text, values ...string) bool {
	for _, want := range values {
		if string(v) == want {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
