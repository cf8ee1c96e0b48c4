package planner

import "strings"

// MoodBalanced 未知情緒時使用的預設值
const MoodBalanced = "balanced"

var moodSpices = map[string][]string{
	"anxious":    {"Fennel", "Cardamom", "Coriander", "Mint"},
	"lethargic":  {"Ginger", "Black Pepper", "Cinnamon", "Turmeric"},
	"stressed":   {"Ashwagandha", "Tulsi", "Brahmi", "Saffron"},
	MoodBalanced: {"Cumin", "Turmeric", "Coriander", "Cardamom"},
	"energetic":  {"Fennel", "Cumin", "Coriander", "Mint"},
}

// MoodSpices 回傳平衡情緒的香料
func MoodSpices(mood string) []string {
	spices, ok := moodSpices[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		spices = moodSpices[MoodBalanced]
	}
	out := make([]string, len(spices))
	copy(out, spices)
	return out
}

// Moods 支援的情緒
func Moods() []string {
	return []string{"anxious", "lethargic", "stressed", MoodBalanced, "energetic"}
}
