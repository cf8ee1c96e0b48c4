package flavor

import "strings"

// MatchingCompounds 回傳候選化合物中，風味標籤與任一目標化合物相交者的名稱。
// 結果去重，順序依候選化合物的宣告順序。
func MatchingCompounds(target, candidate []FlavorCompound) []string {
	matches := make([]string, 0, len(candidate))
	if len(target) == 0 || len(candidate) == 0 {
		return matches
	}

	targetNotes := make(map[string]struct{})
	for _, tc := range target {
		for _, note := range tc.FlavorNotes {
			if n := normalizeNote(note); n != "" {
				targetNotes[n] = struct{}{}
			}
		}
	}
	if len(targetNotes) == 0 {
		return matches
	}

	seen := make(map[string]struct{}, len(candidate))
	for _, cc := range candidate {
		if _, dup := seen[cc.CompoundName]; dup {
			continue
		}
		if sharesNote(cc.FlavorNotes, targetNotes) {
			seen[cc.CompoundName] = struct{}{}
			matches = append(matches, cc.CompoundName)
		}
	}
	return matches
}

func sharesNote(notes []string, set map[string]struct{}) bool {
	for _, note := range notes {
		if _, ok := set[normalizeNote(note)]; ok {
			return true
		}
	}
	return false
}

func normalizeNote(note string) string {
	return strings.TrimSpace(note)
}
