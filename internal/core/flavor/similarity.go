package flavor

// similarityPenalty 每一單位差距扣除的分數
const similarityPenalty = 5

// ProfileDiff 計算 pungency、umami、sweetness 三項的絕對差總和。
// bitterness 與 astringency 不參與比較。
func ProfileDiff(target, candidate FlavorProfile) int {
	t := target.Clamp()
	c := candidate.Clamp()
	return abs(t.Pungency-c.Pungency) +
		abs(t.Umami-c.Umami) +
		abs(t.Sweetness-c.Sweetness)
}

// ProfileSimilarity 將差距轉為 0 到 100 的相似度
func ProfileSimilarity(target, candidate FlavorProfile) int {
	score := 100 - ProfileDiff(target, candidate)*similarityPenalty
	if score < 0 {
		return 0
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
