package recipe

import (
	"strings"

	"sattvic-kitchen/internal/core/flavor"
)

// Status 食譜的悅性狀態
type Status string

const (
	// StatusPure 沒有禁用食材
	StatusPure Status = "pure"
	// StatusModified 含禁用食材，需要替代
	StatusModified Status = "modified"
)

// SubstitutionGuideNote 沒有可用配方時的提示
const SubstitutionGuideNote = "See Sattvic substitution guide"

// DefaultForbiddenKeywords 食材名稱中代表禁用食材的關鍵字，依序比對
var DefaultForbiddenKeywords = []string{
	"onion", "garlic", "shallot", "leek", "chive",
	"meat", "chicken", "beef", "pork", "fish", "egg",
}

// AuditItem 單一食材的檢查結果
type AuditItem struct {
	Item        string                    `json:"item"`
	IsForbidden bool                      `json:"isForbidden"`
	Keyword     string                    `json:"keyword,omitempty"`
	Substitute  string                    `json:"substitute,omitempty"`
	Blend       *flavor.SubstitutionBlend `json:"blend,omitempty"`
}

// AuditReport 食譜檢查結果
type AuditReport struct {
	SattvicStatus  Status      `json:"sattvicStatus"`
	ForbiddenCount int         `json:"forbiddenCount"`
	Items          []AuditItem `json:"items"`
}

// Auditor 食譜檢查器
type Auditor struct {
	provider flavor.Provider
	composer *flavor.Composer
	keywords []string
}

// NewAuditor 創建檢查器，keywords 為空時使用預設清單
func NewAuditor(provider flavor.Provider, composer *flavor.Composer, keywords ...string) *Auditor {
	if len(keywords) == 0 {
		keywords = DefaultForbiddenKeywords
	}
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			normalized = append(normalized, kw)
		}
	}
	return &Auditor{
		provider: provider,
		composer: composer,
		keywords: normalized,
	}
}

// Audit 逐項標記禁用食材，能對應到目錄中的禁用食材時附上替代配方
func (a *Auditor) Audit(items []string) AuditReport {
	catalog := flavor.Snapshot(a.provider)
	forbiddenByName := make(map[string]string)
	for _, ing := range catalog.FindForbidden() {
		name := strings.ToLower(ing.Name)
		if _, ok := forbiddenByName[name]; !ok {
			forbiddenByName[name] = ing.ID
		}
	}

	report := AuditReport{
		SattvicStatus: StatusPure,
		Items:         make([]AuditItem, 0, len(items)),
	}
	for _, item := range items {
		entry := AuditItem{Item: item}
		if kw, ok := a.match(item); ok {
			entry.IsForbidden = true
			entry.Keyword = kw
			entry.Substitute = SubstitutionGuideNote
			if id, known := forbiddenByName[kw]; known && a.composer != nil {
				if res := a.composer.ResolveIn(catalog, id); res.Outcome == flavor.OutcomeComposed {
					entry.Blend = res.Blend
				}
			}
			report.ForbiddenCount++
		}
		report.Items = append(report.Items, entry)
	}

	if report.ForbiddenCount > 0 {
		report.SattvicStatus = StatusModified
	}
	return report
}

// AuditRecipe 檢查整份食譜：含禁用食材或非素食的食譜皆為 modified
func (a *Auditor) AuditRecipe(items []string, vegetarian bool) AuditReport {
	report := a.Audit(items)
	if !vegetarian {
		report.SattvicStatus = StatusModified
	}
	return report
}

// match 回傳第一個出現在食材名稱中的關鍵字
func (a *Auditor) match(item string) (string, bool) {
	lower := strings.ToLower(item)
	for _, kw := range a.keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
