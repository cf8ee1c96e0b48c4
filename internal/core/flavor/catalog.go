package flavor

import "strings"

// Provider 提供食材資料快照。實作必須回傳呼叫當下一致的清單，核心不會修改它。
type Provider interface {
	Ingredients() []Ingredient
}

// StaticProvider 固定清單的 Provider
type StaticProvider []Ingredient

// Ingredients 實現 Provider 介面
func (p StaticProvider) Ingredients() []Ingredient {
	return p
}

// Catalog 單一快照上的唯讀查詢
type Catalog struct {
	items []Ingredient
}

// NewCatalog 以快照建立查詢
func NewCatalog(items []Ingredient) *Catalog {
	return &Catalog{items: items}
}

// Snapshot 從 Provider 取得快照並建立查詢
func Snapshot(p Provider) *Catalog {
	if p == nil {
		return NewCatalog(nil)
	}
	return NewCatalog(p.Ingredients())
}

// Len 食材數量（含重複）
func (c *Catalog) Len() int {
	return len(c.items)
}

// All 回傳所有食材
func (c *Catalog) All() []Ingredient {
	out := make([]Ingredient, len(c.items))
	copy(out, c.items)
	return out
}

// FindByID 回傳第一個相符的食材。清單可能是多個來源的聯集，不保證唯一。
func (c *Catalog) FindByID(id string) (Ingredient, bool) {
	for _, ing := range c.items {
		if ing.ID == id {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// FindForbidden 所有 forbidden 食材
func (c *Catalog) FindForbidden() []Ingredient {
	return c.filterStatus(StatusForbidden)
}

// FindAllowed 所有 allowed 食材
func (c *Catalog) FindAllowed() []Ingredient {
	return c.filterStatus(StatusAllowed)
}

func (c *Catalog) filterStatus(status SattvicStatus) []Ingredient {
	out := make([]Ingredient, 0)
	for _, ing := range c.items {
		if ing.SattvicStatus == status {
			out = append(out, ing)
		}
	}
	return out
}

// Search 不分大小寫比對食材名稱或任一化合物名稱；空查詢回傳全部食材
func (c *Catalog) Search(query string) []Ingredient {
	out := make([]Ingredient, 0, len(c.items))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, ing := range c.items {
		if matchesQuery(ing, q) {
			out = append(out, ing)
		}
	}
	return out
}

func matchesQuery(ing Ingredient, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(ing.Name), lowerQuery) {
		return true
	}
	for _, comp := range ing.Compounds {
		if strings.Contains(strings.ToLower(comp.CompoundName), lowerQuery) {
			return true
		}
	}
	return false
}
