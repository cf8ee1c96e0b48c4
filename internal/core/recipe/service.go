package recipe

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"sattvic-kitchen/internal/core/cache"
	"sattvic-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

//go:embed fixtures/recipes.json
var defaultRecipesJSON []byte

// 快取命名空間
const (
	nsAll    = "recipedb:all"
	nsRecipe = "recipedb:recipe"
)

const (
	// DefaultPageSize 列出全部食譜時向 RecipeDB 要求的數量
	DefaultPageSize = 100
	// recipeOfTheDayPool 每日推薦只從前幾筆中挑選
	recipeOfTheDayPool = 20
)

// 標籤
const (
	TagVegetarian = "vegetarian"
	TagVegan      = "vegan"
)

// Source 食譜來源
type Source interface {
	GetAllRecipes(ctx context.Context, page, limit int) ([]FoodoscopeRecipe, error)
	GetRecipeByID(ctx context.Context, id string) (*FoodoscopeRecipe, error)
	SearchByTitle(ctx context.Context, title string) ([]FoodoscopeRecipe, error)
	GetVegetarianRecipes(ctx context.Context) ([]FoodoscopeRecipe, error)
	GetVeganRecipes(ctx context.Context) ([]FoodoscopeRecipe, error)
}

// DefaultRecipes 內建的備用食譜
func DefaultRecipes() ([]FoodoscopeRecipe, error) {
	var recipes []FoodoscopeRecipe
	if err := common.ParseJSONBytes(defaultRecipesJSON, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse built-in recipes: %w", err)
	}
	return recipes, nil
}

// Service 食譜服務：RecipeDB 為主，失敗時改用備用食譜
type Service struct {
	auditor  *Auditor
	source   Source
	fallback []FoodoscopeRecipe
	store    cache.Store
	pageSize int
	now      func() time.Time
}

// ServiceOption 服務選項
type ServiceOption func(*Service)

// WithSource 設定 RecipeDB 來源；nil 表示只使用備用食譜
func WithSource(source Source) ServiceOption {
	return func(s *Service) {
		s.source = source
	}
}

// WithCache 設定 RecipeDB 結果的快取
func WithCache(store cache.Store) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithPageSize 設定列出全部食譜時的數量
func WithPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewService 創建食譜服務
func NewService(auditor *Auditor, fallback []FoodoscopeRecipe, opts ...ServiceOption) *Service {
	s := &Service{
		auditor:  auditor,
		fallback: fallback,
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All 列出全部食譜；RecipeDB 失敗或沒有資料時回傳備用食譜
func (s *Service) All(ctx context.Context) []Recipe {
	if s.source == nil {
		return s.convertAll(s.fallback)
	}

	key := fmt.Sprintf("page=1&limit=%d", s.pageSize)
	var raw []FoodoscopeRecipe
	if !cache.GetJSON(ctx, s.store, nsAll, key, &raw) {
		var err error
		raw, err = s.source.GetAllRecipes(ctx, 1, s.pageSize)
		if err != nil {
			common.LogWarn("RecipeDB unavailable, using built-in recipes", zap.Error(err))
			return s.convertAll(s.fallback)
		}
		if len(raw) > 0 {
			cache.SetJSON(ctx, s.store, nsAll, key, raw)
		}
	}

	if len(raw) == 0 {
		common.LogInfo("RecipeDB returned no recipes, using built-in recipes")
		return s.convertAll(s.fallback)
	}
	return s.convertAll(raw)
}

// Get 依 id 取得食譜；RecipeDB 找不到時查詢備用食譜
func (s *Service) Get(ctx context.Context, id string) *Recipe {
	if s.source != nil {
		var found FoodoscopeRecipe
		if cache.GetJSON(ctx, s.store, nsRecipe, id, &found) {
			r := s.convert(found)
			return &r
		}

		remote, err := s.source.GetRecipeByID(ctx, id)
		if err != nil {
			common.LogWarn("RecipeDB lookup failed", zap.String("id", id), zap.Error(err))
		}
		if remote != nil {
			cache.SetJSON(ctx, s.store, nsRecipe, id, remote)
			r := s.convert(*remote)
			return &r
		}
	}

	for _, fb := range s.fallback {
		if string(fb.RecipeID) == id {
			r := s.convert(fb)
			return &r
		}
	}
	return nil
}

// Search 依標題搜尋；空查詢等同列出全部，RecipeDB 失敗時回傳空結果
func (s *Service) Search(ctx context.Context, query string) []Recipe {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.All(ctx)
	}

	if s.source == nil {
		lower := strings.ToLower(query)
		return s.filterFallback(func(r FoodoscopeRecipe) bool {
			return strings.Contains(strings.ToLower(string(r.Title)), lower)
		})
	}

	raw, err := s.source.SearchByTitle(ctx, query)
	if err != nil {
		common.LogDebug("RecipeDB search failed", zap.String("query", query), zap.Error(err))
		return []Recipe{}
	}
	return s.convertAll(raw)
}

// ByTag 依標籤列出；vegetarian 與 vegan 查詢 RecipeDB，其他標籤回傳全部食譜
func (s *Service) ByTag(ctx context.Context, tag string) []Recipe {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag != TagVegetarian && tag != TagVegan {
		return s.All(ctx)
	}

	if s.source == nil {
		return filterRecipes(s.convertAll(s.fallback), func(r Recipe) bool {
			return hasTag(r, tag)
		})
	}

	var (
		raw []FoodoscopeRecipe
		err error
	)
	if tag == TagVegan {
		raw, err = s.source.GetVeganRecipes(ctx)
	} else {
		raw, err = s.source.GetVegetarianRecipes(ctx)
	}
	if err != nil {
		common.LogWarn("RecipeDB tag lookup failed", zap.String("tag", tag), zap.Error(err))
		return []Recipe{}
	}
	return s.convertAll(raw)
}

// Sattvic 只列出狀態為 pure 的素食食譜
func (s *Service) Sattvic(ctx context.Context) []Recipe {
	var recipes []Recipe
	if s.source == nil {
		recipes = s.convertAll(s.fallback)
	} else {
		raw, err := s.source.GetVegetarianRecipes(ctx)
		if err != nil {
			common.LogWarn("RecipeDB vegetarian lookup failed", zap.Error(err))
			return []Recipe{}
		}
		recipes = s.convertAll(raw)
	}
	return filterRecipes(recipes, func(r Recipe) bool {
		return r.SattvicStatus == StatusPure
	})
}

// Status 食譜的悅性檢查摘要；找不到食譜時回傳 nil
func (s *Service) Status(ctx context.Context, id string) *StatusReport {
	r := s.Get(ctx, id)
	if r == nil {
		return nil
	}

	report := &StatusReport{
		Status:               r.SattvicStatus,
		ForbiddenIngredients: make([]string, 0),
		SuggestedSubstitutes: make([]string, 0),
	}
	for _, item := range r.Ingredients {
		if !item.IsForbidden {
			continue
		}
		report.ForbiddenIngredients = append(report.ForbiddenIngredients, item.Item)
		if item.Substitute != "" {
			report.SuggestedSubstitutes = append(report.SuggestedSubstitutes, item.Item+" → "+item.Substitute)
		}
	}
	return report
}

// OfTheDay 每日推薦：依日期從前 20 筆中挑選，同一天結果相同
func (s *Service) OfTheDay(ctx context.Context) *Recipe {
	recipes := s.All(ctx)
	if len(recipes) == 0 {
		return nil
	}
	pool := len(recipes)
	if pool > recipeOfTheDayPool {
		pool = recipeOfTheDayPool
	}
	r := recipes[s.now().YearDay()%pool]
	return &r
}

func (s *Service) convert(src FoodoscopeRecipe) Recipe {
	return s.auditor.Convert(src, fmt.Sprintf("api_%d", s.now().UnixMilli()))
}

func (s *Service) convertAll(src []FoodoscopeRecipe) []Recipe {
	out := make([]Recipe, 0, len(src))
	for _, r := range src {
		out = append(out, s.convert(r))
	}
	return out
}

func (s *Service) filterFallback(keep func(FoodoscopeRecipe) bool) []Recipe {
	out := make([]Recipe, 0)
	for _, r := range s.fallback {
		if keep(r) {
			out = append(out, s.convert(r))
		}
	}
	return out
}

func filterRecipes(recipes []Recipe, keep func(Recipe) bool) []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func hasTag(r Recipe, tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
