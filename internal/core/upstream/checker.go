package upstream

import (
	"context"
	"fmt"
	"time"

	"sattvic-kitchen/internal/core/flavordb"
	"sattvic-kitchen/internal/core/recipe"
	"sattvic-kitchen/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State 外部服務狀態
type State string

const (
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// Status 單一外部服務的檢查結果
type Status struct {
	Status       State  `json:"status"`
	Message      string `json:"message"`
	ResponseTime int64  `json:"responseTime"` // 毫秒
}

// Report 所有外部服務的檢查結果
type Report struct {
	RecipeDB Status `json:"recipeDB"`
	FlavorDB Status `json:"flavorDB"`
}

// Check 單一檢查
type Check func(ctx context.Context) error

// Checker 外部服務健康檢查
type Checker struct {
	flavorDB Check
	recipeDB Check
}

// NewChecker 以自訂檢查建立
func NewChecker(flavorDB, recipeDB Check) *Checker {
	return &Checker{flavorDB: flavorDB, recipeDB: recipeDB}
}

// CompoundLister FlavorDB 化合物分頁查詢
type CompoundLister interface {
	GetAllCompounds(ctx context.Context, page, limit int) ([]flavordb.Compound, error)
}

// RecipeLister RecipeDB 食譜分頁查詢
type RecipeLister interface {
	GetAllRecipes(ctx context.Context, page, limit int) ([]recipe.FoodoscopeRecipe, error)
}

// FlavorDBCheck 查詢第一筆化合物
func FlavorDBCheck(client CompoundLister) Check {
	return func(ctx context.Context) error {
		_, err := client.GetAllCompounds(ctx, 1, 1)
		return err
	}
}

// RecipeDBCheck 查詢第一筆食譜
func RecipeDBCheck(client RecipeLister) Check {
	return func(ctx context.Context) error {
		_, err := client.GetAllRecipes(ctx, 1, 1)
		return err
	}
}

// CheckAll 並行檢查所有外部服務
func (c *Checker) CheckAll(ctx context.Context) Report {
	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.FlavorDB = check(gctx, "flavordb", c.flavorDB)
		return nil
	})
	g.Go(func() error {
		report.RecipeDB = check(gctx, "recipedb", c.recipeDB)
		return nil
	})
	_ = g.Wait()

	common.LogInfo("外部服務檢查完成",
		zap.String("flavordb", string(report.FlavorDB.Status)),
		zap.String("recipedb", string(report.RecipeDB.Status)),
	)
	return report
}

func check(ctx context.Context, name string, fn Check) Status {
	if fn == nil {
		return Status{Status: StateOffline, Message: "not configured"}
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	common.LogUpstreamCall(name, "health", elapsed, err)

	ms := elapsed.Milliseconds()
	if err != nil {
		return Status{Status: StateOffline, ResponseTime: ms, Message: err.Error()}
	}
	return Status{
		Status:       StateOnline,
		ResponseTime: ms,
		Message:      fmt.Sprintf("Connected successfully in %dms", ms),
	}
}
