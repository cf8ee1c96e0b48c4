package api

import (
	"fmt"

	"sattvic-kitchen/internal/api/handlers/health"
	"sattvic-kitchen/internal/core/cache"
	"sattvic-kitchen/internal/core/catalog"
	"sattvic-kitchen/internal/core/flavor"
	"sattvic-kitchen/internal/core/flavordb"
	"sattvic-kitchen/internal/core/recipe"
	"sattvic-kitchen/internal/core/upstream"
	"sattvic-kitchen/internal/infrastructure/config"
	"sattvic-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// Services 路由使用的服務
type Services struct {
	Catalog    *catalog.Service
	Composer   *flavor.Composer
	Auditor    *recipe.Auditor
	Recipes    *recipe.Service
	Upstream   *upstream.Checker
	CacheStats health.StatsProvider
}

// NewServices 依設定組裝服務，store 可為 nil
func NewServices(cfg *config.Config, store cache.Store) (*Services, error) {
	local, err := loadIngredients(cfg.Catalog.FixturePath)
	if err != nil {
		return nil, err
	}

	mode, err := flavor.ParseSimilarityMode(cfg.Catalog.SimilarityMode)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithCache(store),
		catalog.WithMaxRemoteResults(cfg.FlavorDB.MaxRemoteResults),
		catalog.WithMaxRemembered(cfg.FlavorDB.MaxRemembered),
	}
	flavorClient := flavordb.NewClient(&cfg.FlavorDB)
	if cfg.FlavorDB.Enabled {
		opts = append(opts, catalog.WithRemote(flavorClient))
	}
	catalogSvc := catalog.NewService(local, opts...)

	composer := flavor.NewComposer(catalogSvc,
		flavor.WithRatioRules(ratioRules(cfg.Catalog.RatioRules)),
		flavor.WithSimilarityMode(mode),
	)

	fallback, err := recipe.DefaultRecipes()
	if err != nil {
		return nil, err
	}
	auditor := recipe.NewAuditor(catalogSvc, composer)
	recipeClient := recipe.NewClient(&cfg.RecipeDB)
	recipeOpts := []recipe.ServiceOption{
		recipe.WithCache(store),
		recipe.WithPageSize(cfg.RecipeDB.PageSize),
	}
	if cfg.RecipeDB.Enabled {
		recipeOpts = append(recipeOpts, recipe.WithSource(recipeClient))
	}

	svc := &Services{
		Catalog:  catalogSvc,
		Composer: composer,
		Auditor:  auditor,
		Recipes:  recipe.NewService(auditor, fallback, recipeOpts...),
		Upstream: upstream.NewChecker(
			upstream.FlavorDBCheck(flavorClient),
			upstream.RecipeDBCheck(recipeClient),
		),
	}
	if stats, ok := store.(health.StatsProvider); ok {
		svc.CacheStats = stats
	}

	common.LogInfo("Services initialized",
		zap.Int("ingredients", len(local)),
		zap.Bool("flavordb_enabled", cfg.FlavorDB.Enabled),
		zap.Bool("recipedb_enabled", cfg.RecipeDB.Enabled),
		zap.Int("fallback_recipes", len(fallback)),
		zap.String("similarity_mode", string(mode)),
		zap.Int("extra_ratio_rules", len(cfg.Catalog.RatioRules)),
	)
	return svc, nil
}

func loadIngredients(path string) ([]flavor.Ingredient, error) {
	if path == "" {
		items, err := flavor.DefaultIngredients()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in ingredients: %w", err)
		}
		return items, nil
	}
	items, err := flavor.LoadFixtureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients from %s: %w", path, err)
	}
	return items, nil
}

func ratioRules(specs []config.RatioRuleSpec) flavor.RatioRules {
	rules := flavor.DefaultRatioRules()
	if len(specs) == 0 {
		return rules
	}
	extra := make([]flavor.RatioRule, 0, len(specs))
	for _, s := range specs {
		extra = append(extra, flavor.RatioRule{Match: s.Match, Ratio: s.Ratio, Reason: s.Reason})
	}
	return rules.Extend(extra...)
}
