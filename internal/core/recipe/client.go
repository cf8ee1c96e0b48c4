package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sattvic-kitchen/internal/infrastructure/config"
	"sattvic-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const upstreamName = "recipedb"

// ErrBadRequest RecipeDB 回傳 400，不會重試
var ErrBadRequest = errors.New("recipedb: bad request")

// StatusError 非 2xx 回應
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipedb: %s returned HTTP %d", e.Endpoint, e.Status)
}

// Client RecipeDB REST 客戶端
type Client struct {
	client *resty.Client
}

// NewClient 創建 RecipeDB 客戶端
func NewClient(cfg *config.RecipeDBConfig) *Client {
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(wait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.IsError() && resp.StatusCode() != http.StatusBadRequest
		})

	// RecipeDB 同時接受兩種標頭
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", cfg.APIKey).
			SetHeader("x-api-key", cfg.APIKey)
	}

	return &Client{client: client}
}

// GetAllRecipes 分頁列出食譜
func (c *Client) GetAllRecipes(ctx context.Context, page, limit int) ([]FoodoscopeRecipe, error) {
	return c.list(ctx, "/recipe/all-recipes", map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	})
}

// GetRecipeByID 依 id 取得食譜；不存在時回傳 nil
func (c *Client) GetRecipeByID(ctx context.Context, id string) (*FoodoscopeRecipe, error) {
	recipes, err := c.list(ctx, "/recipe/recipe-by-id/"+url.PathEscape(id), nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// SearchByTitle 依標題搜尋
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]FoodoscopeRecipe, error) {
	return c.list(ctx, "/recipe/search-by-title", map[string]string{"title": title})
}

// GetVegetarianRecipes 素食食譜
func (c *Client) GetVegetarianRecipes(ctx context.Context) ([]FoodoscopeRecipe, error) {
	return c.list(ctx, "/recipe/vegetarian-recipes", nil)
}

// GetVeganRecipes 純素食譜
func (c *Client) GetVeganRecipes(ctx context.Context) ([]FoodoscopeRecipe, error) {
	return c.list(ctx, "/recipe/vegan-recipes", nil)
}

func (c *Client) list(ctx context.Context, endpoint string, params map[string]string) ([]FoodoscopeRecipe, error) {
	start := time.Now()
	recipes, err := c.do(ctx, endpoint, params)
	common.LogUpstreamCall(upstreamName, endpoint, time.Since(start), err)
	return recipes, err
}

func (c *Client) do(ctx context.Context, endpoint string, params map[string]string) ([]FoodoscopeRecipe, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to RecipeDB: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, endpoint)
	case resp.IsError():
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode()}
	}

	var out apiResponse
	if err := common.ParseJSONBytes(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to parse RecipeDB response: %w", err)
	}
	recipes, err := out.recipes()
	if err != nil {
		return nil, fmt.Errorf("failed to parse RecipeDB recipes: %w", err)
	}
	return recipes, nil
}
