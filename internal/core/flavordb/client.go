package flavordb

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

const upstreamName = "flavordb"

// ErrBadRequest FlavorDB 回傳 400，不會重試
var ErrBadRequest = errors.New("flavordb: bad request")

// StatusError 非 2xx 回應
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("flavordb: %s returned HTTP %d", e.Endpoint, e.Status)
}

// Client FlavorDB REST 客戶端
type Client struct {
	client *resty.Client
}

// NewClient 創建 FlavorDB 客戶端
func NewClient(cfg *config.FlavorDBConfig) *Client {
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
		AddRetryCondition(shouldRetry)

	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &Client{client: client}
}

// shouldRetry 傳輸錯誤與非 2xx 會重試，400 除外
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.IsError() && resp.StatusCode() != http.StatusBadRequest
}

// GetByCommonName 依俗名查詢化合物
func (c *Client) GetByCommonName(ctx context.Context, name string) ([]Compound, error) {
	var out []Compound
	err := c.get(ctx, "/properties/by-commonName", map[string]string{"name": name}, &out)
	return out, err
}

// GetCompoundByID 依 id 查詢單一化合物；不存在時回傳 nil
func (c *Client) GetCompoundByID(ctx context.Context, id ID) (*Compound, error) {
	var out *Compound
	err := c.get(ctx, "/compounds/"+url.PathEscape(string(id)), nil, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// GetAllCompounds 分頁列出化合物，健康檢查使用
func (c *Client) GetAllCompounds(ctx context.Context, page, limit int) ([]Compound, error) {
	var out []Compound
	err := c.get(ctx, "/compounds", map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, v interface{}) error {
	start := time.Now()
	err := c.do(ctx, endpoint, params, v)
	common.LogUpstreamCall(upstreamName, endpoint, time.Since(start), err)
	return err
}

func (c *Client) do(ctx context.Context, endpoint string, params map[string]string, v interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return fmt.Errorf("failed to send request to FlavorDB: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, endpoint)
	case resp.IsError():
		return &StatusError{Endpoint: endpoint, Status: resp.StatusCode()}
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil
	}
	if err := common.ParseJSONBytes(body, v); err != nil {
		return fmt.Errorf("failed to parse FlavorDB response: %w", err)
	}
	return nil
}
