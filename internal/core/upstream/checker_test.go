package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sattvic-kitchen/internal/core/flavordb"
	"sattvic-kitchen/internal/core/recipe"
	"sattvic-kitchen/internal/infrastructure/config"
)

func TestChecker_CheckAll(t *testing.T) {
	c := NewChecker(
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return errors.New("connection refused") },
	)

	report := c.CheckAll(context.Background())
	assert.Equal(t, StateOnline, report.FlavorDB.Status)
	assert.Contains(t, report.FlavorDB.Message, "Connected successfully in")
	assert.Equal(t, StateOffline, report.RecipeDB.Status)
	assert.Equal(t, "connection refused", report.RecipeDB.Message)
}

func TestChecker_RunsInParallel(t *testing.T) {
	slow := func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}
	start := time.Now()
	report := NewChecker(slow, slow).CheckAll(context.Background())

	assert.Less(t, time.Since(start), 95*time.Millisecond)
	assert.GreaterOrEqual(t, report.FlavorDB.ResponseTime, int64(50))
	assert.GreaterOrEqual(t, report.RecipeDB.ResponseTime, int64(50))
}

func TestChecker_NilCheck(t *testing.T) {
	report := NewChecker(nil, nil).CheckAll(context.Background())
	assert.Equal(t, StateOffline, report.FlavorDB.Status)
	assert.Equal(t, "not configured", report.RecipeDB.Message)
}

func TestClientChecks(t *testing.T) {
	flavorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compounds", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer fkey", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer flavorSrv.Close()
	recipeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipe/all-recipes", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "rkey", r.Header.Get("x-api-key"))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer recipeSrv.Close()

	flavorClient := flavordb.NewClient(&config.FlavorDBConfig{BaseURL: flavorSrv.URL, APIKey: "fkey", Timeout: time.Second})
	recipeClient := recipe.NewClient(&config.RecipeDBConfig{BaseURL: recipeSrv.URL, APIKey: "rkey", Timeout: time.Second})
	report := NewChecker(FlavorDBCheck(flavorClient), RecipeDBCheck(recipeClient)).CheckAll(context.Background())

	assert.Equal(t, StateOnline, report.FlavorDB.Status)
	assert.Equal(t, StateOffline, report.RecipeDB.Status)
	assert.Contains(t, report.RecipeDB.Message, "HTTP 500")
}
