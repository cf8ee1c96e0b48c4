package recipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sattvic-kitchen/internal/core/cache"
	"sattvic-kitchen/internal/infrastructure/config"
)

type fakeSource struct {
	all        []FoodoscopeRecipe
	byID       map[string]FoodoscopeRecipe
	search     []FoodoscopeRecipe
	vegetarian []FoodoscopeRecipe
	vegan      []FoodoscopeRecipe
	err        error

	calls map[string]int
}

func (f *fakeSource) hit(name string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeSource) GetAllRecipes(ctx context.Context, page, limit int) ([]FoodoscopeRecipe, error) {
	f.hit("all")
	return f.all, f.err
}

func (f *fakeSource) GetRecipeByID(ctx context.Context, id string) (*FoodoscopeRecipe, error) {
	f.hit("id")
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byID[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeSource) SearchByTitle(ctx context.Context, title string) ([]FoodoscopeRecipe, error) {
	f.hit("search")
	return f.search, f.err
}

func (f *fakeSource) GetVegetarianRecipes(ctx context.Context) ([]FoodoscopeRecipe, error) {
	f.hit("vegetarian")
	return f.vegetarian, f.err
}

func (f *fakeSource) GetVeganRecipes(ctx context.Context) ([]FoodoscopeRecipe, error) {
	f.hit("vegan")
	return f.vegan, f.err
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	fallback, err := DefaultRecipes()
	require.NoError(t, err)
	return NewService(newTestAuditor(t), fallback, opts...)
}

func ids(recipes []Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

var allFixtureIDs = []string{
	"mock_jeera_rice", "mock_dal_tadka", "mock_vegetable_khichdi", "mock_chicken_curry", "mock_paneer_tikka",
}

func TestService_AllWithoutSourceUsesFallback(t *testing.T) {
	s := newTestService(t)
	assert.Equal(t, allFixtureIDs, ids(s.All(context.Background())))
}

func TestService_AllFallsBackOnErrorOrEmpty(t *testing.T) {
	failing := &fakeSource{err: errors.New("connection refused")}
	assert.Equal(t, allFixtureIDs, ids(newTestService(t, WithSource(failing)).All(context.Background())))

	empty := &fakeSource{}
	assert.Equal(t, allFixtureIDs, ids(newTestService(t, WithSource(empty)).All(context.Background())))
}

func TestService_AllUsesCache(t *testing.T) {
	store := cache.NewManager(&config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	defer store.Close()
	src := &fakeSource{all: []FoodoscopeRecipe{{RecipeID: "2610", Title: "Upma", Carbohydrate: "41.5"}}}
	s := newTestService(t, WithSource(src), WithCache(store), WithPageSize(20))

	first := s.All(context.Background())
	second := s.All(context.Background())

	assert.Equal(t, []string{"2610"}, ids(first))
	assert.Equal(t, first, second)
	assert.Equal(t, 41.5, second[0].Nutrition.Carbs)
	assert.Equal(t, 1, src.calls["all"])
}

func TestService_GetRemoteThenFallback(t *testing.T) {
	src := &fakeSource{byID: map[string]FoodoscopeRecipe{"2610": {RecipeID: "2610", Title: "Upma"}}}
	s := newTestService(t, WithSource(src))
	ctx := context.Background()

	got := s.Get(ctx, "2610")
	require.NotNil(t, got)
	assert.Equal(t, "Upma", got.Name)

	fb := s.Get(ctx, "mock_dal_tadka")
	require.NotNil(t, fb)
	assert.Equal(t, "Dal Tadka", fb.Name)

	assert.Nil(t, s.Get(ctx, "nope"))
}

func TestService_GetFallsBackWhenSourceFails(t *testing.T) {
	s := newTestService(t, WithSource(&fakeSource{err: errors.New("timeout")}))
	got := s.Get(context.Background(), "mock_jeera_rice")
	require.NotNil(t, got)
	assert.Equal(t, StatusPure, got.SattvicStatus)
}

func TestService_SearchEmptyQueryReturnsAll(t *testing.T) {
	src := &fakeSource{}
	s := newTestService(t, WithSource(src))

	assert.Equal(t, allFixtureIDs, ids(s.Search(context.Background(), "  ")))
	assert.Zero(t, src.calls["search"])
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, []string{"mock_dal_tadka"}, ids(newTestService(t).Search(ctx, "DAL")))

	src := &fakeSource{search: []FoodoscopeRecipe{{RecipeID: "9", Title: "Masala Dosa"}}}
	assert.Equal(t, []string{"9"}, ids(newTestService(t, WithSource(src)).Search(ctx, "dosa")))

	failing := newTestService(t, WithSource(&fakeSource{err: errors.New("down")}))
	got := failing.Search(ctx, "dosa")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_ByTag(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	assert.Equal(t, []string{"mock_jeera_rice", "mock_dal_tadka", "mock_vegetable_khichdi"}, ids(s.ByTag(ctx, "vegetarian")))
	assert.Equal(t, []string{"mock_vegetable_khichdi"}, ids(s.ByTag(ctx, " Vegan ")))
	assert.Equal(t, allFixtureIDs, ids(s.ByTag(ctx, "dessert")))

	src := &fakeSource{vegan: []FoodoscopeRecipe{{RecipeID: "v1", Vegan: "1.0"}}}
	remote := newTestService(t, WithSource(src))
	assert.Equal(t, []string{"v1"}, ids(remote.ByTag(ctx, "vegan")))
	assert.Equal(t, 1, src.calls["vegan"])
	assert.Zero(t, src.calls["vegetarian"])
}

func TestService_Sattvic(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, []string{"mock_jeera_rice", "mock_vegetable_khichdi"}, ids(newTestService(t).Sattvic(ctx)))

	src := &fakeSource{vegetarian: []FoodoscopeRecipe{
		{RecipeID: "a", LactoVegetarian: "1.0", Ingredients: []FoodoscopeIngredient{{Ingredient: "rice"}}},
		{RecipeID: "b", LactoVegetarian: "1.0", Ingredients: []FoodoscopeIngredient{{Ingredient: "garlic"}}},
	}}
	assert.Equal(t, []string{"a"}, ids(newTestService(t, WithSource(src)).Sattvic(ctx)))

	failing := newTestService(t, WithSource(&fakeSource{err: errors.New("down")}))
	assert.Empty(t, failing.Sattvic(ctx))
}

func TestService_Status(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	report := s.Status(ctx, "mock_dal_tadka")
	require.NotNil(t, report)
	assert.Equal(t, StatusModified, report.Status)
	assert.Equal(t, []string{"onion", "garlic"}, report.ForbiddenIngredients)
	assert.Equal(t, []string{
		"onion → " + SubstitutionGuideNote,
		"garlic → " + SubstitutionGuideNote,
	}, report.SuggestedSubstitutes)

	pure := s.Status(ctx, "mock_jeera_rice")
	require.NotNil(t, pure)
	assert.Equal(t, StatusPure, pure.Status)
	assert.Empty(t, pure.ForbiddenIngredients)
	assert.NotNil(t, pure.SuggestedSubstitutes)

	assert.Nil(t, s.Status(ctx, "nope"))
}

func TestService_OfTheDayIsStablePerDay(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	s.now = func() time.Time { return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC) }
	morning := s.OfTheDay(ctx)
	s.now = func() time.Time { return time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC) }
	evening := s.OfTheDay(ctx)
	require.NotNil(t, morning)
	require.NotNil(t, evening)
	assert.Equal(t, "mock_dal_tadka", morning.ID)
	assert.Equal(t, morning.ID, evening.ID)

	s.now = func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) }
	assert.Equal(t, "mock_jeera_rice", s.OfTheDay(ctx).ID)
}

func TestService_OfTheDayEmpty(t *testing.T) {
	s := NewService(newTestAuditor(t), nil)
	assert.Nil(t, s.OfTheDay(context.Background()))
}
