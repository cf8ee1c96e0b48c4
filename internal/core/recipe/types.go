package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"

	"sattvic-kitchen/internal/core/flavor"
)

// Text RecipeDB 欄位值，接受字串、數字或布林
type Text string

// UnmarshalJSON 實現 json.Unmarshaler
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")):
		*t = Text(data)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("recipedb: invalid value %s", data)
	}
	*t = Text(n.String())
	return nil
}

// carbohydrateKey 欄位名含逗號，無法用 struct tag 表示
const carbohydrateKey = "Carbohydrate, by difference (g)"

// FoodoscopeIngredient RecipeDB 食譜中的食材
type FoodoscopeIngredient struct {
	Ingredient Text `json:"ingredient"`
	Quantity   Text `json:"quantity,omitempty"`
	Unit       Text `json:"unit,omitempty"`
	State      Text `json:"state,omitempty"`
	Phrase     Text `json:"phrase,omitempty"`
}

// FoodoscopeRecipe RecipeDB 回傳的食譜
type FoodoscopeRecipe struct {
	MongoID            Text                   `json:"_id,omitempty"`
	RecipeID           Text                   `json:"Recipe_id"`
	Title              Text                   `json:"Recipe_title"`
	Calories           Text                   `json:"Calories,omitempty"`
	CookTime           Text                   `json:"cook_time,omitempty"`
	PrepTime           Text                   `json:"prep_time,omitempty"`
	TotalTime          Text                   `json:"total_time,omitempty"`
	Servings           Text                   `json:"servings,omitempty"`
	Region             Text                   `json:"Region,omitempty"`
	SubRegion          Text                   `json:"Sub_region,omitempty"`
	Continent          Text                   `json:"Continent,omitempty"`
	Source             Text                   `json:"Source,omitempty"`
	ImageURL           Text                   `json:"img_url,omitempty"`
	URL                Text                   `json:"url,omitempty"`
	EnergyKcal         Text                   `json:"Energy (kcal),omitempty"`
	Protein            Text                   `json:"Protein (g),omitempty"`
	Fat                Text                   `json:"Total lipid (fat) (g),omitempty"`
	Carbohydrate       Text                   `json:"-"`
	Utensils           Text                   `json:"Utensils,omitempty"`
	Processes          Text                   `json:"Processes,omitempty"`
	Vegan              Text                   `json:"vegan,omitempty"`
	Pescetarian        Text                   `json:"pescetarian,omitempty"`
	OvoVegetarian      Text                   `json:"ovo_vegetarian,omitempty"`
	LactoVegetarian    Text                   `json:"lacto_vegetarian,omitempty"`
	OvoLactoVegetarian Text                   `json:"ovo_lacto_vegetarian,omitempty"`
	Ingredients        []FoodoscopeIngredient `json:"ingredients,omitempty"`
}

type foodoscopeRecipeAlias FoodoscopeRecipe

// UnmarshalJSON 額外讀取碳水化合物欄位
func (r *FoodoscopeRecipe) UnmarshalJSON(data []byte) error {
	var alias foodoscopeRecipeAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var extra map[string]json.RawMessage
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	if raw, ok := extra[carbohydrateKey]; ok {
		if err := alias.Carbohydrate.UnmarshalJSON(raw); err != nil {
			return err
		}
	}

	*r = FoodoscopeRecipe(alias)
	return nil
}

// MarshalJSON 寫回碳水化合物欄位
func (r FoodoscopeRecipe) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(foodoscopeRecipeAlias(r))
	if err != nil || r.Carbohydrate == "" {
		return data, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields[carbohydrateKey], err = json.Marshal(string(r.Carbohydrate)); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// apiResponse RecipeDB 回應外層
type apiResponse struct {
	Success Text   `json:"success"`
	Message string `json:"message"`
	Payload struct {
		Data json.RawMessage `json:"data"`
	} `json:"payload"`
}

// recipes 取出 payload.data，可能是單一物件或陣列
func (r *apiResponse) recipes() ([]FoodoscopeRecipe, error) {
	if r.Success != "true" {
		return nil, nil
	}
	data := bytes.TrimSpace(r.Payload.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '[' {
		var list []FoodoscopeRecipe
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var single FoodoscopeRecipe
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []FoodoscopeRecipe{single}, nil
}

// Recipe 轉換後的食譜
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Cuisine       string       `json:"cuisine"`
	Category      string       `json:"category"`
	PrepTime      int          `json:"prepTime"`
	CookTime      int          `json:"cookTime"`
	Servings      int          `json:"servings"`
	Ingredients   []RecipeItem `json:"ingredients"`
	Instructions  []string     `json:"instructions"`
	Nutrition     Nutrition    `json:"nutrition"`
	SattvicStatus Status       `json:"sattvicStatus"`
	Tags          []string     `json:"tags"`
}

// RecipeItem 食譜中的食材
type RecipeItem struct {
	Item        string                    `json:"item"`
	Quantity    string                    `json:"quantity"`
	IsForbidden bool                      `json:"isForbidden"`
	Substitute  string                    `json:"substitute,omitempty"`
	Blend       *flavor.SubstitutionBlend `json:"blend,omitempty"`
}

// Nutrition 營養資訊
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// StatusReport 食譜的悅性檢查摘要
type StatusReport struct {
	Status               Status   `json:"status"`
	ForbiddenIngredients []string `json:"forbiddenIngredients"`
	SuggestedSubstitutes []string `json:"suggestedSubstitutes"`
}
