package models

import "stash/internal/httperr"

// RecipeTypes is the closed set of accepted recipe_type values.
var RecipeTypes = []string{"entree", "dessert", "salad", "soup", "side dish", "casserole", "appetizer"}

func validRecipeType(value string) bool {
	for _, t := range RecipeTypes {
		if value == t {
			return true
		}
	}
	return false
}

// Ingredient is an amount/item pair embedded in a Recipe.
type Ingredient struct {
	Amount string `json:"amount"`
	Item   string `json:"item"`
}

func ingredientFromWire(body map[string]any) (Ingredient, *httperr.Error) {
	if err := VerifyBody("Ingredient", body, []string{"amount", "item"}, nil); err != nil {
		return Ingredient{}, err
	}
	amount, err := stringField(body, "amount", "Ingredient")
	if err != nil {
		return Ingredient{}, err
	}
	item, err := stringField(body, "item", "Ingredient")
	if err != nil {
		return Ingredient{}, err
	}
	return Ingredient{Amount: amount, Item: item}, nil
}

type Recipe struct {
	ID           string       `json:"-"`
	Name         string       `json:"name"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	RecipeType   string       `json:"recipe_type"`
	CookingStyle string       `json:"cooking_style"`
	URL          string       `json:"url"`
	Source       string       `json:"source"`
	Notes        []string     `json:"notes"`
	Tags         []string     `json:"tags"`
}

func (r *Recipe) Collection() string       { return "recipes" }
func (r *Recipe) RecordID() string         { return r.ID }
func (r *Recipe) SetRecordID(id string)    { r.ID = id }
func (r *Recipe) TagList() []string        { return r.Tags }
func (r *Recipe) SetTagList(tags []string) { r.Tags = tags }

func RecipeFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	err := VerifyBody("Recipe", body,
		[]string{"name", "ingredients", "instructions", "recipe_type"},
		[]string{"cooking_style", "url", "source", "notes", "tags"})
	if err != nil {
		return nil, err
	}
	name, err := stringField(body, "name", "Recipe")
	if err != nil {
		return nil, err
	}
	rawIngredients, err := mapListField(body, "ingredients", "Recipe")
	if err != nil {
		return nil, err
	}
	ingredients := make([]Ingredient, 0, len(rawIngredients))
	for _, raw := range rawIngredients {
		ingredient, err := ingredientFromWire(raw)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	instructions, err := stringListField(body, "instructions", "Recipe")
	if err != nil {
		return nil, err
	}
	recipeType, err := stringField(body, "recipe_type", "Recipe")
	if err != nil {
		return nil, err
	}
	if !validRecipeType(recipeType) {
		return nil, httperr.BadRequest("Invalid request -- '%s' is not a valid recipe_type", recipeType)
	}
	cookingStyle, err := stringField(body, "cooking_style", "Recipe")
	if err != nil {
		return nil, err
	}
	url, err := stringField(body, "url", "Recipe")
	if err != nil {
		return nil, err
	}
	source, err := stringField(body, "source", "Recipe")
	if err != nil {
		return nil, err
	}
	notes, err := stringListField(body, "notes", "Recipe")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Recipe")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Recipe{
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		RecipeType:   recipeType,
		CookingStyle: cookingStyle,
		URL:          url,
		Source:       source,
		Notes:        notes,
		Tags:         tagList,
	}, nil
}

var RecipeCategory = Category{
	Name:       "Recipe",
	Plural:     "recipes",
	Collection: "recipes",
	HasTags:    true,
	FromWire:   RecipeFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Recipe{}, id, data)
	},
}
