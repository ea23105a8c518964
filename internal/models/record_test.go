package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stash/internal/models"
)

// stubTagLookup answers tag existence from a fixed set.
type stubTagLookup map[string]bool

func (s stubTagLookup) HasTag(name string) (bool, error) { return s[name], nil }

func TestTagFromWire(t *testing.T) {
	record, err := models.TagFromWire(map[string]any{"name": "family"}, nil)

	assert.Nil(t, err)
	tag := record.(*models.Tag)
	assert.Equal(t, "family", tag.Name)
	assert.Equal(t, "tags", tag.Collection())
}

func TestWireIncludesID(t *testing.T) {
	tag := &models.Tag{Name: "family"}
	tag.SetRecordID("abc-123")

	wire := models.Wire(tag)

	assert.Equal(t, "abc-123", wire["id"])
	assert.Equal(t, "family", wire["name"])
}

func TestFromWireStripsID(t *testing.T) {
	// Callers can feed a wire response straight back into an update.
	record, err := models.NoteFromWire(map[string]any{
		"id":       "abc-123",
		"contents": "remember the milk",
	}, stubTagLookup{})

	assert.Nil(t, err)
	assert.Equal(t, "remember the milk", record.(*models.Note).Contents)
}

func TestDateFromWirePadsDayAndMonth(t *testing.T) {
	record, err := models.DateFromWire(map[string]any{
		"name":  "Birthday",
		"day":   "5",
		"month": "4",
	}, stubTagLookup{})

	assert.Nil(t, err)
	date := record.(*models.Date)
	assert.Equal(t, "05", date.Day)
	assert.Equal(t, "04", date.Month)
}

func TestDateFromWireKeepsTwoDigitValues(t *testing.T) {
	record, err := models.DateFromWire(map[string]any{
		"name":  "Anniversary",
		"day":   "25",
		"month": "11",
	}, stubTagLookup{})

	assert.Nil(t, err)
	date := record.(*models.Date)
	assert.Equal(t, "25", date.Day)
	assert.Equal(t, "11", date.Month)
}

func TestDateFromWireRejectsBadDay(t *testing.T) {
	_, err := models.DateFromWire(map[string]any{
		"name":  "Bad",
		"day":   "75",
		"month": "4",
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "between 1 and 31")
}

func TestFromWireRejectsUnknownTag(t *testing.T) {
	_, err := models.NoteFromWire(map[string]any{
		"contents": "hello",
		"tags":     []any{"family", "ghosts"},
	}, stubTagLookup{"family": true})

	assert.NotNil(t, err)
	assert.Equal(t, "Could not find a tag named [ghosts].  Please create the tag first.", err.Message)
}

func TestFromWireAcceptsKnownTags(t *testing.T) {
	record, err := models.LinkFromWire(map[string]any{
		"name": "Example",
		"url":  "https://example.com",
		"tags": []any{"family"},
	}, stubTagLookup{"family": true})

	assert.Nil(t, err)
	assert.Equal(t, []string{"family"}, record.TagList())
}

func TestRecipeFromWireRejectsUnknownType(t *testing.T) {
	_, err := models.RecipeFromWire(map[string]any{
		"name":         "Mystery",
		"ingredients":  []any{},
		"instructions": []any{"stir"},
		"recipe_type":  "midnight snack",
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "not a valid recipe_type")
}

func TestRecipeFromWireParsesIngredients(t *testing.T) {
	record, err := models.RecipeFromWire(map[string]any{
		"name": "Soup",
		"ingredients": []any{
			map[string]any{"amount": "2 cups", "item": "stock"},
			map[string]any{"amount": "1", "item": "onion"},
		},
		"instructions": []any{"simmer"},
		"recipe_type":  "soup",
	}, stubTagLookup{})

	assert.Nil(t, err)
	recipe := record.(*models.Recipe)
	assert.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "stock", recipe.Ingredients[0].Item)
}

func TestRecipeFromWireRejectsMalformedIngredient(t *testing.T) {
	_, err := models.RecipeFromWire(map[string]any{
		"name": "Soup",
		"ingredients": []any{
			map[string]any{"amount": "2 cups"},
		},
		"instructions": []any{"simmer"},
		"recipe_type":  "soup",
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "missing field 'item' in Ingredient")
}

func TestLoginFromWireParsesSecurityQuestions(t *testing.T) {
	record, err := models.LoginFromWire(map[string]any{
		"application": "bank",
		"password":    "hunter2",
		"security_questions": []any{
			map[string]any{"question": "first pet", "answer": "rex"},
		},
	}, stubTagLookup{})

	assert.Nil(t, err)
	login := record.(*models.Login)
	assert.Len(t, login.SecurityQuestions, 1)
	assert.Equal(t, "rex", login.SecurityQuestions[0].Answer)
}

func TestLoginFromWireRejectsMalformedSecurityQuestion(t *testing.T) {
	_, err := models.LoginFromWire(map[string]any{
		"application": "bank",
		"password":    "hunter2",
		"security_questions": []any{
			map[string]any{"question": "first pet", "hint": "dog"},
		},
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "unexpected field 'hint' in SecurityQuestion")
}

func TestEmploymentFromWireValidatesEmployerAddress(t *testing.T) {
	_, err := models.EmploymentFromWire(map[string]any{
		"title":  "Engineer",
		"salary": float64(90000),
		"employer": map[string]any{
			"address": map[string]any{
				"number": "12",
				"street": "Main St",
				"city":   "Springfield",
			},
			"phone": "555-0100",
		},
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "missing field 'state' in Address")
}

func TestEmploymentFromWirePadsStartMonth(t *testing.T) {
	record, err := models.EmploymentFromWire(map[string]any{
		"title":  "Engineer",
		"salary": float64(90000),
		"employer": map[string]any{
			"address": map[string]any{
				"number":   "12",
				"street":   "Main St",
				"city":     "Springfield",
				"state":    "IL",
				"zip_code": "62704",
			},
			"phone": "555-0100",
		},
		"start_month": "3",
		"start_year":  "2019",
	}, stubTagLookup{})

	assert.Nil(t, err)
	employment := record.(*models.Employment)
	assert.Equal(t, "03", employment.StartMonth)
	assert.Equal(t, "2019", employment.StartYear)
	assert.Equal(t, "", employment.EndMonth)
	assert.Equal(t, 90000, employment.Salary)
}

func TestHousingFromWireRequiresStartMonth(t *testing.T) {
	_, err := models.HousingFromWire(map[string]any{
		"address": map[string]any{
			"number":   "12",
			"street":   "Main St",
			"city":     "Springfield",
			"state":    "IL",
			"zip_code": "62704",
		},
		"start_year": "2019",
	}, stubTagLookup{})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "missing field 'start_month' in Housing")
}

func TestDecodeRoundTrip(t *testing.T) {
	record, err := models.DateFromWire(map[string]any{
		"name":  "Birthday",
		"day":   "5",
		"month": "4",
		"year":  "1990",
	}, stubTagLookup{})
	assert.Nil(t, err)

	data, marshalErr := models.Storage(record)
	assert.NoError(t, marshalErr)

	decoded, decodeErr := models.DateCategory.Decode("abc-123", data)
	assert.NoError(t, decodeErr)
	date := decoded.(*models.Date)
	assert.Equal(t, "abc-123", date.RecordID())
	assert.Equal(t, "Birthday", date.Name)
	assert.Equal(t, "05", date.Day)
}

func TestCategoriesClosedSet(t *testing.T) {
	categories := models.Categories()

	assert.Len(t, categories, 8)
	plurals := make([]string, 0, len(categories))
	for _, cat := range categories {
		plurals = append(plurals, cat.Plural)
	}
	assert.Equal(t, []string{
		"tags", "notes", "links", "dates",
		"logins", "recipes", "employments", "housings",
	}, plurals)
	assert.False(t, categories[0].HasTags)
	for _, cat := range categories[1:] {
		assert.True(t, cat.HasTags, cat.Name)
	}
}
