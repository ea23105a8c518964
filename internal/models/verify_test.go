package models_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"stash/internal/models"
)

func TestVerifyBodyUnexpectedField(t *testing.T) {
	err := models.VerifyBody("Note", map[string]any{
		"contents": "hello",
		"foo":      "bar",
	}, []string{"contents"}, []string{"url", "tags"})

	assert.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Contains(t, err.Message, "unexpected field 'foo'")
}

func TestVerifyBodyMissingRequiredField(t *testing.T) {
	err := models.VerifyBody("Date", map[string]any{
		"day":   "25",
		"month": "4",
	}, []string{"name", "day", "month"}, []string{"year"})

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "missing field 'name'")
}

func TestVerifyBodyEmptyRequiredField(t *testing.T) {
	err := models.VerifyBody("Link", map[string]any{
		"name": "",
		"url":  "https://example.com",
	}, []string{"name", "url"}, nil)

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "required field 'name' is empty")
}

func TestVerifyBodyNullRequiredField(t *testing.T) {
	err := models.VerifyBody("Link", map[string]any{
		"name": nil,
		"url":  "https://example.com",
	}, []string{"name", "url"}, nil)

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "required field 'name' is empty")
}

func TestVerifyBodyValid(t *testing.T) {
	err := models.VerifyBody("Note", map[string]any{
		"contents": "hello",
		"url":      "",
	}, []string{"contents"}, []string{"url", "tags"})

	assert.Nil(t, err)
}

func TestVerifyBodyUnexpectedBeforeMissing(t *testing.T) {
	// Rule order: an unexpected field is reported even when a required
	// field is also missing.
	err := models.VerifyBody("Note", map[string]any{
		"foo": "bar",
	}, []string{"contents"}, nil)

	assert.NotNil(t, err)
	assert.Contains(t, err.Message, "unexpected field 'foo'")
}

func TestNumPadding(t *testing.T) {
	assert.Equal(t, "05", models.NumPadding("5"))
	assert.Equal(t, "04", models.NumPadding("4"))
	assert.Equal(t, "25", models.NumPadding("25"))
	assert.Equal(t, "11", models.NumPadding("11"))
	assert.Equal(t, "10", models.NumPadding("10"))
	assert.Equal(t, "09", models.NumPadding("09"))
	// Non-numeric values pass through so empty optional fields survive.
	assert.Equal(t, "", models.NumPadding(""))
	assert.Equal(t, "abc", models.NumPadding("abc"))
}

func TestCheckDayRange(t *testing.T) {
	assert.Nil(t, models.CheckDay("Date", "1"))
	assert.Nil(t, models.CheckDay("Date", "31"))
	assert.NotNil(t, models.CheckDay("Date", "0"))
	assert.NotNil(t, models.CheckDay("Date", "75"))
	assert.NotNil(t, models.CheckDay("Date", "abc"))
	assert.NotNil(t, models.CheckDay("Date", ""))
}

func TestCheckMonthRange(t *testing.T) {
	assert.Nil(t, models.CheckMonth("Date", "1"))
	assert.Nil(t, models.CheckMonth("Date", "12"))
	assert.NotNil(t, models.CheckMonth("Date", "0"))
	assert.NotNil(t, models.CheckMonth("Date", "34"))
	assert.NotNil(t, models.CheckMonth("Date", "x"))
}

func TestCheckYear(t *testing.T) {
	assert.Nil(t, models.CheckYear("Date", ""))
	assert.Nil(t, models.CheckYear("Date", "1924"))
	assert.NotNil(t, models.CheckYear("Date", "not-a-year"))
}
