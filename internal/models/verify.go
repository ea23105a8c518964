package models

import (
	"strconv"

	"stash/internal/httperr"
)

// VerifyBody is the declarative required/optional field contract shared by
// every record type. Rules, applied in order: no field outside the required
// and optional sets, every required field present, and no required field
// empty-string or null. The reserved "id" key is stripped by callers before
// verification. Pure; no side effects.
func VerifyBody(category string, body map[string]any, required, optional []string) *httperr.Error {
	allowed := make(map[string]bool, len(required)+len(optional))
	for _, field := range required {
		allowed[field] = true
	}
	for _, field := range optional {
		allowed[field] = true
	}
	for field := range body {
		if !allowed[field] {
			return httperr.BadRequest("Invalid request -- unexpected field '%s' in %s", field, category)
		}
	}
	for _, field := range required {
		v, ok := body[field]
		if !ok {
			return httperr.BadRequest("Invalid request -- missing field '%s' in %s", field, category)
		}
		if v == nil || v == "" {
			return httperr.BadRequest("Invalid request -- required field '%s' is empty in %s", field, category)
		}
	}
	return nil
}

// NumPadding zero-pads day/month-like values to two digits. Values that do
// not parse as integers pass through unchanged so optional fields defaulting
// to empty string can run through the converter safely.
func NumPadding(value string) string {
	num, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	if num < 10 {
		return "0" + strconv.Itoa(num)
	}
	return strconv.Itoa(num)
}

// CheckDay validates a day value is an integer in [1, 31].
func CheckDay(category, value string) *httperr.Error {
	num, err := strconv.Atoi(value)
	if err != nil || num < 1 || num > 31 {
		return httperr.BadRequest("Invalid request -- day in %s must be a number between 1 and 31", category)
	}
	return nil
}

// CheckMonth validates a month value is an integer in [1, 12].
func CheckMonth(category, value string) *httperr.Error {
	num, err := strconv.Atoi(value)
	if err != nil || num < 1 || num > 12 {
		return httperr.BadRequest("Invalid request -- month in %s must be a number between 1 and 12", category)
	}
	return nil
}

// CheckYear validates a year value parses as an integer when non-empty.
func CheckYear(category, value string) *httperr.Error {
	if value == "" {
		return nil
	}
	if _, err := strconv.Atoi(value); err != nil {
		return httperr.BadRequest("Invalid request -- year in %s must be a number", category)
	}
	return nil
}
