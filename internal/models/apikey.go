package models

// ApiKey authorizes API requests via the x-api-key header. Keys are stored
// and looked up by value; they are not exposed through CRUD endpoints.
type ApiKey struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	User string `json:"user"`
}

// TestUser is the sentinel acting identity for test and internal contexts
// where no API key was resolved.
const TestUser = "testing"
