package repositories

import (
	"errors"
	"time"

	"stash/internal/models"
)

// Store failure kinds. The orchestrator needs to tell a uniqueness violation
// apart from a transport failure so they map to different response codes.
var (
	ErrConflict    = errors.New("uniqueness constraint violated")
	ErrUnavailable = errors.New("datastore unavailable")
)

// Store is the storage port for one category's partition. Absent records are
// (nil, nil), not errors.
type Store interface {
	// Create persists a record and returns the store-assigned id.
	Create(rec models.Record) (string, error)
	// FindPaginated returns one page in insertion order; skip is (page-1)*count.
	FindPaginated(page, count int) ([]models.Record, error)
	// FindAll returns the whole partition in insertion order.
	FindAll() ([]models.Record, error)
	FindByID(id string) (models.Record, error)
	// UpdateByID fully replaces the stored record. Fields absent from rec are
	// cleared, not merged.
	UpdateByID(id string, rec models.Record) (models.Record, error)
	// TagOne adds a tag name to a record's tag set; adding a present name is
	// a no-op success.
	TagOne(id, tag string) (models.Record, error)
	DeleteByID(id string) (bool, error)
	DeleteAll() (int64, error)
	// FindByDayMonth matches records whose padded day/month equal the
	// arguments. Only meaningful for the dates partition.
	FindByDayMonth(day, month string) ([]models.Record, error)
	// FindTagged returns records whose tag set contains tag.
	FindTagged(tag string) ([]models.Record, error)
	// CascadeTagDelete removes tag from every record's tag set in this partition.
	CascadeTagDelete(tag string) error
	// CascadeTagRename rewrites oldTag to newTag wherever present in this partition.
	CascadeTagRename(oldTag, newTag string) error
}

// ApiKeyRepository resolves x-api-key header values against stored keys.
type ApiKeyRepository interface {
	FindByKey(key string) (*models.ApiKey, error)
	Create(apiKey *models.ApiKey) error
	Count() (int64, error)
}

// LogRepository is the append-only log partition. Query filters are
// OR-within-field and AND-across-fields; an empty filter is unrestricted.
type LogRepository interface {
	Append(user string, level models.LogLevel, message string, details map[string]any) error
	Query(users []string, levels []models.LogLevel) ([]models.Log, error)
	// ExpireOlderThan removes entries created before the cutoff, the active
	// sweep standing in for a store-level TTL index.
	ExpireOlderThan(cutoff time.Time) (int64, error)
}
