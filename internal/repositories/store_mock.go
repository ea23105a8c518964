package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"stash/internal/models"
)

// MockStore is an in-memory implementation of Store, keeping records in
// insertion order. Useful for unit tests and for running without a database.
type MockStore struct {
	cat     models.Category
	mu      sync.RWMutex
	order   []string
	records map[string]models.Record
}

func NewMockStore(cat models.Category) *MockStore {
	return &MockStore{
		cat:     cat,
		records: make(map[string]models.Record),
	}
}

// clone round-trips a record through its storage representation so callers
// cannot mutate what the store holds.
func (s *MockStore) clone(rec models.Record) (models.Record, error) {
	data, err := models.Storage(rec)
	if err != nil {
		return nil, err
	}
	return s.cat.Decode(rec.RecordID(), data)
}

func (s *MockStore) Create(rec models.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag, ok := rec.(*models.Tag); ok {
		for _, id := range s.order {
			if existing, ok := s.records[id].(*models.Tag); ok && existing.Name == tag.Name {
				return "", fmt.Errorf("%w: a Tag named '%s' already exists", ErrConflict, tag.Name)
			}
		}
	}
	id := uuid.New().String()
	rec.SetRecordID(id)
	stored, err := s.clone(rec)
	if err != nil {
		return "", err
	}
	s.records[id] = stored
	s.order = append(s.order, id)
	return id, nil
}

func (s *MockStore) FindPaginated(page, count int) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	skip := (page - 1) * count
	found := make([]models.Record, 0, count)
	for i := skip; i < len(s.order) && i < skip+count; i++ {
		rec, err := s.clone(s.records[s.order[i]])
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	return found, nil
}

func (s *MockStore) FindAll() ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(func(models.Record) bool { return true })
}

// snapshot clones every record matching the filter, in insertion order.
// Callers must hold the lock.
func (s *MockStore) snapshot(match func(models.Record) bool) ([]models.Record, error) {
	found := make([]models.Record, 0)
	for _, id := range s.order {
		rec := s.records[id]
		if !match(rec) {
			continue
		}
		cloned, err := s.clone(rec)
		if err != nil {
			return nil, err
		}
		found = append(found, cloned)
	}
	return found, nil
}

func (s *MockStore) FindByID(id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return s.clone(rec)
}

func (s *MockStore) UpdateByID(id string, rec models.Record) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replace(id, rec)
}

// replace swaps the stored record wholesale. Callers must hold the lock.
func (s *MockStore) replace(id string, rec models.Record) (models.Record, error) {
	if _, ok := s.records[id]; !ok {
		return nil, nil
	}
	if tag, ok := rec.(*models.Tag); ok {
		for _, otherID := range s.order {
			if otherID == id {
				continue
			}
			if existing, ok := s.records[otherID].(*models.Tag); ok && existing.Name == tag.Name {
				return nil, fmt.Errorf("%w: a Tag named '%s' already exists", ErrConflict, tag.Name)
			}
		}
	}
	rec.SetRecordID(id)
	stored, err := s.clone(rec)
	if err != nil {
		return nil, err
	}
	s.records[id] = stored
	return s.clone(stored)
}

func (s *MockStore) TagOne(id, tag string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	for _, existing := range rec.TagList() {
		if existing == tag {
			return s.clone(rec)
		}
	}
	rec.SetTagList(append(rec.TagList(), tag))
	return s.clone(rec)
}

func (s *MockStore) DeleteByID(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MockStore) DeleteAll() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := int64(len(s.order))
	s.records = make(map[string]models.Record)
	s.order = nil
	return removed, nil
}

func (s *MockStore) FindByDayMonth(day, month string) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(func(rec models.Record) bool {
		date, ok := rec.(*models.Date)
		return ok && date.Day == day && date.Month == month
	})
}

func (s *MockStore) FindTagged(tag string) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(func(rec models.Record) bool {
		for _, t := range rec.TagList() {
			if t == tag {
				return true
			}
		}
		return false
	})
}

func (s *MockStore) CascadeTagDelete(tag string) error {
	return s.rewriteTags(tag, "")
}

func (s *MockStore) CascadeTagRename(oldTag, newTag string) error {
	return s.rewriteTags(oldTag, newTag)
}

func (s *MockStore) rewriteTags(oldTag, newTag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		rec := s.records[id]
		changed := false
		rewritten := make([]string, 0, len(rec.TagList()))
		for _, t := range rec.TagList() {
			if t == oldTag {
				changed = true
				if newTag == "" {
					continue
				}
				t = newTag
			}
			rewritten = append(rewritten, t)
		}
		if changed {
			rec.SetTagList(rewritten)
		}
	}
	return nil
}

// MockApiKeyRepository is an in-memory implementation of ApiKeyRepository.
type MockApiKeyRepository struct {
	mu   sync.RWMutex
	keys map[string]models.ApiKey
}

func NewMockApiKeyRepository() *MockApiKeyRepository {
	return &MockApiKeyRepository{keys: make(map[string]models.ApiKey)}
}

func (r *MockApiKeyRepository) FindByKey(key string) (*models.ApiKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apiKey, ok := r.keys[key]
	if !ok {
		return nil, nil
	}
	return &apiKey, nil
}

func (r *MockApiKeyRepository) Create(apiKey *models.ApiKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if apiKey.ID == "" {
		apiKey.ID = uuid.New().String()
	}
	r.keys[apiKey.Key] = *apiKey
	return nil
}

func (r *MockApiKeyRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.keys)), nil
}

// MockLogRepository is an in-memory implementation of LogRepository.
type MockLogRepository struct {
	mu      sync.RWMutex
	entries []models.Log
}

func NewMockLogRepository() *MockLogRepository {
	return &MockLogRepository{}
}

func (r *MockLogRepository) Append(user string, level models.LogLevel, message string, details map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if details == nil {
		details = map[string]any{}
	}
	r.entries = append(r.entries, models.Log{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		User:      user,
		Level:     level,
		Message:   message,
		Details:   details,
	})
	return nil
}

func (r *MockLogRepository) Query(users []string, levels []models.LogLevel) ([]models.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userSet := make(map[string]bool, len(users))
	for _, u := range users {
		userSet[u] = true
	}
	levelSet := make(map[models.LogLevel]bool, len(levels))
	for _, l := range levels {
		levelSet[l] = true
	}
	found := make([]models.Log, 0, len(r.entries))
	for _, entry := range r.entries {
		if len(users) > 0 && !userSet[entry.User] {
			continue
		}
		if len(levels) > 0 && !levelSet[entry.Level] {
			continue
		}
		found = append(found, entry)
	}
	return found, nil
}

func (r *MockLogRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]models.Log, 0, len(r.entries))
	var removed int64
	for _, entry := range r.entries {
		if entry.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return removed, nil
}
