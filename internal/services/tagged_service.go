package services

import (
	"stash/internal/httperr"
	"stash/internal/models"
	"stash/internal/repositories"
)

// TaggedService answers the cross-category question "what carries this tag?".
type TaggedService struct {
	stores map[string]repositories.Store // keyed by category plural
}

func NewTaggedService(stores map[string]repositories.Store) *TaggedService {
	return &TaggedService{stores: stores}
}

// Tagged returns, for every tag-bearing category, the records whose tag set
// contains tagName, keyed by the category's plural name.
func (s *TaggedService) Tagged(tagName string) (map[string]any, *httperr.Error) {
	result := make(map[string]any, len(s.stores))
	for _, cat := range models.Categories() {
		if !cat.HasTags {
			continue
		}
		store, ok := s.stores[cat.Plural]
		if !ok {
			return nil, httperr.Internal("No store wired for category '%s'", cat.Plural)
		}
		found, err := store.FindTagged(tagName)
		if err != nil {
			return nil, httperr.Internal("Datastore operation failed: %v", err)
		}
		items := make([]map[string]any, 0, len(found))
		for _, rec := range found {
			items = append(items, models.Wire(rec))
		}
		result[cat.Plural] = items
	}
	return result, nil
}
