package services

import (
	"stash/internal/models"
	"stash/internal/repositories"
)

// storeTagLookup resolves tag names against the tags partition. The full tag
// name set is listed once on first use and cached for the lifetime of the
// lookup, which is one validation pass; a concurrent tag deletion can still
// invalidate a reference between listing and write.
type storeTagLookup struct {
	store repositories.Store
	names map[string]bool
}

// NewTagLookup builds a lookup scoped to a single validation pass.
func NewTagLookup(store repositories.Store) models.TagLookup {
	return &storeTagLookup{store: store}
}

func (l *storeTagLookup) HasTag(name string) (bool, error) {
	if l.names == nil {
		all, err := l.store.FindAll()
		if err != nil {
			return false, err
		}
		l.names = make(map[string]bool, len(all))
		for _, rec := range all {
			if tag, ok := rec.(*models.Tag); ok {
				l.names[tag.Name] = true
			}
		}
	}
	return l.names[name], nil
}
