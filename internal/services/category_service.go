package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"stash/internal/httperr"
	"stash/internal/models"
	"stash/internal/repositories"
	"stash/pkg/rabbitmq"
)

const (
	defaultPage  = 1
	defaultCount = 10
)

// CategoryService is the generic CRUD orchestrator: one instance per
// category, all running the same stage pipeline: validate, construct,
// execute, then the tag cascade hook, then serialize. Stages return typed
// httperr values; the handlers' single respond point maps them to statuses.
type CategoryService struct {
	cat      models.Category
	store    repositories.Store
	tagStore repositories.Store
	cascades *CascadeRunner
	mqClient *rabbitmq.Client
}

func NewCategoryService(
	cat models.Category,
	store repositories.Store,
	tagStore repositories.Store,
	cascades *CascadeRunner,
	mqClient *rabbitmq.Client,
) *CategoryService {
	return &CategoryService{
		cat:      cat,
		store:    store,
		tagStore: tagStore,
		cascades: cascades,
		mqClient: mqClient,
	}
}

// Category exposes the descriptor for route registration.
func (s *CategoryService) Category() models.Category {
	return s.cat
}

func (s *CategoryService) notFound(id string) *httperr.Error {
	return httperr.NotFound("Could not find a %s with the ID '%s'", s.cat.Name, id)
}

// execErr maps storage port failures onto the response taxonomy: uniqueness
// conflicts surface as bad requests with the underlying message, everything
// else as a 500.
func (s *CategoryService) execErr(err error) *httperr.Error {
	if errors.Is(err, repositories.ErrConflict) {
		return httperr.BadRequest("%v", err)
	}
	return httperr.Internal("Datastore operation failed: %v", err)
}

// construct runs the validate and construct stages, including the tag
// reference re-check against the current tag partition.
func (s *CategoryService) construct(body map[string]any) (models.Record, *httperr.Error) {
	return s.cat.FromWire(body, NewTagLookup(s.tagStore))
}

// List returns one page of records, or the whole partition when noLimit is
// set. Page and count must be integers when present.
func (s *CategoryService) List(pageParam, countParam string, noLimit bool) (map[string]any, *httperr.Error) {
	var found []models.Record
	var err error
	if noLimit {
		found, err = s.store.FindAll()
	} else {
		page, perr := parsePositiveInt(pageParam, "page", defaultPage)
		if perr != nil {
			return nil, perr
		}
		count, perr := parsePositiveInt(countParam, "count", defaultCount)
		if perr != nil {
			return nil, perr
		}
		found, err = s.store.FindPaginated(page, count)
	}
	if err != nil {
		return nil, s.execErr(err)
	}
	items := make([]map[string]any, 0, len(found))
	for _, rec := range found {
		items = append(items, models.Wire(rec))
	}
	return map[string]any{s.cat.Plural: items}, nil
}

func parsePositiveInt(param, name string, fallback int) (int, *httperr.Error) {
	if param == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, httperr.BadRequest("Invalid request -- '%s' must be an integer", name)
	}
	if value < 1 {
		return 0, httperr.BadRequest("Invalid request -- '%s' must be at least 1", name)
	}
	return value, nil
}

// Create validates and persists a new record, returning the assigned id.
func (s *CategoryService) Create(body map[string]any) (string, *httperr.Error) {
	if len(body) == 0 {
		return "", httperr.BadRequest("Expected a json body but received none")
	}
	rec, herr := s.construct(body)
	if herr != nil {
		return "", herr
	}
	id, err := s.store.Create(rec)
	if err != nil {
		return "", s.execErr(err)
	}
	s.publish("created", id)
	return id, nil
}

// Get returns one record by id.
func (s *CategoryService) Get(id string) (map[string]any, *httperr.Error) {
	rec, err := s.store.FindByID(id)
	if err != nil {
		return nil, s.execErr(err)
	}
	if rec == nil {
		return nil, s.notFound(id)
	}
	return models.Wire(rec), nil
}

// Update fully replaces an existing record. For the Tag category the
// after-update hook replays a rename cascade across every other partition
// before the response is returned.
func (s *CategoryService) Update(user, id string, body map[string]any) (map[string]any, *httperr.Error) {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, s.execErr(err)
	}
	if existing == nil {
		return nil, s.notFound(id)
	}
	rec, herr := s.construct(body)
	if herr != nil {
		return nil, herr
	}
	updated, err := s.store.UpdateByID(id, rec)
	if err != nil {
		return nil, s.execErr(err)
	}
	if updated == nil {
		return nil, s.notFound(id)
	}
	if oldTag, ok := existing.(*models.Tag); ok {
		newTag := updated.(*models.Tag)
		if oldTag.Name != newTag.Name {
			s.cascades.Run(user, Cascade{OldName: oldTag.Name, NewName: newTag.Name})
		}
	}
	s.publish("updated", id)
	return models.Wire(updated), nil
}

// Delete removes a record. For the Tag category the after-delete hook
// removes the tag name from every other partition.
func (s *CategoryService) Delete(user, id string) *httperr.Error {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return s.execErr(err)
	}
	if existing == nil {
		return s.notFound(id)
	}
	deleted, err := s.store.DeleteByID(id)
	if err != nil {
		return s.execErr(err)
	}
	if !deleted {
		return s.notFound(id)
	}
	if tag, ok := existing.(*models.Tag); ok {
		s.cascades.Run(user, Cascade{OldName: tag.Name})
	}
	s.publish("deleted", id)
	return nil
}

// Today returns the records whose day/month equal the current date. An empty
// result is a 404, not an empty list; kept for wire compatibility.
func (s *CategoryService) Today() (map[string]any, *httperr.Error) {
	now := time.Now()
	day := models.NumPadding(strconv.Itoa(now.Day()))
	month := models.NumPadding(strconv.Itoa(int(now.Month())))
	found, err := s.store.FindByDayMonth(day, month)
	if err != nil {
		return nil, s.execErr(err)
	}
	if len(found) == 0 {
		return nil, httperr.NotFound("No events occur today")
	}
	items := make([]map[string]any, 0, len(found))
	for _, rec := range found {
		items = append(items, models.Wire(rec))
	}
	return map[string]any{s.cat.Plural: items}, nil
}

func (s *CategoryService) publish(action, id string) {
	if s.mqClient == nil {
		return
	}
	event := map[string]any{
		"category": s.cat.Plural,
		"action":   action,
		"id":       id,
	}
	if err := s.mqClient.Publish(s.cat.Plural+"."+action, event); err != nil {
		log.Printf("Warning: failed to publish %s event for %s %s: %v", action, s.cat.Name, id, err)
	}
}
