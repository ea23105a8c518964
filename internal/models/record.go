package models

import (
	"encoding/json"

	"stash/internal/httperr"
)

// Record is the capability set every category implements. The storage
// representation is the record's JSON encoding (the ID field is excluded via
// struct tags, the store assigns it); the wire representation adds the id
// back under the reserved "id" key.
type Record interface {
	Collection() string
	RecordID() string
	SetRecordID(id string)
	TagList() []string
	SetTagList(tags []string)
}

// TagLookup resolves tag names against the full set of existing Tag records.
// Implementations may cache the listed names for the duration of one
// validation pass.
type TagLookup interface {
	HasTag(name string) (bool, error)
}

// Category describes one member of the closed set of record kinds. The CRUD
// engine is generic over this descriptor; nothing discovers fields at runtime.
type Category struct {
	Name       string // singular, as used in error messages ("Note")
	Plural     string // route segment and list response key ("notes")
	Collection string // storage partition name
	HasTags    bool
	FromWire   func(body map[string]any, tags TagLookup) (Record, *httperr.Error)
	Decode     func(id string, data []byte) (Record, error)
}

// Wire builds the JSON shape exchanged with API clients: the storage
// representation plus the assigned identifier.
func Wire(r Record) map[string]any {
	raw, err := json.Marshal(r)
	if err != nil {
		return map[string]any{"id": r.RecordID()}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]any{"id": r.RecordID()}
	}
	m["id"] = r.RecordID()
	return m
}

// Storage returns the persisted JSON document for a record, without the id.
func Storage(r Record) ([]byte, error) {
	return json.Marshal(r)
}

func decodeInto(r Record, id string, data []byte) (Record, error) {
	if err := json.Unmarshal(data, r); err != nil {
		return nil, err
	}
	r.SetRecordID(id)
	return r, nil
}

// stripID drops the reserved "id" key so wire responses can be fed back
// through FromWire without tripping the unexpected-field rule.
func stripID(body map[string]any) map[string]any {
	if _, ok := body["id"]; !ok {
		return body
	}
	out := make(map[string]any, len(body))
	for k, v := range body {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// checkTags enforces the tag reference invariant: every tag name attached to
// a record must already exist as a Tag record at construction time.
func checkTags(tags []string, lookup TagLookup) *httperr.Error {
	for _, tag := range tags {
		found, err := lookup.HasTag(tag)
		if err != nil {
			return httperr.Internal("failed to look up tags: %v", err)
		}
		if !found {
			return httperr.BadRequest("Could not find a tag named [%s].  Please create the tag first.", tag)
		}
	}
	return nil
}

// --- body readers ---
//
// Request bodies arrive as map[string]any from the JSON decoder. These
// helpers pull typed values out with the category name on hand for error
// messages. Absent optional fields yield zero values.

func stringField(body map[string]any, field, category string) (string, *httperr.Error) {
	v, ok := body[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", httperr.BadRequest("Invalid request -- field '%s' in %s must be a string", field, category)
	}
	return s, nil
}

func intField(body map[string]any, field, category string) (int, *httperr.Error) {
	v, ok := body[field]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, httperr.BadRequest("Invalid request -- field '%s' in %s must be an integer", field, category)
	}
}

func stringListField(body map[string]any, field, category string) ([]string, *httperr.Error) {
	v, ok := body[field]
	if !ok || v == nil {
		return []string{}, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, httperr.BadRequest("Invalid request -- field '%s' in %s must be a list of strings", field, category)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, httperr.BadRequest("Invalid request -- field '%s' in %s must be a list of strings", field, category)
		}
		out = append(out, s)
	}
	return out, nil
}

func mapField(body map[string]any, field, category string) (map[string]any, *httperr.Error) {
	v, ok := body[field]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, httperr.BadRequest("Invalid request -- field '%s' in %s must be an object", field, category)
	}
	return m, nil
}

func mapListField(body map[string]any, field, category string) ([]map[string]any, *httperr.Error) {
	v, ok := body[field]
	if !ok || v == nil {
		return []map[string]any{}, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, httperr.BadRequest("Invalid request -- field '%s' in %s must be a list of objects", field, category)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, httperr.BadRequest("Invalid request -- field '%s' in %s must be a list of objects", field, category)
		}
		out = append(out, m)
	}
	return out, nil
}
