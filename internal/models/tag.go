package models

import "stash/internal/httperr"

// Tag is the one category other records reference by name. The store
// enforces name uniqueness; renames and deletes cascade across every other
// category's partition.
type Tag struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (t *Tag) Collection() string    { return "tags" }
func (t *Tag) RecordID() string      { return t.ID }
func (t *Tag) SetRecordID(id string) { t.ID = id }
func (t *Tag) TagList() []string     { return nil }
func (t *Tag) SetTagList([]string)   {}

func TagFromWire(body map[string]any, _ TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	if err := VerifyBody("Tag", body, []string{"name"}, nil); err != nil {
		return nil, err
	}
	name, err := stringField(body, "name", "Tag")
	if err != nil {
		return nil, err
	}
	return &Tag{Name: name}, nil
}

var TagCategory = Category{
	Name:       "Tag",
	Plural:     "tags",
	Collection: "tags",
	HasTags:    false,
	FromWire:   TagFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Tag{}, id, data)
	},
}
