package models

import "stash/internal/httperr"

// Link is a bookmarked URL with free-text notes.
type Link struct {
	ID    string   `json:"-"`
	Name  string   `json:"name"`
	URL   string   `json:"url"`
	Notes []string `json:"notes"`
	Tags  []string `json:"tags"`
}

func (l *Link) Collection() string       { return "links" }
func (l *Link) RecordID() string         { return l.ID }
func (l *Link) SetRecordID(id string)    { l.ID = id }
func (l *Link) TagList() []string        { return l.Tags }
func (l *Link) SetTagList(tags []string) { l.Tags = tags }

func LinkFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	if err := VerifyBody("Link", body, []string{"name", "url"}, []string{"notes", "tags"}); err != nil {
		return nil, err
	}
	name, err := stringField(body, "name", "Link")
	if err != nil {
		return nil, err
	}
	url, err := stringField(body, "url", "Link")
	if err != nil {
		return nil, err
	}
	notes, err := stringListField(body, "notes", "Link")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Link")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Link{Name: name, URL: url, Notes: notes, Tags: tagList}, nil
}

var LinkCategory = Category{
	Name:       "Link",
	Plural:     "links",
	Collection: "links",
	HasTags:    true,
	FromWire:   LinkFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Link{}, id, data)
	},
}
