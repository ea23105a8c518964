package models

import "stash/internal/httperr"

// Note is a free-text record, optionally pointing at a URL.
type Note struct {
	ID       string   `json:"-"`
	Contents string   `json:"contents"`
	URL      string   `json:"url"`
	Tags     []string `json:"tags"`
}

func (n *Note) Collection() string       { return "notes" }
func (n *Note) RecordID() string         { return n.ID }
func (n *Note) SetRecordID(id string)    { n.ID = id }
func (n *Note) TagList() []string        { return n.Tags }
func (n *Note) SetTagList(tags []string) { n.Tags = tags }

func NoteFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	if err := VerifyBody("Note", body, []string{"contents"}, []string{"url", "tags"}); err != nil {
		return nil, err
	}
	contents, err := stringField(body, "contents", "Note")
	if err != nil {
		return nil, err
	}
	url, err := stringField(body, "url", "Note")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Note")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Note{Contents: contents, URL: url, Tags: tagList}, nil
}

var NoteCategory = Category{
	Name:       "Note",
	Plural:     "notes",
	Collection: "notes",
	HasTags:    true,
	FromWire:   NoteFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Note{}, id, data)
	},
}
