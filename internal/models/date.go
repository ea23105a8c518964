package models

import "stash/internal/httperr"

// Date is a memorable day/month, optionally pinned to a year. Day and month
// are stored as zero-padded two-digit strings so the day/month equality query
// can compare them directly.
type Date struct {
	ID      string   `json:"-"`
	Name    string   `json:"name"`
	Day     string   `json:"day"`
	Month   string   `json:"month"`
	Year    string   `json:"year"`
	Subject string   `json:"subject"`
	Notes   []string `json:"notes"`
	Tags    []string `json:"tags"`
}

func (d *Date) Collection() string       { return "dates" }
func (d *Date) RecordID() string         { return d.ID }
func (d *Date) SetRecordID(id string)    { d.ID = id }
func (d *Date) TagList() []string        { return d.Tags }
func (d *Date) SetTagList(tags []string) { d.Tags = tags }

func DateFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	err := VerifyBody("Date", body,
		[]string{"name", "day", "month"},
		[]string{"year", "subject", "notes", "tags"})
	if err != nil {
		return nil, err
	}
	name, err := stringField(body, "name", "Date")
	if err != nil {
		return nil, err
	}
	day, err := stringField(body, "day", "Date")
	if err != nil {
		return nil, err
	}
	if err := CheckDay("Date", day); err != nil {
		return nil, err
	}
	month, err := stringField(body, "month", "Date")
	if err != nil {
		return nil, err
	}
	if err := CheckMonth("Date", month); err != nil {
		return nil, err
	}
	year, err := stringField(body, "year", "Date")
	if err != nil {
		return nil, err
	}
	if err := CheckYear("Date", year); err != nil {
		return nil, err
	}
	subject, err := stringField(body, "subject", "Date")
	if err != nil {
		return nil, err
	}
	notes, err := stringListField(body, "notes", "Date")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Date")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Date{
		Name:    name,
		Day:     NumPadding(day),
		Month:   NumPadding(month),
		Year:    year,
		Subject: subject,
		Notes:   notes,
		Tags:    tagList,
	}, nil
}

var DateCategory = Category{
	Name:       "Date",
	Plural:     "dates",
	Collection: "dates",
	HasTags:    true,
	FromWire:   DateFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Date{}, id, data)
	},
}
