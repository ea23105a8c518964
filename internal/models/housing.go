package models

import "stash/internal/httperr"

// Housing is one entry in a housing history: where, when, and what it cost.
type Housing struct {
	ID             string   `json:"-"`
	Address        Address  `json:"address"`
	StartMonth     string   `json:"start_month"`
	StartYear      string   `json:"start_year"`
	EndMonth       string   `json:"end_month"`
	EndYear        string   `json:"end_year"`
	MonthlyPayment int      `json:"monthly_payment"`
	Tags           []string `json:"tags"`
}

func (h *Housing) Collection() string       { return "housings" }
func (h *Housing) RecordID() string         { return h.ID }
func (h *Housing) SetRecordID(id string)    { h.ID = id }
func (h *Housing) TagList() []string        { return h.Tags }
func (h *Housing) SetTagList(tags []string) { h.Tags = tags }

func HousingFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	err := VerifyBody("Housing", body,
		[]string{"address", "start_month", "start_year"},
		[]string{"end_month", "end_year", "monthly_payment", "tags"})
	if err != nil {
		return nil, err
	}
	rawAddress, err := mapField(body, "address", "Housing")
	if err != nil {
		return nil, err
	}
	address, err := addressFromWire(rawAddress)
	if err != nil {
		return nil, err
	}
	startMonth, err := stringField(body, "start_month", "Housing")
	if err != nil {
		return nil, err
	}
	if err := CheckMonth("Housing", startMonth); err != nil {
		return nil, err
	}
	startYear, err := stringField(body, "start_year", "Housing")
	if err != nil {
		return nil, err
	}
	if err := CheckYear("Housing", startYear); err != nil {
		return nil, err
	}
	endMonth, endYear, err := monthYearPair(body, "end_month", "end_year", "Housing")
	if err != nil {
		return nil, err
	}
	payment, err := intField(body, "monthly_payment", "Housing")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Housing")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Housing{
		Address:        address,
		StartMonth:     NumPadding(startMonth),
		StartYear:      startYear,
		EndMonth:       endMonth,
		EndYear:        endYear,
		MonthlyPayment: payment,
		Tags:           tagList,
	}, nil
}

var HousingCategory = Category{
	Name:       "Housing",
	Plural:     "housings",
	Collection: "housings",
	HasTags:    true,
	FromWire:   HousingFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Housing{}, id, data)
	},
}
