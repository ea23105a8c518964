package models

import "stash/internal/httperr"

// Employer is a composite value embedded in an Employment record.
type Employer struct {
	Address    Address `json:"address"`
	Phone      string  `json:"phone"`
	Supervisor string  `json:"supervisor"`
}

func employerFromWire(body map[string]any) (Employer, *httperr.Error) {
	if err := VerifyBody("Employer", body, []string{"address", "phone"}, []string{"supervisor"}); err != nil {
		return Employer{}, err
	}
	rawAddress, err := mapField(body, "address", "Employer")
	if err != nil {
		return Employer{}, err
	}
	address, err := addressFromWire(rawAddress)
	if err != nil {
		return Employer{}, err
	}
	phone, err := stringField(body, "phone", "Employer")
	if err != nil {
		return Employer{}, err
	}
	supervisor, err := stringField(body, "supervisor", "Employer")
	if err != nil {
		return Employer{}, err
	}
	return Employer{Address: address, Phone: phone, Supervisor: supervisor}, nil
}

// Employment is one entry in a job history.
type Employment struct {
	ID         string   `json:"-"`
	Title      string   `json:"title"`
	Salary     int      `json:"salary"`
	Employer   Employer `json:"employer"`
	StartMonth string   `json:"start_month"`
	StartYear  string   `json:"start_year"`
	EndMonth   string   `json:"end_month"`
	EndYear    string   `json:"end_year"`
	Tags       []string `json:"tags"`
}

func (e *Employment) Collection() string       { return "employments" }
func (e *Employment) RecordID() string         { return e.ID }
func (e *Employment) SetRecordID(id string)    { e.ID = id }
func (e *Employment) TagList() []string        { return e.Tags }
func (e *Employment) SetTagList(tags []string) { e.Tags = tags }

func EmploymentFromWire(body map[string]any, tags TagLookup) (Record, *httperr.Error) {
	body = stripID(body)
	err := VerifyBody("Employment", body,
		[]string{"title", "salary", "employer"},
		[]string{"start_month", "start_year", "end_month", "end_year", "tags"})
	if err != nil {
		return nil, err
	}
	title, err := stringField(body, "title", "Employment")
	if err != nil {
		return nil, err
	}
	salary, err := intField(body, "salary", "Employment")
	if err != nil {
		return nil, err
	}
	rawEmployer, err := mapField(body, "employer", "Employment")
	if err != nil {
		return nil, err
	}
	employer, err := employerFromWire(rawEmployer)
	if err != nil {
		return nil, err
	}
	startMonth, startYear, err := monthYearPair(body, "start_month", "start_year", "Employment")
	if err != nil {
		return nil, err
	}
	endMonth, endYear, err := monthYearPair(body, "end_month", "end_year", "Employment")
	if err != nil {
		return nil, err
	}
	tagList, err := stringListField(body, "tags", "Employment")
	if err != nil {
		return nil, err
	}
	if err := checkTags(tagList, tags); err != nil {
		return nil, err
	}
	return &Employment{
		Title:      title,
		Salary:     salary,
		Employer:   employer,
		StartMonth: startMonth,
		StartYear:  startYear,
		EndMonth:   endMonth,
		EndYear:    endYear,
		Tags:       tagList,
	}, nil
}

// monthYearPair reads an optional month/year pair, validating and padding
// the month when present. An empty month stays empty.
func monthYearPair(body map[string]any, monthField, yearField, category string) (string, string, *httperr.Error) {
	month, err := stringField(body, monthField, category)
	if err != nil {
		return "", "", err
	}
	if month != "" {
		if err := CheckMonth(category, month); err != nil {
			return "", "", err
		}
	}
	year, err := stringField(body, yearField, category)
	if err != nil {
		return "", "", err
	}
	if err := CheckYear(category, year); err != nil {
		return "", "", err
	}
	return NumPadding(month), year, nil
}

var EmploymentCategory = Category{
	Name:       "Employment",
	Plural:     "employments",
	Collection: "employments",
	HasTags:    true,
	FromWire:   EmploymentFromWire,
	Decode: func(id string, data []byte) (Record, error) {
		return decodeInto(&Employment{}, id, data)
	},
}
