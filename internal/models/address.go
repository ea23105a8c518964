package models

import "stash/internal/httperr"

// Address is a composite value embedded in Employment (via Employer) and
// Housing records. "extra" is the second line (apt, suite, etc.).
type Address struct {
	Number string `json:"number"`
	Street string `json:"street"`
	Extra  string `json:"extra"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip_code"`
}

func addressFromWire(body map[string]any) (Address, *httperr.Error) {
	err := VerifyBody("Address", body,
		[]string{"number", "street", "city", "state", "zip_code"},
		[]string{"extra"})
	if err != nil {
		return Address{}, err
	}
	var addr Address
	for _, part := range []struct {
		field string
		dest  *string
	}{
		{"number", &addr.Number},
		{"street", &addr.Street},
		{"extra", &addr.Extra},
		{"city", &addr.City},
		{"state", &addr.State},
		{"zip_code", &addr.Zip},
	} {
		value, err := stringField(body, part.field, "Address")
		if err != nil {
			return Address{}, err
		}
		*part.dest = value
	}
	return addr, nil
}
