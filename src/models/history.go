package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchID identifies a history entry. The service sends it as a number but
// string identifiers are accepted as well.
type SearchID string

// UnmarshalJSON implements json.Unmarshaler
func (id *SearchID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = SearchID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("search_id: %w", err)
	}
	*id = SearchID(n.String())
	return nil
}

// String returns the identifier as text
func (id SearchID) String() string {
	return string(id)
}

// HistoryEntry is a server-retained record of a past weather query
type HistoryEntry struct {
	SearchID    SearchID       `json:"search_id"`
	Location    string         `json:"location"`
	SearchTime  string         `json:"search_time"`
	WeatherData WeatherPayload `json:"weather_data"`
}
