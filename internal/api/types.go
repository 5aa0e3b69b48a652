package api

import (
	"encoding/json"
	"strconv"
)

// stringID decodes an identifier that may arrive as a JSON string (UUID
// backends) or a bare number (serial-id backends). The client treats every
// id as an opaque string.
type stringID string

func (s *stringID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = stringID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = stringID(n.String())
	return nil
}

// idValue encodes an identifier the way it arrived: purely numeric ids go
// back out as numbers, everything else as a string.
type idValue string

func (v idValue) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(v), 10, 64); err == nil {
		return []byte(v), nil
	}
	return json.Marshal(string(v))
}
