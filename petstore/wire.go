package petstore

import (
	"bytes"
	"encoding/json"
)

// wireAliases maps the snake_case spelling of a field onto its wire name.
// Decoding accepts either; the wire name wins when both carry a value.
var wireAliases = map[string]string{
	"photo_urls": "photoUrls",
	"pet_id":     "petId",
	"ship_date":  "shipDate",
}

var jsonNull = []byte("null")

// decodeWire unmarshals a JSON object into v after folding alias keys onto
// their wire names.
func decodeWire(data []byte, v any) error {
	normalized, err := normalizeKeys(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(normalized, v)
}

func normalizeKeys(data []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return data, nil
	}

	changed := false
	for alias, wire := range wireAliases {
		raw, ok := fields[alias]
		if !ok {
			continue
		}
		delete(fields, alias)
		changed = true
		if current, exists := fields[wire]; !exists || bytes.Equal(bytes.TrimSpace(current), jsonNull) {
			fields[wire] = raw
		}
	}
	if !changed {
		return data, nil
	}
	return json.Marshal(fields)
}

// messageOf extracts the "message" field of an error body, if any
func messageOf(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	var payload struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch m := payload.Message.(type) {
	case string:
		return m
	case nil:
		return ""
	default:
		b, _ := json.Marshal(m)
		return string(b)
	}
}
