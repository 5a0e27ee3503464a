package sportsapi

import (
	"bytes"
	"encoding/json"
)

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Unwrap decodes the payload under the "data" key of a response.
// It reports false when raw is nil, is not an object, has no data key,
// has a null data value, or the payload does not decode into T.
func Unwrap[T any](raw json.RawMessage) (T, bool) {
	var zero T
	if raw == nil {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, false
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return zero, false
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, false
	}
	return out, true
}
