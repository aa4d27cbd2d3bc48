package handler

import "encoding/json"

// reDecode reshapes a raw facade result (already one decoded JSON value)
// into dst via a JSON round trip. The bridge package does the same thing
// internally for its own typed returns; the handler needs its own copy
// because several facade methods return []interface{}/map[string]interface{}
// element-wise rather than as a single typed slice.
func reDecode(data interface{}, dst interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
