// Package apiconnect wires the khidmat.v1 services to Connect handlers and clients.
package apiconnect

import "encoding/json"

// JSONCodec marshals plain Go structs with encoding/json. It is registered under
// the "json" name, so it replaces Connect's protojson codec for these services.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
