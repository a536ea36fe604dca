package bridge

import (
	"encoding/json"
	"fmt"
)

// Request is the outbound wire message: the operation name, the caller
// generated correlation id, and operation-specific fields flattened into the
// same object.
type Request struct {
	Type      string
	RequestID uint64
	Fields    map[string]any
}

// MarshalJSON flattens Fields alongside type and requestId.
func (r Request) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["type"] = r.Type
	out["requestId"] = r.RequestID
	return json.Marshal(out)
}

// Response is the inbound wire message. Only messages with type "response"
// participate in correlation; anything else is dropped.
type Response struct {
	Type      string          `json:"type"`
	RequestID uint64          `json:"requestId"`
	Data      json.RawMessage `json:"data"`
}

// parseResponse decodes an inbound frame and checks its type tag.
func parseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("malformed response frame: %w", err)
	}
	if resp.Type != "response" {
		return nil, fmt.Errorf("unexpected message type %q", resp.Type)
	}
	return &resp, nil
}
