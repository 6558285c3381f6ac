package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"taskdash/internal/service"
)

// errorBody is the JSON error shape: {"message": "...", "errors": {"field": ["..."]}}.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError builds an *APIError from a non-2xx response.
// Bodies that are not JSON leave Message empty.
func decodeError(status int, data []byte) error {
	apiErr := &service.APIError{Status: status}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
		apiErr.Order = errorFieldOrder(data)
	}
	return apiErr
}

// errorFieldOrder returns the keys of the "errors" object in body order.
// Decoding into a map loses that order, so the object is walked by token.
func errorFieldOrder(data []byte) []string {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil
	}
	raw, ok := top["errors"]
	if !ok {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}
	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return order
		}
		key, ok := tok.(string)
		if !ok {
			return order
		}
		order = append(order, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return order
		}
	}
	return order
}

func decodeTaskList(raw json.RawMessage) ([]service.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var tasks []service.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return tasks, nil
	}

	var envelope struct {
		Data []service.Task `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return envelope.Data, nil
}
