package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/slok/jiffybox/internal/model"
)

// Response is the decoded provider envelope.
type Response struct {
	// Result is the operation payload, its shape depends on the endpoint.
	Result json.RawMessage
	// Messages are the informational messages sent by the provider, in order.
	Messages []string
}

// Decode unmarshals the result into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("could not unmarshal result: %w: %w", model.ErrDecode, err)
	}
	return nil
}

// IsNull returns true when the provider didn't send a result.
func (r *Response) IsNull() bool {
	return bytes.Equal(bytes.TrimSpace(r.Result), []byte("null"))
}

type envelopeJSON struct {
	Messages json.RawMessage `json:"messages"`
	Result   json.RawMessage   `json:"result"`
}

// Decode decodes a raw provider response body.
//
// The body must be a JSON object, empty bodies, invalid JSON and any other top
// level value (null, false, 0, "", []) are decoding errors.
func Decode(raw []byte) (*Response, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty body: %w", model.ErrDecode)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("body is not valid JSON: %w", model.ErrDecode)
	}
	if data[0] != '{' {
		return nil, fmt.Errorf("body is not a JSON object: %w", model.ErrDecode)
	}

	var env envelopeJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("could not unmarshal envelope: %w: %w", model.ErrDecode, err)
	}

	result := env.Result
	if len(result) == 0 {
		result = json.RawMessage("null")
	}

	messages := decodeMessages(env.Messages)

	return &Response{
		Result:   result,
		Messages: messages,
	}, nil
}

// decodeMessages normalizes the messages field. A value that isn't a list is
// taken as a single message so it never discards the result.
func decodeMessages(raw json.RawMessage) []string {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []string{}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return []string{decodeMessage(data)}
	}

	messages := make([]string, 0, len(list))
	for _, m := range list {
		messages = append(messages, decodeMessage(m))
	}
	return messages
}

// decodeMessage returns the text of a message, messages are usually strings but
// objects with a message field are accepted too.
func decodeMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		if obj.Type != "" {
			return obj.Type + ": " + obj.Message
		}
		return obj.Message
	}

	return string(raw)
}

// DecodeObject unmarshals a JSON object into v. The provider sends empty
// objects as empty lists, so `[]`, `null` and empty values leave v untouched.
func DecodeObject(raw json.RawMessage, v any) error {
	data := bytes.TrimSpace(raw)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("[]")):
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not unmarshal object: %w: %w", model.ErrDecode, err)
	}
	return nil
}

// DecodeItems decodes a collection result. The provider usually sends
// collections as objects keyed by the item key, lists are accepted too and
// keyed by their index.
func DecodeItems(raw json.RawMessage) (map[string]json.RawMessage, error) {
	data := bytes.TrimSpace(raw)
	if len(data) > 0 && data[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("could not unmarshal list: %w: %w", model.ErrDecode, err)
		}
		items := make(map[string]json.RawMessage, len(list))
		for i, item := range list {
			items[strconv.Itoa(i)] = item
		}
		return items, nil
	}

	items := map[string]json.RawMessage{}
	if err := DecodeObject(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
