package api

import (
	"fmt"
	"net/url"

	"github.com/slok/jiffybox/internal/model"
)

// EncodeForm encodes a payload as application/x-www-form-urlencoded, keys are sorted.
func EncodeForm(payload map[string]string) string {
	values := make(url.Values, len(payload))
	for k, v := range payload {
		values.Set(k, v)
	}
	return values.Encode()
}

// DecodeForm decodes an application/x-www-form-urlencoded body into a payload.
func DecodeForm(body string) (map[string]string, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("could not parse form: %w: %w", model.ErrNotValid, err)
	}

	payload := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) != 1 {
			return nil, fmt.Errorf("key %q has %d values: %w", k, len(v), model.ErrNotValid)
		}
		payload[k] = v[0]
	}

	return payload, nil
}
