package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// DecodeList accepts `[...]`, `{"data": [...]}` and a paginator wrapped in
// data: `{"data": {"data": [...]}}`.
func DecodeList(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	for depth := 0; depth < 3; depth++ {
		if len(body) == 0 {
			return nil, errors.New("gateway: empty response body")
		}
		switch body[0] {
		case '[':
			var items []json.RawMessage
			if err := json.Unmarshal(body, &items); err != nil {
				return nil, errors.Wrap(err, "gateway: decode list")
			}
			return items, nil
		case '{':
			var env struct {
				Data json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(body, &env); err != nil {
				return nil, errors.Wrap(err, "gateway: decode envelope")
			}
			if len(env.Data) == 0 {
				return nil, errors.New("gateway: envelope without data")
			}
			body = bytes.TrimSpace(env.Data)
		default:
			return nil, errors.Errorf("gateway: unexpected list payload %.32q", body)
		}
	}
	return nil, errors.New("gateway: envelope nested too deep")
}

// DecodeOne unwraps `{"data": {...}}` or returns the object as is.
func DecodeOne(body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, errors.New("gateway: expected a JSON object")
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(err, "gateway: decode envelope")
	}
	if data := bytes.TrimSpace(env.Data); len(data) > 0 && data[0] == '{' {
		return data, nil
	}
	return body, nil
}
