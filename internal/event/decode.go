package event

import "encoding/json"

// DecodePayload turns an event payload back into T. In-process events carry
// T itself; broker bodies carry raw JSON; events read from a dead-letter file
// carry generic maps.
func DecodePayload[T any](input any) (T, error) {
	var out T
	switch v := input.(type) {
	case T:
		return v, nil
	case json.RawMessage:
		return out, json.Unmarshal(v, &out)
	case []byte:
		return out, json.Unmarshal(v, &out)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, err
	}
	return out, json.Unmarshal(data, &out)
}
