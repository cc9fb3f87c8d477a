package formatter

import (
	"encoding/json"
	"fmt"
)

// Bridge guards a Tooltip at an untyped boundary, such as a callback invoked by
// the JavaScript runtime. Invoke checks arity and payload shape before the typed
// formatter runs.
type Bridge struct {
	tooltip Tooltip
}

func NewBridge(t Tooltip) *Bridge {
	return &Bridge{tooltip: t}
}

// Invoke expects Arity arguments: the payload (Payload, []Param, []any of
// objects, JSON bytes or a JSON string), a ticket and a callback. Ticket and
// callback may be nil.
func (b *Bridge) Invoke(args ...any) (string, error) {
	if len(args) != Arity {
		return "", fmt.Errorf("%w: got %d, want %d", ErrArity, len(args), Arity)
	}

	params, err := DecodePayload(args[0])
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrPayload)
	}

	var ticket string
	switch t := args[1].(type) {
	case nil:
	case string:
		ticket = t
	default:
		ticket = fmt.Sprint(t)
	}

	var callback Callback
	switch cb := args[2].(type) {
	case nil:
	case Callback:
		callback = cb
	case func(string, string):
		callback = cb
	default:
		return "", fmt.Errorf("%w: callback has type %T", ErrPayload, args[2])
	}

	return b.tooltip.Format(params, ticket, callback)
}

func DecodePayload(v any) (Payload, error) {
	switch p := v.(type) {
	case Payload:
		return p, nil
	case []Param:
		return Payload(p), nil
	case Param:
		// A single-series item trigger passes one object instead of a list.
		return Payload{p}, nil
	case []byte:
		return decodeJSON(p)
	case json.RawMessage:
		return decodeJSON(p)
	case string:
		return decodeJSON([]byte(p))
	case nil:
		return nil, fmt.Errorf("%w: nil payload", ErrPayload)
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPayload, err)
		}
		return decodeJSON(b)
	}
}

func decodeJSON(b []byte) (Payload, error) {
	var params Payload
	if err := json.Unmarshal(b, &params); err == nil {
		return params, nil
	}

	var single Param
	if err := json.Unmarshal(b, &single); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return Payload{single}, nil
}
