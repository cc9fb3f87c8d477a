package formatter

import (
	"encoding/json"
	"fmt"
)

// DataSuffix formats the data value of the first payload entry followed by
// suffix. DataSuffix(" Charming") turns a point with data 150 into "150 Charming".
type DataSuffix string

func (s DataSuffix) Format(params Payload, _ string, _ Callback) (string, error) {
	if len(params) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrPayload)
	}
	return JSString(params[0].Data) + string(s), nil
}

func (s DataSuffix) Script() (string, error) {
	suffix, err := json.Marshal(string(s))
	if err != nil {
		return "", err
	}
	return signature() + " {" +
		" if (!Array.isArray(params) || params.length === 0 || params[0] == null) { return ''; }" +
		" return String(params[0].data) + " + string(suffix) + ";" +
		" }", nil
}
