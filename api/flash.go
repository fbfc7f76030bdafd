package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Flash is the one-shot notification the API returns alongside
// successful operations, serialized on the wire as a two-element
// [level, message] array.
type Flash struct {
	Level   string
	Message string
}

func (f Flash) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{f.Level, f.Message})
}

func (f *Flash) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return errors.Wrap(err, "[Flash.UnmarshalJSON] expected [level, message] array")
	}
	if len(tuple) > 0 {
		f.Level = tuple[0]
	}
	if len(tuple) > 1 {
		f.Message = tuple[1]
	}
	return nil
}
