// Package decode contains helper functions for turning mapstructure
// interfaces into simpler structs for configs
package decode

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ToStruct decodes a raw interface{} into the target struct
func ToStruct(raw interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// ToStrings converts the given interface{} to a []string, or returns an
// error. In the case where the argument is a string already, will wrap
// the arg in a slice.
func ToStrings(raw interface{}) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	switch t := raw.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []interface{}:
		var strings []string
		for _, member := range t {
			strings = append(strings, interfaceToString(member))
		}
		return strings, nil
	default:
		return nil, fmt.Errorf("unexpected argument type: %T", t)
	}
}

func interfaceToString(raw interface{}) string {
	switch t := raw.(type) {
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
