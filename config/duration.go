package config

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDuration parses the given duration with multiple type support:
// numbers default to seconds, strings without units default to seconds,
// strings with units are parsed as-is.
func ParseDuration(duration interface{}) (time.Duration, error) {
	switch t := duration.(type) {
	case int:
		return time.Duration(t) * time.Second, nil
	case int64:
		return time.Duration(t) * time.Second, nil
	case float64:
		// JSON numbers decode as float64
		return time.Duration(t * float64(time.Second)), nil
	case string:
		if i, err := strconv.Atoi(t); err == nil {
			return time.Duration(i) * time.Second, nil
		}
		return time.ParseDuration(t)
	default:
		return time.Duration(0), fmt.Errorf("unexpected duration of type %T", t)
	}
}
