package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals a Go value into a JSONB column value.
func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// jsonbScan unmarshals a JSONB column value into dest. A NULL column
// leaves dest untouched.
func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
