package database

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
)

// StringArray stores a string slice as a JSON text column so the same model
// works across postgres, mysql and sqlite.
type StringArray []string

// Scan implements sql.Scanner.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("StringArray: unsupported scan type")
	}

	str := string(data)
	if strings.HasPrefix(str, "[") {
		return json.Unmarshal(data, a)
	}
	if str == "" {
		*a = nil
		return nil
	}

	// Legacy single value stored as plain text.
	*a = []string{str}
	return nil
}

// Value implements driver.Valuer.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDataType returns the GORM data type hint.
func (StringArray) GormDataType() string {
	return "text"
}
