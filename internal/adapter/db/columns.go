package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// jsonTags maps a tag list onto a nullable JSON column.
type jsonTags []string

func (t jsonTags) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	encoded, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func (t *jsonTags) Scan(src any) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("scan tags: unsupported type %T", src)
	}

	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("scan tags: %w", err)
	}
	*t = tags
	return nil
}

// utcMillis matches the DATETIME(3) precision of the timestamp columns, so a
// record returned from a write equals the same record read back.
func utcMillis() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
