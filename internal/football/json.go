package football

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Extras is an open key-value bag for attributes not otherwise modeled,
// stored as a JSON text column.
type Extras map[string]any

func (e Extras) Value() (driver.Value, error) {
	if e == nil {
		return "{}", nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *Extras) Scan(src any) error {
	return scanJSON(src, e)
}

// RoleList holds a player's micro roles in the order they were entered.
type RoleList []string

func (r RoleList) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *RoleList) Scan(src any) error {
	return scanJSON(src, r)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
