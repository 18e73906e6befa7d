package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a price value that accepts both JSON numbers and numeric
// strings ("4.50"), since the admin panel historically submitted either.
// It scans from NUMERIC columns and stores as a plain float.
type Decimal float64

// UnmarshalJSON parses a number or a quoted numeric string.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("invalid decimal: %q", string(b))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal: %q", string(b))
	}
	*d = Decimal(f)
	return nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (d *Decimal) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = 0
		return nil
	case float64:
		*d = Decimal(v)
		return nil
	case int64:
		*d = Decimal(v)
		return nil
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Decimal", string(v))
		}
		*d = Decimal(f)
		return nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Decimal", v)
		}
		*d = Decimal(f)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Decimal", src)
	}
}

// Value implements driver.Valuer.
func (d Decimal) Value() (driver.Value, error) {
	return float64(d), nil
}
