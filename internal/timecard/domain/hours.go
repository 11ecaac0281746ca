package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Hours is a duration of worked time stored as hundredths of an hour.
// Integer arithmetic keeps billable/nonbillable totals exact, so a total is
// always the sum of its parts with no floating point drift.
type Hours int64

// HoursFromFloat converts a float value to Hours, rounding half-up on the
// third decimal place.
func HoursFromFloat(f float64) Hours {
	if f >= 0 {
		return Hours(f*100 + 0.5)
	}
	return Hours(f*100 - 0.5)
}

// ParseHours converts a decimal string to Hours.
//
// It accepts both dot (7.5) and comma (7,5) decimal separators and performs
// half-up rounding on the third decimal place. Negative values are rejected.
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid hours value %q", s)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid hours value %q", s)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid hours value %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("invalid hours value %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("invalid hours value %q", s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours value %q", s)
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, fmt.Errorf("hours value %q out of range", s)
	}
	// Take first two fractional digits; half-up rounding on the third
	var frac int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		frac = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			frac += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	return Hours(iv*100 + frac), nil
}

// Add returns the sum of two hour values
func (h Hours) Add(other Hours) Hours {
	return h + other
}

// Float64 returns the value in hours for display purposes.
// Use Hours directly for calculations to avoid floating-point drift.
func (h Hours) Float64() float64 {
	return float64(h) / 100.0
}

// String formats the value as a decimal with trailing zeros trimmed,
// e.g. 1000 -> "10", 750 -> "7.5", 25 -> "0.25".
func (h Hours) String() string {
	whole := int64(h) / 100
	frac := int64(h) % 100
	if frac < 0 {
		frac = -frac
	}
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	s := fmt.Sprintf("%d.%02d", whole, frac)
	return strings.TrimRight(s, "0")
}

// Value implements driver.Valuer, storing the value as a NUMERIC(8,2) literal
func (h Hours) Value() (driver.Value, error) {
	whole := int64(h) / 100
	frac := int64(h) % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d", whole, frac), nil
}

// Scan implements sql.Scanner for NUMERIC columns
func (h *Hours) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = 0
		return nil
	case []byte:
		parsed, err := ParseHours(string(v))
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	case string:
		parsed, err := ParseHours(v)
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	case float64:
		*h = HoursFromFloat(v)
		return nil
	case int64:
		*h = Hours(v * 100)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Hours", src)
	}
}

// MarshalJSON renders the value as a decimal string
func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number
func (h *Hours) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseHours(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
