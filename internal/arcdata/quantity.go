package arcdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is how many of an item a strategy calls for: either an exact
// count or an inclusive range. The source document writes quantities four
// ways (number, numeric string, two-element array, "low-high" string);
// all four are resolved here once at decode time so nothing downstream
// re-parses them.
type Quantity struct {
	Low  int
	High int
}

// Exact returns the quantity "exactly n".
func Exact(n int) Quantity {
	return Quantity{Low: n, High: n}
}

// Range returns the inclusive quantity "low to high".
func Range(low, high int) Quantity {
	return Quantity{Low: low, High: high}
}

// IsExact reports whether the quantity is a single count rather than a
// range.
func (q Quantity) IsExact() bool {
	return q.Low == q.High
}

// String renders the quantity the way pages display it: "3" or "1-2".
func (q Quantity) String() string {
	if q.IsExact() {
		return strconv.Itoa(q.Low)
	}
	return strconv.Itoa(q.Low) + "-" + strconv.Itoa(q.High)
}

// Check reports whether the quantity is usable: positive, and ascending
// when it is a range. Violations are data-quality findings, not decode
// errors.
func (q Quantity) Check() error {
	if q.Low <= 0 || q.High <= 0 {
		return fmt.Errorf("quantity %s is not positive", q)
	}
	if q.Low > q.High {
		return fmt.Errorf("quantity range %d-%d is descending", q.Low, q.High)
	}
	return nil
}

// UnmarshalJSON accepts the four source syntaxes. Anything else is a
// decode error: a document with unreadable quantities cannot be rendered.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return fmt.Errorf("missing quantity")
	}

	switch s[0] {
	case '[':
		var pair []int
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("invalid quantity range: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("quantity range has %d values, want 2", len(pair))
		}
		q.Low, q.High = pair[0], pair[1]
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid quantity: %w", err)
		}
		parsed, err := parseQuantityString(str)
		if err != nil {
			return err
		}
		*q = parsed
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid quantity %s: %w", s, err)
		}
		q.Low, q.High = n, n
	}
	return nil
}

// MarshalJSON writes the normal form: a number for exact counts, a
// "low-high" string for ranges.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsExact() {
		return json.Marshal(q.Low)
	}
	return json.Marshal(q.String())
}

func parseQuantityString(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	lowPart, highPart, isRange := strings.Cut(s, "-")
	if !isRange {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Quantity{}, fmt.Errorf("invalid quantity %q", s)
		}
		return Exact(n), nil
	}

	low, err := strconv.Atoi(strings.TrimSpace(lowPart))
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity range %q", s)
	}
	high, err := strconv.Atoi(strings.TrimSpace(highPart))
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity range %q", s)
	}
	return Range(low, high), nil
}
