package arcdata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VerifiedMark records whether and when a strategy was confirmed working.
// It is either a date string such as "2026-07-18" or the Unverified
// sentinel. Contributors write the field loosely; decoding normalizes the
// common spellings of "not verified" (false, null, empty string) to the
// sentinel so downstream code has a single case to test.
type VerifiedMark string

// Unverified is the sentinel marking a strategy nobody has confirmed yet.
const Unverified VerifiedMark = "unverified"

// IsVerified reports whether the strategy was confirmed as of some date.
func (v VerifiedMark) IsVerified() bool {
	return v != "" && v != Unverified
}

// String returns the display form; the zero value reads as the sentinel.
func (v VerifiedMark) String() string {
	if v == "" {
		return string(Unverified)
	}
	return string(v)
}

// UnmarshalJSON tolerates string, boolean, and null spellings.
func (v *VerifiedMark) UnmarshalJSON(data []byte) error {
	switch s := strings.TrimSpace(string(data)); s {
	case "null", "false":
		*v = Unverified
		return nil
	case "true":
		*v = "verified"
		return nil
	default:
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid verified marker %s", s)
		}
		if str == "" {
			*v = Unverified
			return nil
		}
		*v = VerifiedMark(str)
		return nil
	}
}

// MarshalJSON writes the normalized string form.
func (v VerifiedMark) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}
