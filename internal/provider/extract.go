package provider

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// IdentifierString normalizes a player identifier from an API response into
// its decimal string form.
//
// The MLB Stats API returns integer ids, but decoders may surface them as
// json.Number, float64 or int depending on how the payload was read. Strings
// are accepted as-is when non-empty.
//
// Returns ok=false if the value is missing or not an integral identifier.
func IdentifierString(val interface{}) (string, bool) {
	if val == nil {
		return "", false
	}

	switch v := val.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		if f, err := v.Float64(); err == nil {
			return IdentifierString(f)
		}
		return "", false
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	default:
		return "", false
	}
}
