package models

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NumberSet is a bet's chosen numbers, stored as a comma-joined string so the
// column stays readable from a plain SQL console.
type NumberSet []int

func (n NumberSet) Value() (driver.Value, error) {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ","), nil
}

func (n *NumberSet) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*n = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into NumberSet", src)
	}

	if raw == "" {
		*n = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(NumberSet, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid number %q in set: %v", p, err)
		}
		out = append(out, v)
	}
	*n = out
	return nil
}

func (n NumberSet) Contains(v int) bool {
	for _, m := range n {
		if m == v {
			return true
		}
	}
	return false
}

func (n NumberSet) String() string {
	parts := make([]string, len(n))
	for i, v := range n {
		parts[i] = fmt.Sprintf("%02d", v)
	}
	return strings.Join(parts, " ")
}

// NormalizeNumbers dedupes and sorts ascending, the canonical stored shape.
func NormalizeNumbers(in []int) NumberSet {
	seen := make(map[int]bool, len(in))
	out := make(NumberSet, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
