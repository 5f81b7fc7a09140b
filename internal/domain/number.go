package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that additionally accepts string-encoded JSON values,
// so clients may send quantity/price as either 10 or "10". It always marshals
// back as a plain JSON number.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	*n = Number(f)
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}
