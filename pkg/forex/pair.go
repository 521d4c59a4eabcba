package forex

import (
	"fmt"
	"strings"
)

// Pair identifies one tracked exchange rate, e.g. USD/EUR.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair parses a "BASE/QUOTE" identifier such as "USD/EUR".
// Currency codes are upper-cased; both sides must be non-empty.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("invalid pair %q: want BASE/QUOTE", s)
	}
	base := strings.ToUpper(strings.TrimSpace(parts[0]))
	quote := strings.ToUpper(strings.TrimSpace(parts[1]))
	if base == "" || quote == "" {
		return Pair{}, fmt.Errorf("invalid pair %q: empty currency code", s)
	}
	return Pair{Base: base, Quote: quote}, nil
}

// MustParsePair is ParsePair for compile-time constants; it panics on error.
func MustParsePair(s string) Pair {
	p, err := ParsePair(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pair) String() string {
	return p.Base + "/" + p.Quote
}
