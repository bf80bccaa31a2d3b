package predicate

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedQuantifier is returned for quantifier encodings that are too
// short or name an unknown mode.
var ErrMalformedQuantifier = errors.New("malformed quantifier")

// Quantifier is the rule for reducing a per-element test over a
// collection-valued path to a single boolean.
type Quantifier string

const (
	// QuantifierAny is true when at least one element satisfies the test.
	QuantifierAny Quantifier = "any"
	// QuantifierNone is true when no element satisfies the test.
	QuantifierNone Quantifier = "none"
	// QuantifierFirst is true when the first element, in iteration order,
	// satisfies the test. An empty collection yields false.
	QuantifierFirst Quantifier = "first"
)

// ParseQuantifier decodes a declared quantifier string. The empty string is
// the default, QuantifierAny. A leading '!' is the negation marker: the
// caller must negate the element comparison and flip the quantified result.
// Anything shorter than two runes, or an unknown mode, is malformed.
func ParseQuantifier(s string) (q Quantifier, negated bool, err error) {
	if s == "" {
		return QuantifierAny, false, nil
	}
	if len(s) < 2 {
		return "", false, errors.Wrapf(ErrMalformedQuantifier, "encoding %q is too short", s)
	}
	if s[0] == '!' {
		negated = true
		s = s[1:]
	}
	switch strings.ToLower(s) {
	case "any":
		q = QuantifierAny
	case "none":
		q = QuantifierNone
	case "first", "first-match":
		q = QuantifierFirst
	default:
		return "", false, errors.Wrapf(ErrMalformedQuantifier, "unknown mode %q", s)
	}
	return q, negated, nil
}
