package engine

import (
	"math/big"
	"regexp"
)

var fractionPattern = regexp.MustCompile(`^\s*(\d+)\s*/\s*(\d+)\s*$`)

// ParseFraction converts a textual fraction like "1/2" into an exact
// rational. It returns nil when the string is empty, does not match the
// numerator/denominator pattern, or has a zero denominator. Callers must
// treat nil as "no fixed fraction available" and flag rather than guess.
func ParseFraction(s string) *big.Rat {
	m := fractionPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	num, okN := new(big.Int).SetString(m[1], 10)
	den, okD := new(big.Int).SetString(m[2], 10)
	if !okN || !okD || den.Sign() == 0 {
		return nil
	}
	return new(big.Rat).SetFrac(num, den)
}
