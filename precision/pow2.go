package precision

import "math/big"

// newPow2BigRat returns 2^e as a *big.Rat when recip is false, or 2^-e when
// recip is true (e must be >= 0 in that case). Adapted from apd's table.go
// tableExp10, swapped from base ten to base two since this package's
// constants are all negative powers of two rather than decimal exponents.
func newPow2BigRat(e int, recip bool) *big.Rat {
	p := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(e)), nil)
	out := new(big.Rat)
	if recip {
		out.SetFrac(big.NewInt(1), p)
	} else {
		out.SetInt(p)
	}
	return out
}
