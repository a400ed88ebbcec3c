package rational

import "github.com/pkg/errors"

// ErrDivisionByZero is the sentinel wrapped by Quo when the divisor is zero.
// Higher-level packages (interval, affine, eval) wrap it again with the
// offending sub-expression so callers can report a source location.
var ErrDivisionByZero = errors.New("rational: division by zero")
