package dfavm

import "github.com/pkg/errors"

// ErrMalformedChain is returned when Run walks off the end of an op
// chain without hitting a STOP or an exhausted FETCH. A chain built by
// Lower never does this; it only happens if a chain was hand-assembled
// incorrectly (e.g. a BRANCH with a nil Dest whose condition held).
var ErrMalformedChain = errors.New("dfavm: op chain ended without a STOP")

func errOpChainFellOffEnd() error {
	return errors.Wrap(ErrMalformedChain, "Run")
}
