package dfavm

// NextByte supplies one byte of input at a time; ok is false once the
// input is exhausted. It mirrors fsm.NextByte so a dfavm program and
// the DFA it was lowered from can be driven by the same source.
type NextByte func() (b byte, ok bool)

// Run interprets the op chain starting at head against next: a STOP or
// an exhausted FETCH ends the run with EndBit's outcome; a BRANCH whose
// condition holds jumps to Dest, otherwise execution falls through to
// Next.
//
// Run exists to let dfavm's own IR be checked against the DFA it was
// lowered from without going through any emitted target-language
// matcher at all.
func Run(head *Op, next NextByte) (accept bool, endIDs []uint64, err error) {
	var cur byte
	op := head
	for op != nil {
		switch op.Kind {
		case Stop:
			return op.EndBit == EndAccept, op.EndIDs, nil
		case Fetch:
			b, ok := next()
			if !ok {
				return op.EndBit == EndAccept, op.EndIDs, nil
			}
			cur = b
			op = op.Next
		case Branch:
			if op.Cmp.Eval(cur, op.Arg) {
				op = op.Dest
			} else {
				op = op.Next
			}
		}
	}
	return false, nil, errOpChainFellOffEnd()
}
