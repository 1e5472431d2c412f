package emit

import (
	"fmt"
	"io"

	"github.com/data-man/libfsm/dfavm"
)

// Golang prints head as a Go matcher, porting the original's
// print/go.c op-by-op: a label is printed only for ops with Incoming >
// 0 (computed fresh by renumber before printing), a STOP or exhausted
// FETCH prints an end block, and a BRANCH prints a conditional goto.
//
// Unlike the original, the input cursor (for Options.IO == IOString or
// IOPair) is tracked with an ordinary signed int starting at -1 rather
// than the C version's "start an unsigned cursor at ^uint(0) so the
// first increment wraps to 0" trick, keeping the same fetch-then-check
// shape but with an explicit, readable not-yet-started value instead of
// relying on unsigned overflow. Options.IO == IOGetc generates a callback-driven
// matcher instead of indexing a buffer, each FETCH calling the caller-
// supplied next function directly.
func Golang(w io.Writer, head *dfavm.Op, opt Options) error {
	renumber(head)

	if opt.Fragment {
		return golangFrag(w, head, opt)
	}

	if _, err := fmt.Fprintf(w, "package %s\n\n", opt.packageName()); err != nil {
		return err
	}

	var sig string
	switch opt.IO {
	case IOPair:
		sig = "(data []byte) bool {\n"
	case IOGetc:
		sig = "(next func() (byte, bool)) bool {\n"
	default:
		sig = "(data string) bool {\n"
	}
	if _, err := fmt.Fprintf(w, "func %sMatch%s", opt.prefix(), sig); err != nil {
		return err
	}
	if err := golangFrag(w, head, opt); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

func golangFrag(w io.Writer, head *dfavm.Op, opt Options) error {
	if head.Kind == dfavm.Stop && head.Cmp == dfavm.CmpAlways && head.Next == nil {
		return golangStop(w, head, opt, "\t")
	}

	decl := "\tidx := -1\n\n"
	if opt.IO == IOGetc {
		decl = "\tvar b byte\n\tvar ok bool\n\n"
	}
	if _, err := fmt.Fprint(w, decl); err != nil {
		return err
	}

	for op := head; op != nil; op = op.Next {
		if op.Incoming > 0 {
			if err := golangLabel(w, op, opt); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\t"); err != nil {
			return err
		}

		var err error
		switch op.Kind {
		case dfavm.Stop:
			err = golangCond(w, op, opt)
			if err == nil {
				err = golangEnd(w, op, opt, "\t")
			}
		case dfavm.Fetch:
			err = golangFetch(w, opt)
			if err == nil {
				err = golangEnd(w, op, opt, "\t")
			}
		case dfavm.Branch:
			err = golangCond(w, op, opt)
			if err == nil {
				err = golangBranch(w, op)
			}
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func golangLabel(w io.Writer, op *dfavm.Op, opt Options) error {
	if _, err := fmt.Fprintf(w, "l%d:", op.Index); err != nil {
		return err
	}
	if opt.Comments && op.Example != "" {
		if _, err := fmt.Fprintf(w, " // e.g. %q", op.Example); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func golangCond(w io.Writer, op *dfavm.Op, opt Options) error {
	if op.Cmp == dfavm.CmpAlways {
		return nil
	}
	_, err := fmt.Fprintf(w, "if %s %s %s ", golangByteExpr(opt), op.Cmp, goByteLiteral(op.Arg, opt.AlwaysHex))
	return err
}

func golangByteExpr(opt Options) string {
	if opt.IO == IOGetc {
		return "b"
	}
	return "data[idx]"
}

func golangEnd(w io.Writer, op *dfavm.Op, opt Options, indent string) error {
	if op.EndBit == dfavm.EndFail {
		_, err := fmt.Fprintf(w, "{\n%s\treturn false\n%s}", indent, indent)
		return err
	}
	body := opt.leaf()(op.EndIDs)
	if body == "" {
		body = "return true"
	}
	_, err := fmt.Fprintf(w, "{\n%s\t%s\n%s}", indent, body, indent)
	return err
}

func golangStop(w io.Writer, op *dfavm.Op, opt Options, indent string) error {
	return golangEnd(w, op, opt, indent)
}

func golangBranch(w io.Writer, op *dfavm.Op) error {
	_, err := fmt.Fprintf(w, "{\n\t\tgoto l%d\n\t}", op.Dest.Index)
	return err
}

func golangFetch(w io.Writer, opt Options) error {
	if opt.IO == IOGetc {
		_, err := fmt.Fprint(w, "if b, ok = next(); !ok ")
		return err
	}
	_, err := fmt.Fprint(w, "if idx++; idx >= len(data) ")
	return err
}

func goByteLiteral(b byte, alwaysHex bool) string {
	if !alwaysHex && b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
