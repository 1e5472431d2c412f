package emit

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/data-man/libfsm/dfavm"
	"github.com/data-man/libfsm/fsm"
)

// C prints head as a C matcher. It walks the same op chain the same
// way Golang does: one label per op with Incoming > 0, STOP/FETCH
// print an end block, BRANCH prints a conditional goto, but in C's own
// syntax. Labels are a bare `l0:`, not `l0:` plus a Go-only comment
// convention, and Fragment mode omits the enclosing function exactly as
// Go's does.
//
// IOGetc is not supported here: a byte-at-a-time callback in C needs an
// explicit opaque-context-pointer convention the spec never pins down,
// unlike Go's closures, so C rejects it rather than guessing one.
func C(w io.Writer, head *dfavm.Op, opt Options) error {
	if opt.IO == IOGetc {
		return errors.Wrap(fsm.ErrUnsupported, "emit: C target does not support IOGetc")
	}
	renumber(head)

	if opt.Fragment {
		return cFrag(w, head, opt)
	}

	ioType := "const char *data, size_t len"
	if _, err := fmt.Fprintf(w, "int\n%smatch(%s)\n{\n", opt.prefix(), ioType); err != nil {
		return err
	}
	if err := cFrag(w, head, opt); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

func cFrag(w io.Writer, head *dfavm.Op, opt Options) error {
	// idx starts pre-decremented (the unsigned wraparound the original
	// print/go.c used: "start idx at -1 so the first increment lands on
	// 0"), matching the Go and Rust targets' own -1-initialised signed
	// cursors; starting it at 0 would make the first FETCH's ++idx skip
	// data[0] entirely.
	if _, err := fmt.Fprint(w, "\tsize_t idx = (size_t)-1;\n\n"); err != nil {
		return err
	}

	for op := head; op != nil; op = op.Next {
		if op.Incoming > 0 {
			if err := cLabel(w, op, opt); err != nil {
				return err
			}
		}

		var err error
		switch op.Kind {
		case dfavm.Stop:
			err = cStmt(w, func() error { return cCond(w, op, opt) }, func() error { return cEnd(w, op, opt) })
		case dfavm.Fetch:
			err = cStmt(w, func() error { return cFetch(w) }, func() error { return cEnd(w, op, opt) })
		case dfavm.Branch:
			err = cStmt(w, func() error { return cCond(w, op, opt) }, func() error { return cBranch(w, op) })
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// cStmt prints "\t<cond><body>\n", where cond and body are each
// responsible for their own trailing space/brace conventions, the
// same two-piece shape print/go.c uses for every op (a cond_fn
// followed by an op-specific tail).
func cStmt(w io.Writer, cond func() error, body func() error) error {
	if _, err := fmt.Fprint(w, "\t"); err != nil {
		return err
	}
	if err := cond(); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func cLabel(w io.Writer, op *dfavm.Op, opt Options) error {
	if _, err := fmt.Fprintf(w, "l%d:", op.Index); err != nil {
		return err
	}
	if opt.Comments && op.Example != "" {
		if _, err := fmt.Fprintf(w, " /* e.g. %q */", op.Example); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

func cCond(w io.Writer, op *dfavm.Op, opt Options) error {
	if op.Cmp == dfavm.CmpAlways {
		return nil
	}
	_, err := fmt.Fprintf(w, "if (data[idx] %s %s) ", op.Cmp, cByteLiteral(op.Arg, opt.AlwaysHex))
	return err
}

func cEnd(w io.Writer, op *dfavm.Op, opt Options) error {
	if op.EndBit == dfavm.EndFail {
		_, err := fmt.Fprint(w, "{ return 0; }")
		return err
	}
	body := opt.leaf()(op.EndIDs)
	if body == "" {
		body = "return 1;"
	}
	_, err := fmt.Fprintf(w, "{ %s }", body)
	return err
}

func cBranch(w io.Writer, op *dfavm.Op) error {
	_, err := fmt.Fprintf(w, "{ goto l%d; }", op.Dest.Index)
	return err
}

func cFetch(w io.Writer) error {
	_, err := fmt.Fprint(w, "if (++idx >= len) ")
	return err
}

func cByteLiteral(b byte, alwaysHex bool) string {
	if !alwaysHex && b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
