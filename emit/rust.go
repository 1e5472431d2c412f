package emit

import (
	"fmt"
	"io"

	"github.com/data-man/libfsm/dfavm"
)

// Rust prints head as a Rust matcher: the toolkit's third code
// generation target, alongside Go and C.
//
// Rust has no unrestricted goto, so the op chain's BRANCH targets
// (which can jump backward, e.g. a self-looping state) can't be
// printed as a literal `goto label` the way Go and C can. Instead every
// op is numbered as a program counter and the whole chain becomes one
// `loop { match pc { ... } }`: a BRANCH becomes `pc = dest; continue`,
// a FETCH's fall-through becomes `pc = next; continue`, and a STOP
// returns directly out of the function. This is the standard
// loop-plus-match encoding for an arbitrary control-flow graph in a
// goto-less language, and it reaches every op Lower produces (acyclic
// per state or not) the same way.
func Rust(w io.Writer, head *dfavm.Op, opt Options) error {
	renumber(head)

	if opt.Fragment {
		return rustFrag(w, head, opt)
	}

	var sig string
	switch opt.IO {
	case IOPair:
		sig = "(data: &[u8]) -> bool {\n"
	case IOGetc:
		sig = "(next: &mut dyn FnMut() -> Option<u8>) -> bool {\n"
	default:
		sig = "(data: &str) -> bool {\n\tlet data = data.as_bytes();\n"
	}
	if _, err := fmt.Fprintf(w, "pub fn %smatch%s", opt.prefix(), sig); err != nil {
		return err
	}
	if err := rustFrag(w, head, opt); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

// pc numbers every op in chain order, independent of dfavm's own
// Index/Incoming bookkeeping (which only numbers branch targets):
// Rust's match needs an arm for every op, not just the labelled ones.
func pcOf(head *dfavm.Op) map[*dfavm.Op]int {
	pc := map[*dfavm.Op]int{}
	n := 0
	for op := head; op != nil; op = op.Next {
		pc[op] = n
		n++
	}
	return pc
}

func rustFrag(w io.Writer, head *dfavm.Op, opt Options) error {
	pc := pcOf(head)

	decl := "\tlet mut idx: isize = -1;\n"
	if opt.IO == IOGetc {
		decl = "\tlet mut b: u8 = 0;\n"
	}
	if _, err := fmt.Fprintf(w, "%s\tlet mut pc: u32 = 0;\n\tloop {\n\tmatch pc {\n", decl); err != nil {
		return err
	}

	for op := head; op != nil; op = op.Next {
		if _, err := fmt.Fprintf(w, "\t%d => {\n", pc[op]); err != nil {
			return err
		}
		if opt.Comments && op.Example != "" {
			if _, err := fmt.Fprintf(w, "\t\t// e.g. %q\n", op.Example); err != nil {
				return err
			}
		}

		var err error
		switch op.Kind {
		case dfavm.Stop:
			err = rustEnd(w, op, opt)
		case dfavm.Fetch:
			err = rustFetchBlock(w, op, pc, opt)
		case dfavm.Branch:
			err = rustBranchBlock(w, op, pc, opt)
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "\t}\n"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "\t_ => unreachable!(),\n\t}\n\t}\n")
	return err
}

func rustEndBody(op *dfavm.Op, opt Options) string {
	if op.EndBit == dfavm.EndFail {
		return "return false;"
	}
	if body := opt.leaf()(op.EndIDs); body != "" {
		return body
	}
	return "return true;"
}

func rustEnd(w io.Writer, op *dfavm.Op, opt Options) error {
	_, err := fmt.Fprintf(w, "\t\t%s\n", rustEndBody(op, opt))
	return err
}

func rustFetchBlock(w io.Writer, op *dfavm.Op, pc map[*dfavm.Op]int, opt Options) error {
	var cond string
	if opt.IO == IOGetc {
		cond = "match next() { Some(v) => { b = v; false } None => true }"
	} else {
		cond = "{ idx += 1; idx as usize >= data.len() }"
	}
	if _, err := fmt.Fprintf(w, "\t\tif %s { %s }\n", cond, rustEndBody(op, opt)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\t\tpc = %d; continue;\n", pc[op.Next])
	return err
}

func rustBranchBlock(w io.Writer, op *dfavm.Op, pc map[*dfavm.Op]int, opt Options) error {
	destPC := pc[op.Dest]
	if op.Cmp == dfavm.CmpAlways {
		_, err := fmt.Fprintf(w, "\t\tpc = %d; continue;\n", destPC)
		return err
	}
	if _, err := fmt.Fprintf(w, "\t\tif %s %s %s { pc = %d; continue; }\n",
		rustByteExpr(opt), op.Cmp, rustByteLiteral(op.Arg, opt.AlwaysHex), destPC); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\t\tpc = %d; continue;\n", pc[op.Next])
	return err
}

func rustByteExpr(opt Options) string {
	if opt.IO == IOGetc {
		return "b"
	}
	return "data[idx as usize]"
}

func rustByteLiteral(b byte, alwaysHex bool) string {
	if !alwaysHex && b >= 0x20 && b < 0x7f && b != '\'' && b != '\\' {
		return fmt.Sprintf("b'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
