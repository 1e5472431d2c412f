package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/data-man/libfsm/dfavm"
)

func TestRustEmitsCompleteFunction(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Rust(&buf, head, Options{Prefix: "ab_"}))

	out := buf.String()
	require.Contains(t, out, "pub fn ab_match(data: &str) -> bool {")
	require.Contains(t, out, "return true;")
	require.Contains(t, out, "return false;")
	require.Contains(t, out, "loop {")
	require.Contains(t, out, "match pc {")
}

func TestRustFragmentOmitsFunctionWrapper(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Rust(&buf, head, Options{Fragment: true}))

	out := buf.String()
	require.NotContains(t, out, "pub fn ")
	require.Contains(t, out, "let mut pc: u32 = 0;")
}

func TestRustIOGetcUsesCallback(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Rust(&buf, head, Options{IO: IOGetc}))

	out := buf.String()
	require.Contains(t, out, "next: &mut dyn FnMut() -> Option<u8>")
	require.Contains(t, out, "next()")
	require.NotContains(t, out, "data.len()")
}

func TestRustEveryPCReachableIsMatched(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Rust(&buf, head, Options{Fragment: true}))

	// Every op must get its own match arm: count op nodes against the
	// number of "N => {" arm openings in the output.
	n := 0
	for op := head; op != nil; op = op.Next {
		n++
	}
	opened := bytes.Count(buf.Bytes(), []byte(" => {\n"))
	require.Equal(t, n, opened)
}
