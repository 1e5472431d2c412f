package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/data-man/libfsm/dfavm"
)

func TestCEmitsCompleteFunction(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, C(&buf, head, Options{Prefix: "ab_"}))

	out := buf.String()
	require.Contains(t, out, "ab_match(const char *data, size_t len)")
	require.Contains(t, out, "return 1;")
	require.Contains(t, out, "return 0;")
	require.True(t, strings.HasSuffix(out, "}\n"))
}

func TestCFragmentOmitsFunctionWrapper(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, C(&buf, head, Options{Fragment: true}))

	out := buf.String()
	require.NotContains(t, out, "int\n")
	require.Contains(t, out, "size_t idx = (size_t)-1;")
}

// TestCFetchReadsFirstByte guards against the cursor starting at 0 and
// ++idx skipping data[0] on the very first FETCH: idx must start
// pre-decremented so the first increment lands on index 0, matching
// the Go and Rust targets' idx := -1.
func TestCFetchReadsFirstByte(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, C(&buf, head, Options{Fragment: true}))

	out := buf.String()
	require.Contains(t, out, "size_t idx = (size_t)-1;")
	require.Contains(t, out, "if (++idx >= len)")

	declIdx := strings.Index(out, "size_t idx")
	fetchIdx := strings.Index(out, "if (++idx >= len)")
	condIdx := strings.Index(out, "data[idx]")
	require.True(t, declIdx >= 0 && fetchIdx > declIdx && condIdx > fetchIdx,
		"expected idx declared, then incremented, then read from data[idx], in that order")
}

func TestCRejectsIOGetc(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	err = C(&bytes.Buffer{}, head, Options{IO: IOGetc})
	require.Error(t, err)
}

func TestCGoAgreeOnBranchStructure(t *testing.T) {
	dfa := buildAbStarC()
	head, err := dfavm.Lower(dfa)
	require.NoError(t, err)

	var goBuf, cBuf bytes.Buffer
	require.NoError(t, Golang(&goBuf, head, Options{Fragment: true}))
	require.NoError(t, C(&cBuf, head, Options{Fragment: true}))

	// Both targets walk the same renumbered chain, so they must emit
	// the same set of label names even though every other token
	// differs between the two languages.
	for _, label := range []string{"l0:"} {
		require.Contains(t, goBuf.String(), label)
		require.Contains(t, cBuf.String(), label)
	}
}
