package mcli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tokens(a Args) []string {
	out := make([]string, 0, a.Count())
	for i := 0; i < a.Count(); i++ {
		out = append(out, a.Arg(i))
	}
	return out
}

func TestParseLine(t *testing.T) {
	tcs := []struct {
		line string
		want []string
	}{
		{line: "", want: []string{}},
		{line: "   ", want: []string{}},
		{line: "led", want: []string{"led"}},
		{line: "led on", want: []string{"led", "on"}},
		{line: "  led   on  ", want: []string{"led", "on"}},
		{line: "a b c d", want: []string{"a", "b", "c", "d"}},
		// Capped at MaxArgs-1 tokens; extras dropped, never merged.
		{line: "a b c d e f", want: []string{"a", "b", "c", "d"}},
		// Exactly MaxArgLen-1 bytes survives intact.
		{line: "abcdefghijk", want: []string{"abcdefghijk"}},
		// An overlong run is cut at MaxArgLen-1; its tail is consumed.
		{line: "abcdefghijkl on", want: []string{"abcdefghijk", "on"}},
		// Input stops at the first NUL.
		{line: "led\x00 on", want: []string{"led"}},
	}

	for _, tc := range tcs {
		got := tokens(ParseLine(tc.line))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseLine(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestParseLine_RoundTrip(t *testing.T) {
	// Lines already in canonical form (single spaces, at most
	// MaxArgs-1 tokens of at most MaxArgLen-1 bytes) must re-join to
	// themselves.
	lines := []string{
		"x",
		"led on",
		"set mode fast now",
		"one two three",
	}
	for _, line := range lines {
		if got := strings.Join(tokens(ParseLine(line)), " "); got != line {
			t.Fatalf("rejoin(ParseLine(%q)) = %q; want %q", line, got, line)
		}
	}
}

func TestParseLine_Truncation(t *testing.T) {
	args := ParseLine(strings.Repeat("x", 40) + " tail")
	if got := args.Arg(0); len(got) != MaxArgLen-1 {
		t.Fatalf("Arg(0) = %q (len %d); want len %d", got, len(got), MaxArgLen-1)
	}
	if got := args.Arg(1); got != "tail" {
		t.Fatalf("Arg(1) = %q; want %q", got, "tail")
	}
	if args.Count() != 2 {
		t.Fatalf("Count() = %d; want 2", args.Count())
	}
}

func TestParseLine_LongLine(t *testing.T) {
	// Lines beyond CmdBufSize-1 bytes are cut before tokenizing.
	line := strings.Repeat("a", CmdBufSize+50)
	args := ParseLine(line)
	if args.Count() != 1 {
		t.Fatalf("Count() = %d; want 1", args.Count())
	}
	if got := args.Arg(0); got != strings.Repeat("a", MaxArgLen-1) {
		t.Fatalf("Arg(0) = %q; want %d a's", got, MaxArgLen-1)
	}
}

func TestArgs_OutOfRange(t *testing.T) {
	args := ParseLine("led on")
	if got := args.Arg(2); got != "" {
		t.Fatalf("Arg(2) = %q; want empty", got)
	}
	if got := args.Arg(-1); got != "" {
		t.Fatalf("Arg(-1) = %q; want empty", got)
	}
}
