package tcpserver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTelnetFilter_Strip(t *testing.T) {
	tcs := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"plain", []byte("help\r\n"), []byte("help\r\n")},
		{
			"negotiation prefix",
			[]byte{telnetIAC, telnetDONT, 1, telnetIAC, telnetWILL, 3, 'h', 'i'},
			[]byte("hi"),
		},
		{"bare command", []byte{telnetIAC, 241, 'x'}, []byte("x")},
		{"escaped iac", []byte{telnetIAC, telnetIAC, 'y'}, []byte{telnetIAC, 'y'}},
		{
			"subnegotiation",
			[]byte{telnetIAC, telnetSB, 31, 0, 80, 0, 24, telnetIAC, telnetSE, 'o', 'k'},
			[]byte("ok"),
		},
		{
			"escaped iac inside subnegotiation",
			[]byte{telnetIAC, telnetSB, 31, telnetIAC, telnetIAC, 7, telnetIAC, telnetSE, 'z'},
			[]byte("z"),
		},
	}
	for _, tc := range tcs {
		var f telnetFilter
		got := f.strip(append([]byte(nil), tc.in...))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: strip mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestTelnetFilter_StateAcrossChunks(t *testing.T) {
	var f telnetFilter
	var got []byte
	chunks := [][]byte{
		{'a', telnetIAC},
		{telnetWILL},
		{1, 'b'},
		{telnetIAC, telnetSB, 31},
		{0, 80, telnetIAC},
		{telnetSE, 'c'},
	}
	for _, ch := range chunks {
		got = append(got, f.strip(append([]byte(nil), ch...))...)
	}
	if string(got) != "abc" {
		t.Fatalf("strip across chunks = %q; want %q", got, "abc")
	}
}
