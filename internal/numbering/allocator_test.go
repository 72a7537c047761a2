package numbering

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		prefix   string
		year     int
		sequence int64
		want     string
	}{
		{PrefixOrder, 2025, 1, "ORD-2025-00001"},
		{PrefixQuote, 2025, 42, "QUO-2025-00042"},
		{PrefixOrder, 2026, 99999, "ORD-2026-99999"},
		{PrefixQuote, 2026, 123456, "QUO-2026-123456"},
	}

	for _, tc := range cases {
		if got := Format(tc.prefix, tc.year, tc.sequence); got != tc.want {
			t.Fatalf("Format(%q, %d, %d) = %q, want %q",
				tc.prefix, tc.year, tc.sequence, got, tc.want)
		}
	}
}
