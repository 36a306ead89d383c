package watchdog

import "testing"

func TestFmtBytes(t *testing.T) {
	const kib = uint64(1024)
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{kib * kib, "1.00 MiB"},
		{kib*kib - 1, "1024.00 KiB"}, // just under the boundary keeps the smaller unit
		{kib * kib * kib, "1.00 GiB"},
		{kib * kib * kib * kib, "1.00 TiB"},
		{kib * kib * kib * kib * kib, "1.00 PiB"},
		{kib * kib * kib * kib * kib * 2048, "2048.00 PiB"}, // PiB is the ceiling
	}
	for _, c := range cases {
		if got := FmtBytes(c.in); got != c.want {
			t.Fatalf("FmtBytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
