package watchdog

import "fmt"

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// FmtBytes renders a byte count with binary units. Whole bytes print as an
// integer; every larger unit prints with two decimals.
func FmtBytes(n uint64) string {
	x := float64(n)
	for i, u := range byteUnits {
		if x < 1024 || i == len(byteUnits)-1 {
			if i == 0 {
				return fmt.Sprintf("%d B", n)
			}
			return fmt.Sprintf("%.2f %s", x, u)
		}
		x /= 1024
	}
	return "" // unreachable
}
