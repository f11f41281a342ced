package printer

import "fmt"

// FormatMB returns a human-readable size string from a size in megabytes.
// Examples: "0 MB", "512 MB", "2 GB", "1.5 GB", "1.2 TB".
func FormatMB(mb int) string {
	if mb <= 0 {
		return "0 MB"
	}

	const (
		gb = 1024
		tb = 1024 * gb
	)

	switch {
	case mb >= tb:
		return trimFloat(float64(mb)/float64(tb)) + " TB"
	case mb >= gb:
		return trimFloat(float64(mb)/float64(gb)) + " GB"
	default:
		return fmt.Sprintf("%d MB", mb)
	}
}

// trimFloat formats with one decimal, dropping it when it's zero.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}

// FormatPrice returns a price per hour string.
func FormatPrice(perHour float64) string {
	return fmt.Sprintf("%.4f €/h", perHour)
}
