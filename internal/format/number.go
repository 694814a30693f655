package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a string of decimal
// digits, keeping a leading minus sign in place.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatInt formats an integer with thousands separators.
func FormatInt(n int) string {
	return FormatNumberString(strconv.Itoa(n))
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatThroughput renders elements per second for n elements processed in
// the given number of seconds.
func FormatThroughput(n int, seconds float64) string {
	if seconds <= 0 {
		return "n/a"
	}
	rate := float64(n) / seconds
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2f G/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2f M/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2f K/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f /s", rate)
}
