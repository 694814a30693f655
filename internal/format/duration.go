package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders a strategy timing with a unit matching its
// magnitude: nanoseconds below 1µs, whole microseconds below 1ms,
// milliseconds with two decimals below 1s, and d rounded to the millisecond
// above. Negative durations render as "0s".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return d.Round(time.Millisecond).String()
	}
}
