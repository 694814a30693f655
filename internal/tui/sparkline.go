package tui

// sparkRunes maps eight levels to Unicode block elements.
var sparkRunes = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// history keeps the most recent samples up to a fixed capacity.
type history struct {
	samples []float64
	limit   int
}

func newHistory(limit int) history {
	if limit < 1 {
		limit = 1
	}
	return history{limit: limit}
}

// push appends v, dropping the oldest sample when full.
func (h *history) push(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
}

// last returns the newest sample, or 0.
func (h history) last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// sparkline renders percentages in [0, 100] as block characters.
func sparkline(values []float64) string {
	out := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		out[i] = sparkRunes[min(int(v/100*7), 7)]
	}
	return string(out)
}
