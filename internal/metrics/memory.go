package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// Sub returns the growth of the cumulative counters between prev and s.
// HeapAlloc and Sys are kept from s.
func (s MemorySnapshot) Sub(prev MemorySnapshot) MemorySnapshot {
	return MemorySnapshot{
		HeapAlloc:    s.HeapAlloc,
		TotalAlloc:   s.TotalAlloc - prev.TotalAlloc,
		Sys:          s.Sys,
		NumGC:        s.NumGC - prev.NumGC,
		PauseTotalNs: s.PauseTotalNs - prev.PauseTotalNs,
	}
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}
