package orchestration

import "sync"

// ProgressTracker counts finished strategy runs. Both the CLI spinner and
// the TUI use it to render "done/total".
type ProgressTracker struct {
	mu     sync.Mutex
	total  int
	done   int
	failed int
	active string
}

// NewProgressTracker returns a tracker for total runs. It returns nil if
// total <= 0.
func NewProgressTracker(total int) *ProgressTracker {
	if total <= 0 {
		return nil
	}
	return &ProgressTracker{total: total}
}

// Update applies one progress update.
func (p *ProgressTracker) Update(u ProgressUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !u.Done {
		p.active = u.Key
		return
	}
	p.done++
	if u.Err != nil {
		p.failed++
	}
	if p.active == u.Key {
		p.active = ""
	}
}

// Fraction returns the finished share of runs in [0, 1].
func (p *ProgressTracker) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done >= p.total {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

// Counts returns finished, failed and total runs.
func (p *ProgressTracker) Counts() (done, failed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.failed, p.total
}

// Active returns the key of the last started, unfinished run.
func (p *ProgressTracker) Active() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// DrainChannel reads all updates until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
