package orchestration

import "time"

// ProgressTracker turns completion counts into a fraction and an ETA.
// The ETA is a linear projection of the elapsed time.
type ProgressTracker struct {
	total int
	done  int
	start time.Time
	now   func() time.Time
}

// NewProgressTracker creates a tracker for total jobs. Returns nil if
// total <= 0.
func NewProgressTracker(total int) *ProgressTracker {
	if total <= 0 {
		return nil
	}
	return &ProgressTracker{total: total, start: time.Now(), now: time.Now}
}

// Update records an update and returns the fraction done (0.0 to 1.0) and
// the estimated time remaining.
func (p *ProgressTracker) Update(u ProgressUpdate) (float64, time.Duration) {
	if u.Done > p.done {
		p.done = min(u.Done, p.total)
	}
	return p.Fraction(), p.ETA()
}

// Fraction returns the completed share without updating.
func (p *ProgressTracker) Fraction() float64 {
	return float64(p.done) / float64(p.total)
}

// ETA returns the estimated time remaining, or 0 before the first update.
func (p *ProgressTracker) ETA() time.Duration {
	if p.done == 0 || p.done >= p.total {
		return 0
	}
	elapsed := p.now().Sub(p.start)
	perJob := elapsed / time.Duration(p.done)
	return perJob * time.Duration(p.total-p.done)
}

// Done returns the number of completed jobs.
func (p *ProgressTracker) Done() int { return p.done }

// Total returns the number of jobs being tracked.
func (p *ProgressTracker) Total() int { return p.total }

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
