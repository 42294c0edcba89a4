//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/hassecalc/internal/orchestration"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

const (
	// TruncationLimit is the digit count from which a result is shortened in
	// standard output.
	TruncationLimit = 120
	// DisplayEdges is the number of digits kept at each end of a shortened
	// result.
	DisplayEdges = 30
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// FormatETA renders a remaining-time estimate; zero renders as "--".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "--"
	}
	if eta < time.Second {
		return "<1s"
	}
	return eta.Round(time.Second).String()
}

// FormatProgressLine renders the spinner suffix for a batch in progress.
func FormatProgressLine(done, total int, fraction float64, eta time.Duration) string {
	return fmt.Sprintf(" %s %3.0f%% (%d/%d) ETA %s", progressBar(fraction, ProgressBarWidth), fraction*100, done, total, FormatETA(eta))
}

// DisplayProgress shows a spinner with a progress bar until progressChan is
// closed, then prints the final line. It calls wg.Done on return.
//
// Parameters:
//   - wg: The WaitGroup to signal on completion.
//   - progressChan: Updates from the batch workers.
//   - total: The number of jobs in the batch.
//   - out: The writer for the spinner.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	tracker := orchestration.NewProgressTracker(total)
	if tracker == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(FormatProgressLine(0, total, 0, 0))
	s.Start()
	for u := range progressChan {
		fraction, eta := tracker.Update(u)
		s.UpdateSuffix(FormatProgressLine(tracker.Done(), total, fraction, eta))
	}
	s.Stop()
	fmt.Fprintln(out, "Evaluated"+FormatProgressLine(tracker.Done(), total, tracker.Fraction(), 0))
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
