package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner is an indeterminate progress indicator. On non-terminal writers it
// prints its description once and otherwise stays silent.
type Spinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// StartSpinner starts a spinner on w labelled with description. It animates
// only when w is a terminal.
func StartSpinner(w io.Writer, description string) *Spinner {
	return startSpinner(w, description, IsTerminal(w))
}

// StartStatus prints description once without animating. Use it when other
// output is written to w while the work runs.
func StartStatus(w io.Writer, description string) *Spinner {
	return startSpinner(w, description, false)
}

func startSpinner(w io.Writer, description string, animate bool) *Spinner {
	s := &Spinner{done: make(chan struct{})}
	if !animate {
		fmt.Fprintln(w, description)
		return s
	}

	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				_ = s.bar.Add(1)
			}
		}
	}()
	return s
}

// Stop halts the spinner and clears it from the terminal. Safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		if s.bar != nil {
			_ = s.bar.Finish()
		}
	})
}
