package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-pathtracer/pkg/core"
)

const progressBarWidth = 30

// progressReporter turns per-scanline callbacks into a progress line. On a
// terminal it redraws one line in place; otherwise it writes log lines. The
// rows-per-second estimate is smoothed with a critically damped spring so the
// ETA does not jump with every scanline.
type progressReporter struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	logger      core.Logger
	now         func() time.Time

	spring    harmonica.Spring
	start     time.Time
	last      time.Time
	lastRows  int
	rowsDone  int
	totalRows int
	rate      float64 // smoothed rows per second
	rateVel   float64
	drawn     bool
}

func newProgressReporter(out io.Writer, interactive bool, logger core.Logger, now func() time.Time) *progressReporter {
	if logger == nil {
		logger = core.DiscardLogger()
	}
	start := now()
	return &progressReporter{
		out:         out,
		interactive: interactive,
		logger:      logger,
		now:         now,
		spring:      harmonica.NewSpring(harmonica.FPS(10), 6.0, 1.0),
		start:       start,
		last:        start,
	}
}

// Update records that rowsDone of totalRows scanlines are complete
func (p *progressReporter) Update(rowsDone, totalRows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if elapsed := now.Sub(p.last).Seconds(); elapsed > 0 {
		instant := float64(rowsDone-p.lastRows) / elapsed
		if p.rate == 0 {
			p.rate = instant
		} else {
			p.rate, p.rateVel = p.spring.Update(p.rate, p.rateVel, instant)
		}
		p.last = now
		p.lastRows = rowsDone
	}
	p.rowsDone, p.totalRows = rowsDone, totalRows

	if p.interactive {
		fmt.Fprintf(p.out, "\r%s", p.line())
		p.drawn = true
	} else {
		p.logger.Printf("%s\n", p.line())
	}
}

// ETA estimates the time left from the smoothed row rate
func (p *progressReporter) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eta()
}

func (p *progressReporter) eta() time.Duration {
	if p.rate <= 0 || p.totalRows == 0 {
		return 0
	}
	remaining := float64(p.totalRows - p.rowsDone)
	return time.Duration(remaining / p.rate * float64(time.Second)).Round(time.Second)
}

func (p *progressReporter) line() string {
	fraction := 0.0
	if p.totalRows > 0 {
		fraction = float64(p.rowsDone) / float64(p.totalRows)
	}
	filled := int(fraction * progressBarWidth)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled)
	return fmt.Sprintf("[%s] %3.0f%% %d/%d rows, %.1f rows/s, eta %s",
		bar, fraction*100, p.rowsDone, p.totalRows, p.rate, p.eta())
}

// Done terminates the in-place line
func (p *progressReporter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintf(p.out, "\n")
		p.drawn = false
	}
	p.logger.Printf("Finished %d/%d rows in %s\n", p.rowsDone, p.totalRows, p.now().Sub(p.start).Round(time.Millisecond))
}
