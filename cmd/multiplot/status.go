// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/ssh/terminal"
)

// A StatusReporter shows a progress line with an ETA on stderr. If
// stderr is not a terminal it does nothing.
type StatusReporter struct {
	update chan<- statusUpdate
	done   chan bool
}

type statusUpdate struct {
	progress float64
	message  string
}

func NewStatusReporter() *StatusReporter {
	if os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(int(os.Stderr.Fd())) {
		return &StatusReporter{}
	}
	update := make(chan statusUpdate)
	sr := &StatusReporter{update: update}
	go sr.loop(update)
	return sr
}

// Progress sets the status line to msg with frac of the work done.
func (sr *StatusReporter) Progress(msg string, frac float64) {
	if sr != nil && sr.update != nil {
		sr.update <- statusUpdate{message: msg, progress: frac}
	}
}

// Stop clears the status line.
func (sr *StatusReporter) Stop() {
	if sr != nil && sr.update != nil {
		sr.done = make(chan bool)
		close(sr.update)
		<-sr.done
		sr.update = nil
	}
}

func (sr *StatusReporter) loop(updates <-chan statusUpdate) {
	const resetLine = "\r\x1b[2K"
	const wrapOff = "\x1b[?7l"
	const wrapOn = "\x1b[?7h"

	tick := time.NewTicker(time.Second / 4)
	defer tick.Stop()

	t0 := time.Now()
	var end time.Time
	var msg string
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				fmt.Fprint(os.Stderr, resetLine)
				close(sr.done)
				return
			}
			msg = update.message
			end = eta(t0, time.Now(), update.progress)

		case <-tick.C:
		}

		fmt.Fprintf(os.Stderr, "%s%s%s, ETA %s%s", resetLine, wrapOff, msg, formatETA(end, time.Now()), wrapOn)
	}
}

// eta extrapolates the finish time from the rate so far.
func eta(t0, now time.Time, frac float64) time.Time {
	if frac <= 0 {
		return time.Time{}
	}
	return t0.Add(time.Duration(float64(now.Sub(t0)) / frac))
}

func formatETA(end, now time.Time) string {
	if end.IsZero() {
		return "unknown"
	}
	d := end.Sub(now)
	// Trim off sub-second precision.
	d -= d % time.Second
	if d <= 0 {
		return "0s"
	}
	return d.String()
}
