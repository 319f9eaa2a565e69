// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "github.com/aclements/smallmultiples/visual"

// Recorder is a visual.Surface and visual.EventService that records
// what it is asked to do.
type Recorder struct {
	// Calls lists the surface calls and events in order, such as
	// "clear", "draw", and "finished".
	Calls []string

	// Frame is the last frame drawn.
	Frame *visual.Frame

	// Errs holds the errors passed to RenderingFailed.
	Errs []error

	// DrawErr, if set, is returned by Draw.
	DrawErr error
}

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, "clear")
}

func (r *Recorder) DrawLanding(f *visual.Frame) {
	r.Calls = append(r.Calls, "landing")
	r.Frame = f
}

func (r *Recorder) DrawMinimised(f *visual.Frame) {
	r.Calls = append(r.Calls, "minimised")
	r.Frame = f
}

func (r *Recorder) Draw(f *visual.Frame) error {
	r.Calls = append(r.Calls, "draw")
	if r.DrawErr != nil {
		return r.DrawErr
	}
	r.Frame = f
	return nil
}

func (r *Recorder) RenderingStarted(*visual.UpdateOptions) {
	r.Calls = append(r.Calls, "started")
}

func (r *Recorder) RenderingFinished(*visual.UpdateOptions) {
	r.Calls = append(r.Calls, "finished")
}

func (r *Recorder) RenderingFailed(_ *visual.UpdateOptions, err error) {
	r.Calls = append(r.Calls, "failed")
	r.Errs = append(r.Errs, err)
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.Calls, r.Frame, r.Errs = nil, nil, nil
}
