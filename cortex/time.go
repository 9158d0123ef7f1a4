// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

// cortex.Time contains the timing state for running a simulation trial
type Time struct {
	Time       float32 `desc:"accumulated amount of time the network has been running, in simulation-time msec"`
	Cycle      int     `desc:"cycle counter: number of iterations of activation updating on the current trial"`
	CycleTot   int     `desc:"total cycle count -- increments continuously from whenever it was last reset"`
	TimePerCyc float32 `def:"0.025" desc:"amount of time (msec) to increment per cycle"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerCyc = 0.025
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	tm.CycleTot = 0
	if tm.TimePerCyc == 0 {
		tm.Defaults()
	}
}

// TrialStart resets the within-trial counters at the start of a new trial
func (tm *Time) TrialStart() {
	tm.Time = 0
	tm.Cycle = 0
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.TimePerCyc
}
