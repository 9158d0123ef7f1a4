// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"
	"math"
)

// Event is one stimulus onset: the sample index where the trigger
// channel rose, and the integer code it rose to
type Event struct {
	Sample int `desc:"sample index of the rising edge"`
	Code   int `desc:"trigger code (channel value after the edge)"`
}

// FindEvents scans the named trigger channel for rising edges and
// returns one event per edge.  The trigger is read as rounded integer
// values; an edge is any transition from a lower to a higher value, and
// the event code is the value after the transition.
func (rw *Raw) FindEvents(stimChan string) ([]Event, error) {
	ci, err := rw.ChanIdxTry(stimChan)
	if err != nil {
		return nil, err
	}
	if rw.Info[ci].Type != Stim {
		return nil, fmt.Errorf("meg.FindEvents: channel %v is type %v, not Stim",
			stimChan, rw.Info[ci].Type)
	}
	sig := rw.Data[ci]
	var evs []Event
	prev := int(math.Round(sig[0]))
	for si := 1; si < len(sig); si++ {
		cur := int(math.Round(sig[si]))
		if cur > prev {
			evs = append(evs, Event{Sample: si, Code: cur})
		}
		prev = cur
	}
	if len(evs) == 0 {
		return nil, fmt.Errorf("meg.FindEvents: no events found on channel %v", stimChan)
	}
	return evs, nil
}

// FilterEvents returns only the events with the given code
func FilterEvents(evs []Event, code int) []Event {
	var out []Event
	for _, ev := range evs {
		if ev.Code == code {
			out = append(out, ev)
		}
	}
	return out
}
