// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"
	"math"
)

// EpochParams configure epoching around stimulus events
type EpochParams struct {
	Tmin   float64              `def:"-0.1" desc:"epoch start relative to event (sec)"`
	Tmax   float64              `def:"0.4" desc:"epoch end relative to event (sec)"`
	Reject map[ChanType]float64 `desc:"peak-to-peak rejection threshold per channel type -- epochs exceeding any threshold are dropped; channel types absent from the map are not checked"`
}

func (ep *EpochParams) Defaults() {
	ep.Tmin = -0.1
	ep.Tmax = 0.4
	ep.Reject = map[ChanType]float64{
		Grad: 4000e-13,
		Mag:  4e-12,
		EEG:  40e-6,
	}
}

// Epochs are fixed-length windows of the recording around each stimulus
// event, restricted to the data channels, after amplitude rejection
type Epochs struct {
	Info    []ChanInfo    `desc:"metadata for the retained (data) channels"`
	SRate   float64       `desc:"sampling rate (Hz)"`
	Times   []float64     `desc:"sample times relative to the event (sec)"`
	Data    [][][]float64 `desc:"trial x channel x sample"`
	Dropped int           `desc:"number of epochs rejected by amplitude thresholds"`
}

// NTrials returns the number of retained epochs
func (ep *Epochs) NTrials() int {
	return len(ep.Data)
}

// MakeEpochs extracts one epoch per event from the recording, dropping
// events whose window falls outside the recording and epochs whose
// peak-to-peak amplitude exceeds the per-channel-type thresholds.
// Thresholds are applied uniformly across all trials, so the retained
// and dropped counts are deterministic for fixed inputs.
func (rw *Raw) MakeEpochs(evs []Event, pr *EpochParams) (*Epochs, error) {
	if err := rw.Validate(); err != nil {
		return nil, err
	}
	picks := rw.Picks(Grad, Mag, EEG)
	if len(picks) == 0 {
		return nil, fmt.Errorf("meg.MakeEpochs: no data channels in recording")
	}
	smin := int(math.Round(pr.Tmin * rw.SRate))
	smax := int(math.Round(pr.Tmax * rw.SRate))
	if smax <= smin {
		return nil, fmt.Errorf("meg.MakeEpochs: empty window: Tmin %v, Tmax %v", pr.Tmin, pr.Tmax)
	}
	nsamp := smax - smin + 1

	ep := &Epochs{SRate: rw.SRate}
	for _, ci := range picks {
		ep.Info = append(ep.Info, rw.Info[ci])
	}
	ep.Times = make([]float64, nsamp)
	for si := range ep.Times {
		ep.Times[si] = float64(smin+si) / rw.SRate
	}

	for _, ev := range evs {
		lo := ev.Sample + smin
		hi := ev.Sample + smax
		if lo < 0 || hi >= rw.NSamples() {
			continue
		}
		trial := make([][]float64, len(picks))
		reject := false
		for pi, ci := range picks {
			seg := make([]float64, nsamp)
			copy(seg, rw.Data[ci][lo:hi+1])
			trial[pi] = seg
			if thr, ok := pr.Reject[rw.Info[ci].Type]; ok {
				mn, mx := seg[0], seg[0]
				for _, v := range seg {
					if v < mn {
						mn = v
					}
					if v > mx {
						mx = v
					}
				}
				if mx-mn > thr {
					reject = true
				}
			}
		}
		if reject {
			ep.Dropped++
			continue
		}
		ep.Data = append(ep.Data, trial)
	}
	if ep.NTrials() == 0 {
		return nil, fmt.Errorf("meg.MakeEpochs: all %v epochs rejected or out of bounds", len(evs))
	}
	return ep, nil
}

// Evoked is the trial-averaged response: channel x sample
type Evoked struct {
	Info    []ChanInfo  `desc:"channel metadata"`
	SRate   float64     `desc:"sampling rate (Hz)"`
	Times   []float64   `desc:"sample times relative to the event (sec)"`
	Data    [][]float64 `desc:"channel x sample average"`
	NTrials int         `desc:"number of trials averaged"`
}

// Average returns the trial-averaged evoked response
func (ep *Epochs) Average() *Evoked {
	ev := &Evoked{Info: ep.Info, SRate: ep.SRate, Times: ep.Times, NTrials: ep.NTrials()}
	nch := len(ep.Info)
	nsamp := len(ep.Times)
	ev.Data = make([][]float64, nch)
	nf := float64(ep.NTrials())
	for ci := 0; ci < nch; ci++ {
		ev.Data[ci] = make([]float64, nsamp)
		for _, trial := range ep.Data {
			for si, v := range trial[ci] {
				ev.Data[ci][si] += v
			}
		}
		for si := range ev.Data[ci] {
			ev.Data[ci][si] /= nf
		}
	}
	return ev
}
