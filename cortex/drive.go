// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"
	"math/rand"
	"sort"
)

// cortex.Drive is a named, timed exogenous input: each receiving cell in a
// targeted population gets its own virtual drive cell, whose NumSpikes
// event times are drawn from a Gaussian with the given mean and standard
// deviation (msec), seeded by EventSeed for exact reproducibility.
// Synaptic effect is given by per-population AMPA and NMDA weight maps and
// a per-population conduction delay map; the drive's Loc determines which
// compartment zone receives the input.
type Drive struct {
	Name      string             `desc:"name of the drive, e.g., evprox1"`
	Loc       SynLoc             `desc:"anatomical target zone: Proximal (lemniscal) or Distal (cortico-cortical)"`
	Mu        float64            `desc:"mean of the Gaussian event time (msec)"`
	Sigma     float64            `desc:"standard deviation of the event time (msec) -- 0 produces one synchronous event shared by all drive cells"`
	NumSpikes int                `def:"1" min:"1" desc:"number of spike events per virtual drive cell"`
	WtAMPA    map[string]float32 `desc:"AMPA weight (nS) per receiving population name -- populations absent from the map are not targeted"`
	WtNMDA    map[string]float32 `desc:"NMDA weight (nS) per receiving population name"`
	Delays    map[string]float32 `desc:"conduction delay (msec) per receiving population name -- required for every targeted population"`
	EventSeed int64              `desc:"random seed for event time generation -- same seed reproduces identical spike timing"`
}

// NewDrive returns a new drive with the given name and target zone,
// with NumSpikes defaulted to 1.
func NewDrive(name string, loc SynLoc) *Drive {
	dr := &Drive{Name: name, Loc: loc, NumSpikes: 1}
	dr.WtAMPA = make(map[string]float32)
	dr.WtNMDA = make(map[string]float32)
	dr.Delays = make(map[string]float32)
	return dr
}

// Targets returns the sorted list of population names this drive projects
// to: the union of the AMPA and NMDA weight map keys.  Sorted so that
// event generation order is deterministic.
func (dr *Drive) Targets() []string {
	set := make(map[string]bool, len(dr.WtAMPA)+len(dr.WtNMDA))
	for nm := range dr.WtAMPA {
		set[nm] = true
	}
	for nm := range dr.WtNMDA {
		set[nm] = true
	}
	tgs := make([]string, 0, len(set))
	for nm := range set {
		tgs = append(tgs, nm)
	}
	sort.Strings(tgs)
	return tgs
}

// Validate checks that every population referenced in the weight and delay
// maps exists in the network, and that every targeted population has a
// delay.  Returns an error describing the first violation found.
func (dr *Drive) Validate(nt *Network) error {
	if dr.NumSpikes < 1 {
		return fmt.Errorf("drive %v: NumSpikes must be >= 1, got %v", dr.Name, dr.NumSpikes)
	}
	for _, mp := range []map[string]float32{dr.WtAMPA, dr.WtNMDA, dr.Delays} {
		for nm := range mp {
			if _, err := nt.PopByNameTry(nm); err != nil {
				return fmt.Errorf("drive %v: unknown population: %v", dr.Name, nm)
			}
		}
	}
	for _, nm := range dr.Targets() {
		if _, ok := dr.Delays[nm]; !ok {
			return fmt.Errorf("drive %v: no delay specified for targeted population: %v", dr.Name, nm)
		}
	}
	return nil
}

// EventTimes generates the spike times (msec) for each of n virtual drive
// cells, using the drive's EventSeed offset by the given trial seed
// increment.  With Sigma == 0 all cells share one synchronous set of
// times; otherwise each cell is jittered independently.  Negative times
// are clipped to 0.
func (dr *Drive) EventTimes(n int, seedOff int64) [][]float64 {
	rnd := rand.New(rand.NewSource(dr.EventSeed + seedOff))
	evts := make([][]float64, n)
	if dr.Sigma == 0 {
		shared := make([]float64, dr.NumSpikes)
		for si := range shared {
			shared[si] = dr.Mu
		}
		for ci := range evts {
			evts[ci] = shared
		}
		return evts
	}
	for ci := range evts {
		ts := make([]float64, dr.NumSpikes)
		for si := range ts {
			t := rnd.NormFloat64()*dr.Sigma + dr.Mu
			if t < 0 {
				t = 0
			}
			ts[si] = t
		}
		evts[ci] = ts
	}
	return evts
}

// DriveEvent records one input spike generated by a drive, for raster /
// histogram displays
type DriveEvent struct {
	Time  float32 `desc:"event time (msec)"`
	Drive string  `desc:"name of the generating drive"`
	Cell  int     `desc:"index of the virtual drive cell"`
}
