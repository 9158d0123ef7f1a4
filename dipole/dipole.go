// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dipole provides the aggregate current-dipole time-series record
produced by the cortex column simulation, with the standard
post-processing applied to compare against empirical source estimates:
moving-average smoothing, linear rescaling, and averaging across trials,
plus etable-based CSV I/O.
*/
package dipole

import (
	"fmt"
	"log"

	"github.com/emer/etable/convolve"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
)

// dipole.Dipole is one trial's current-dipole time series: the aggregate
// signal plus the separate layer 2/3 and layer 5 contributions, in
// nanoampere-meters (nAm), sampled at fixed intervals.
type Dipole struct {
	Times []float64 `desc:"sample times (msec)"`
	Agg   []float64 `desc:"aggregate (L2/3 + L5) dipole moment (nAm)"`
	L2    []float64 `desc:"layer 2/3 pyramidal contribution (nAm)"`
	L5    []float64 `desc:"layer 5 pyramidal contribution (nAm)"`
}

// New returns a new Dipole with capacity for n samples
func New(n int) *Dipole {
	dp := &Dipole{}
	dp.Times = make([]float64, 0, n)
	dp.Agg = make([]float64, 0, n)
	dp.L2 = make([]float64, 0, n)
	dp.L5 = make([]float64, 0, n)
	return dp
}

// Add appends one sample
func (dp *Dipole) Add(t, agg, l2, l5 float64) {
	dp.Times = append(dp.Times, t)
	dp.Agg = append(dp.Agg, agg)
	dp.L2 = append(dp.L2, l2)
	dp.L5 = append(dp.L5, l5)
}

// Len returns the number of samples
func (dp *Dipole) Len() int {
	return len(dp.Times)
}

// uniformKernel returns a full uniform (moving average) kernel of given
// half-width: 2*half+1 values summing to 1.  convolve.Slice64 requires
// the full odd-sized kernel and renormalizes it at the edges.
func uniformKernel(half int) []float64 {
	kern := make([]float64, 2*half+1)
	v := 1 / float64(len(kern))
	for i := range kern {
		kern[i] = v
	}
	return kern
}

// Smooth applies a centered moving-average of the given window size (in
// samples, rounded up to an odd kernel length) to all three signals, in
// place.  The operation is linear, so it commutes with Scale.
// Signals shorter than the kernel are left unchanged.
func (dp *Dipole) Smooth(window int) {
	if window <= 1 || dp.Len() == 0 {
		return
	}
	kern := uniformKernel(window / 2)
	var out []float64
	for _, sig := range [][]float64{dp.Agg, dp.L2, dp.L5} {
		if err := convolve.Slice64(&out, sig, kern); err != nil {
			log.Println(err)
			return
		}
		copy(sig, out)
	}
}

// Scale multiplies all three signals by the given factor, in place.
// This is the fixed dimensionless calibration matching the simulated
// column cross-section to the empirically estimated source.
func (dp *Dipole) Scale(fctr float64) {
	for _, sig := range [][]float64{dp.Agg, dp.L2, dp.L5} {
		for i := range sig {
			sig[i] *= fctr
		}
	}
}

// Average returns the sample-wise mean across the given trials, which
// must all have the same length.  Returns nil for an empty list.
func Average(dpls []*Dipole) *Dipole {
	if len(dpls) == 0 {
		return nil
	}
	n := dpls[0].Len()
	avg := New(n)
	nf := float64(len(dpls))
	for si := 0; si < n; si++ {
		var agg, l2, l5 float64
		for _, dp := range dpls {
			agg += dp.Agg[si]
			l2 += dp.L2[si]
			l5 += dp.L5[si]
		}
		avg.Add(dpls[0].Times[si], agg/nf, l2/nf, l5/nf)
	}
	return avg
}

// Table returns the dipole as an etable.Table with Time, Agg, L2, L5
// columns, for logging and plotting
func (dp *Dipole) Table() *etable.Table {
	sch := etable.Schema{
		{Name: "Time", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Agg", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "L2", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "L5", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, dp.Len())
	dt.SetMetaData("name", "Dipole")
	dt.SetMetaData("desc", "aggregate current dipole moment (nAm)")
	for si := 0; si < dp.Len(); si++ {
		dt.SetCellFloat("Time", si, dp.Times[si])
		dt.SetCellFloat("Agg", si, dp.Agg[si])
		dt.SetCellFloat("L2", si, dp.L2[si])
		dt.SetCellFloat("L5", si, dp.L5[si])
	}
	return dt
}

// SaveCSV saves the dipole to a tab-separated file via etable
func (dp *Dipole) SaveCSV(filename string) error {
	dt := dp.Table()
	return dt.SaveCSV(gi.FileName(filename), etable.Tab, etable.Headers)
}

// FromTable loads the dipole from a table with Time, Agg, L2, L5 columns
func FromTable(dt *etable.Table) (*Dipole, error) {
	for _, cnm := range []string{"Time", "Agg", "L2", "L5"} {
		if _, err := dt.ColByNameTry(cnm); err != nil {
			return nil, fmt.Errorf("dipole.FromTable: %v", err)
		}
	}
	dp := New(dt.Rows)
	for si := 0; si < dt.Rows; si++ {
		dp.Add(dt.CellFloat("Time", si), dt.CellFloat("Agg", si),
			dt.CellFloat("L2", si), dt.CellFloat("L5", si))
	}
	return dp, nil
}

// OpenCSV loads a dipole from a tab-separated file saved by SaveCSV
func OpenCSV(filename string) (*Dipole, error) {
	dt := &etable.Table{}
	err := dt.OpenCSV(gi.FileName(filename), etable.Tab)
	if err != nil {
		return nil, err
	}
	return FromTable(dt)
}
