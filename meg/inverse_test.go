// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// testForward builds a small forward model with well-separated sensor
// patterns per source
func testForward() *Forward {
	fw := &Forward{
		ChanNames: []string{"MEG001", "MEG002", "MEG003", "MEG004"},
		Srcs: []SrcVertex{
			{Hemi: LH, Vertex: 10},
			{Hemi: LH, Vertex: 20},
			{Hemi: RH, Vertex: 30},
		},
	}
	fw.Gain = mat.NewDense(4, 3, []float64{
		1.0, 0.1, 0.0,
		0.8, 0.2, 0.1,
		0.1, 0.9, 0.2,
		0.0, 0.1, 1.0,
	})
	return fw
}

func identityCov(n int) *mat.SymDense {
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, 1)
	}
	return cov
}

// evokedFromSensors wraps a single sensor pattern as a one-sample evoked
func evokedFromSensors(names []string, vals []float64) *Evoked {
	ev := &Evoked{SRate: 100, Times: []float64{0}, NTrials: 1}
	for ci, nm := range names {
		ev.Info = append(ev.Info, ChanInfo{Name: nm, Type: Grad})
		ev.Data = append(ev.Data, []float64{vals[ci]})
	}
	return ev
}

func TestInverseDeterminism(t *testing.T) {
	fw := testForward()
	cov := identityCov(4)
	ip := &InvParams{}
	ip.Defaults()
	if ip.Lambda2() != 1.0/9.0 {
		t.Errorf("default lambda2: %v, cor: 1/9", ip.Lambda2())
	}

	i1, err := MakeInverse(fw, cov, ip)
	if err != nil {
		t.Fatalf("MakeInverse failed: %v", err)
	}
	i2, err := MakeInverse(fw, cov, ip)
	if err != nil {
		t.Fatalf("second MakeInverse failed: %v", err)
	}
	for ri := 0; ri < 3; ri++ {
		for ci := 0; ci < 4; ci++ {
			if i1.K.At(ri, ci) != i2.K.At(ri, ci) {
				t.Fatalf("inverse kernel not deterministic at %v,%v", ri, ci)
			}
		}
	}
}

func TestInverseRecovery(t *testing.T) {
	fw := testForward()
	cov := identityCov(4)
	ip := &InvParams{}
	ip.Defaults()
	inv, err := MakeInverse(fw, cov, ip)
	if err != nil {
		t.Fatalf("MakeInverse failed: %v", err)
	}

	// sensor data from source 0 alone: the largest estimated source
	// should be source 0, with matching sign
	col := mat.Col(nil, 0, fw.Gain)
	ev := evokedFromSensors(fw.ChanNames, col)
	stc, err := inv.Apply(ev)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	best := 0
	bestAbs := 0.0
	for si := 0; si < 3; si++ {
		v := math.Abs(stc.Data.At(si, 0))
		if v > bestAbs {
			bestAbs = v
			best = si
		}
	}
	if best != 0 {
		t.Errorf("largest estimate at source %v, cor: 0", best)
	}
	if stc.Data.At(0, 0) <= 0 {
		t.Errorf("estimate for source 0 should be positive: %v", stc.Data.At(0, 0))
	}

	// negated data gives the exactly negated estimate (linearity)
	for ci := range col {
		col[ci] = -col[ci]
	}
	ev = evokedFromSensors(fw.ChanNames, col)
	stc2, _ := inv.Apply(ev)
	for si := 0; si < 3; si++ {
		if stc2.Data.At(si, 0) != -stc.Data.At(si, 0) {
			t.Errorf("inverse is not linear at source %v", si)
		}
	}
}

func TestInverseChannelMismatch(t *testing.T) {
	fw := testForward()
	cov := identityCov(4)
	ip := &InvParams{}
	ip.Defaults()
	inv, err := MakeInverse(fw, cov, ip)
	if err != nil {
		t.Fatalf("MakeInverse failed: %v", err)
	}
	ev := evokedFromSensors([]string{"MEG001", "MEG002"}, []float64{1, 2})
	if _, err := inv.Apply(ev); err == nil {
		t.Errorf("Apply with missing channels should fail")
	}

	badCov := identityCov(3)
	if _, err := MakeInverse(fw, badCov, ip); err == nil {
		t.Errorf("MakeInverse with mismatched covariance should fail")
	}
}

func TestForwardTSVRoundTrip(t *testing.T) {
	fw := testForward()
	fn := t.TempDir() + "/fwd.tsv"
	if err := fw.SaveTSV(fn); err != nil {
		t.Fatalf("SaveTSV failed: %v", err)
	}
	fw2, err := OpenForwardTSV(fn)
	if err != nil {
		t.Fatalf("OpenForwardTSV failed: %v", err)
	}
	if fw2.NChans() != 4 || fw2.NSrcs() != 3 {
		t.Fatalf("loaded forward shape: %v x %v", fw2.NChans(), fw2.NSrcs())
	}
	for ri := 0; ri < 4; ri++ {
		for ci := 0; ci < 3; ci++ {
			if math.Abs(fw.Gain.At(ri, ci)-fw2.Gain.At(ri, ci)) > 1e-12 {
				t.Fatalf("gain differs at %v,%v", ri, ci)
			}
		}
	}
	if fw2.Srcs[2].Hemi != RH || fw2.Srcs[2].Vertex != 30 {
		t.Errorf("source 2: %v %v", fw2.Srcs[2].Hemi, fw2.Srcs[2].Vertex)
	}
}
