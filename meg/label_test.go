// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// rank1STC builds a source estimate where every label vertex carries the
// same underlying time course scaled by a per-vertex amplitude
func rank1STC(amps []float64, tc []float64) *SourceEstimate {
	stc := &SourceEstimate{}
	stc.Times = make([]float64, len(tc))
	for ti := range tc {
		stc.Times[ti] = float64(ti) * 0.01
	}
	data := mat.NewDense(len(amps), len(tc), nil)
	for vi, a := range amps {
		stc.Srcs = append(stc.Srcs, SrcVertex{Hemi: LH, Vertex: int32(10 * (vi + 1))})
		for ti, v := range tc {
			data.Set(vi, ti, a*v)
		}
	}
	stc.Data = data
	return stc
}

func TestLabelTCRank1(t *testing.T) {
	n := 50
	base := make([]float64, n)
	for ti := range base {
		base[ti] = math.Sin(2 * math.Pi * float64(ti) / float64(n))
	}
	amps := []float64{3, 2, 2, -1}
	stc := rank1STC(amps, base)

	tc, err := stc.LabelTC(LH, []int32{10, 20, 30, 40})
	if err != nil {
		t.Fatalf("LabelTC failed: %v", err)
	}
	// for rank-1 data the result is the shared time course scaled by
	// ||amps|| / sqrt(nvertices), majority-positive sign
	var anorm float64
	for _, a := range amps {
		anorm += a * a
	}
	scale := math.Sqrt(anorm) / 2
	for ti := range tc {
		cor := scale * base[ti]
		if math.Abs(tc[ti]-cor) > 1e-9 {
			t.Fatalf("sample %v: %v, cor: %v", ti, tc[ti], cor)
		}
	}
}

func TestLabelTCFlipInvariance(t *testing.T) {
	n := 50
	base := make([]float64, n)
	for ti := range base {
		base[ti] = math.Sin(2*math.Pi*float64(ti)/float64(n)) +
			0.3*math.Cos(2*math.Pi*3*float64(ti)/float64(n))
	}
	amps := []float64{3, 2, 2, 1}
	stc1 := rank1STC(amps, base)
	// negate a subset of vertex amplitudes: sign ambiguity should not
	// change the magnitude of the extracted time course
	flipped := []float64{3, -2, 2, -1}
	stc2 := rank1STC(flipped, base)

	verts := []int32{10, 20, 30, 40}
	tc1, err := stc1.LabelTC(LH, verts)
	if err != nil {
		t.Fatalf("LabelTC failed: %v", err)
	}
	tc2, err := stc2.LabelTC(LH, verts)
	if err != nil {
		t.Fatalf("LabelTC failed: %v", err)
	}
	for ti := range tc1 {
		if math.Abs(math.Abs(tc1[ti])-math.Abs(tc2[ti])) > 1e-9 {
			t.Fatalf("magnitudes differ at %v: %v vs %v", ti, tc1[ti], tc2[ti])
		}
	}
}

func TestLabelTCNoVertices(t *testing.T) {
	stc := rank1STC([]float64{1, 2}, []float64{1, 2, 3})
	if _, err := stc.LabelTC(RH, []int32{10, 20}); err == nil {
		t.Errorf("wrong-hemisphere extraction should fail")
	}
	if _, err := stc.LabelTC(LH, []int32{999}); err == nil {
		t.Errorf("unknown-vertex extraction should fail")
	}
}

func TestCalibrate(t *testing.T) {
	tc := []float64{1e-9, -2e-9, 0}
	Calibrate(tc, -1, 1e9)
	cor := []float64{-1, 2, 0}
	for i := range tc {
		if math.Abs(tc[i]-cor[i]) > 1e-12 {
			t.Errorf("sample %v: %v, cor: %v", i, tc[i], cor[i])
		}
	}
}
