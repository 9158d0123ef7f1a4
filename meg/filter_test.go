// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"math"
	"testing"
)

// rmsCentral computes RMS over the central half of a series, avoiding
// filter edge effects
func rmsCentral(sig []float64) float64 {
	n := len(sig)
	var sum float64
	cnt := 0
	for i := n / 4; i < 3*n/4; i++ {
		sum += sig[i] * sig[i]
		cnt++
	}
	return math.Sqrt(sum / float64(cnt))
}

func sine(freq, srate float64, n int) []float64 {
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * freq * float64(i) / srate)
	}
	return sig
}

func TestBandPassResponse(t *testing.T) {
	srate := 100.0
	n := 2000
	kern, err := BandPassKernel(srate, 1, 10, 301)
	if err != nil {
		t.Fatalf("BandPassKernel failed: %v", err)
	}

	// in-band sinusoid passes nearly unchanged
	in := sine(5, srate, n)
	out := FilterSeries(in, kern)
	ratio := rmsCentral(out) / rmsCentral(in)
	if ratio < 0.9 || ratio > 1.1 {
		t.Errorf("in-band 5 Hz gain: %v, expected near 1", ratio)
	}

	// out-of-band sinusoid is strongly attenuated
	in = sine(30, srate, n)
	out = FilterSeries(in, kern)
	ratio = rmsCentral(out) / rmsCentral(in)
	if ratio > 0.1 {
		t.Errorf("out-of-band 30 Hz gain: %v, expected < 0.1", ratio)
	}

	// DC is removed: band-pass kernel sums to ~0
	var ksum float64
	for _, v := range kern {
		ksum += v
	}
	if math.Abs(ksum) > 1e-6 {
		t.Errorf("band-pass kernel DC gain: %v, expected ~0", ksum)
	}
}

func TestBandPassBadParams(t *testing.T) {
	if _, err := BandPassKernel(100, 10, 5, 101); err == nil {
		t.Errorf("hi < lo should fail")
	}
	if _, err := BandPassKernel(100, 1, 60, 101); err == nil {
		t.Errorf("hi above Nyquist should fail")
	}
}

func TestBandPassSkipsStim(t *testing.T) {
	srate := 100.0
	n := 1000
	rw := &Raw{
		SRate: srate,
		Info: []ChanInfo{
			{Name: "MEG001", Type: Grad},
			{Name: "STI101", Type: Stim},
		},
		Data: [][]float64{
			sine(30, srate, n),
			make([]float64, n),
		},
	}
	for si := 500; si < 520; si++ {
		rw.Data[1][si] = 5
	}
	if err := rw.BandPass(1, 10); err != nil {
		t.Fatalf("BandPass failed: %v", err)
	}
	if rw.Data[1][510] != 5 {
		t.Errorf("trigger channel should not be filtered")
	}
	if rmsCentral(rw.Data[0]) > 0.2 {
		t.Errorf("30 Hz on data channel should be attenuated: rms %v", rmsCentral(rw.Data[0]))
	}
}
