// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"
	"math"
)

// BandPassKernel designs a Hamming windowed-sinc FIR band-pass kernel
// with corner frequencies lo and hi (Hz) at the given sampling rate,
// with numTaps coefficients (forced odd so the filter is zero-phase when
// applied centered).  The kernel is the difference of two unit-DC-gain
// low-pass kernels.
func BandPassKernel(srate, lo, hi float64, numTaps int) ([]float64, error) {
	if lo < 0 || hi <= lo || hi >= srate/2 {
		return nil, fmt.Errorf("meg.BandPassKernel: invalid band %v - %v Hz at srate %v", lo, hi, srate)
	}
	if numTaps < 3 {
		return nil, fmt.Errorf("meg.BandPassKernel: numTaps must be >= 3: %v", numTaps)
	}
	if numTaps%2 == 0 {
		numTaps++
	}
	lpHi := lowPassKernel(srate, hi, numTaps)
	lpLo := lowPassKernel(srate, lo, numTaps)
	kern := make([]float64, numTaps)
	for i := range kern {
		kern[i] = lpHi[i] - lpLo[i]
	}
	return kern, nil
}

// lowPassKernel returns a Hamming windowed-sinc low-pass kernel with
// cutoff fc (Hz), normalized to unit DC gain.  fc = 0 gives an all-zero
// kernel (degenerate low-pass passing nothing, used for the band-pass
// difference when lo = 0 is requested as a pure low-pass).
func lowPassKernel(srate, fc float64, numTaps int) []float64 {
	kern := make([]float64, numTaps)
	if fc <= 0 {
		return kern
	}
	m := numTaps - 1
	wc := 2 * math.Pi * fc / srate
	var sum float64
	for i := range kern {
		x := float64(i) - float64(m)/2
		var s float64
		if x == 0 {
			s = wc
		} else {
			s = math.Sin(wc*x) / x
		}
		// Hamming window
		w := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(m))
		kern[i] = s * w
		sum += kern[i]
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern
}

// FilterSeries applies the given symmetric FIR kernel to one series,
// centered (zero phase), returning a new slice of the same length.
// Samples beyond the ends are treated as zero.
func FilterSeries(sig, kern []float64) []float64 {
	n := len(sig)
	kh := len(kern) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j, kv := range kern {
			si := i + j - kh
			if si < 0 || si >= n {
				continue
			}
			sum += sig[si] * kv
		}
		out[i] = sum
	}
	return out
}

// BandPass band-pass filters all data channels (Grad, Mag, EEG) of the
// recording in place between lo and hi Hz, leaving trigger and misc
// channels untouched.  The kernel length defaults to one cycle of the
// low corner frequency (or 1 sec for lo = 0), capped at a tenth of the
// recording.
func (rw *Raw) BandPass(lo, hi float64) error {
	numTaps := int(rw.SRate)
	if lo > 0 {
		numTaps = int(rw.SRate / lo)
	}
	if max := rw.NSamples() / 10; numTaps > max {
		numTaps = max
	}
	kern, err := BandPassKernel(rw.SRate, lo, hi, numTaps)
	if err != nil {
		return err
	}
	for _, ci := range rw.Picks(Grad, Mag, EEG) {
		rw.Data[ci] = FilterSeries(rw.Data[ci], kern)
	}
	return nil
}
