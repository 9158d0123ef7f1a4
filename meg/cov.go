// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NoiseCovariance estimates the sensor noise covariance from the
// pre-stimulus baseline of each epoch (samples with time <= tmax, e.g.,
// tmax = 0 for everything before the stimulus), after removing the
// per-channel baseline mean of each trial.  A small diagonal loading
// (reg times the mean diagonal) keeps the estimate invertible.
func (ep *Epochs) NoiseCovariance(tmax, reg float64) (*mat.SymDense, error) {
	var idxs []int
	for si, t := range ep.Times {
		if t <= tmax {
			idxs = append(idxs, si)
		}
	}
	if len(idxs) < 2 {
		return nil, fmt.Errorf("meg.NoiseCovariance: no baseline samples with t <= %v", tmax)
	}
	nch := len(ep.Info)
	cov := mat.NewSymDense(nch, nil)
	nobs := 0
	for _, trial := range ep.Data {
		// per-trial, per-channel baseline mean
		means := make([]float64, nch)
		for ci := 0; ci < nch; ci++ {
			for _, si := range idxs {
				means[ci] += trial[ci][si]
			}
			means[ci] /= float64(len(idxs))
		}
		for _, si := range idxs {
			for ci := 0; ci < nch; ci++ {
				vi := trial[ci][si] - means[ci]
				for cj := ci; cj < nch; cj++ {
					vj := trial[cj][si] - means[cj]
					cov.SetSym(ci, cj, cov.At(ci, cj)+vi*vj)
				}
			}
			nobs++
		}
	}
	nf := float64(nobs - 1)
	var diagMean float64
	for ci := 0; ci < nch; ci++ {
		for cj := ci; cj < nch; cj++ {
			cov.SetSym(ci, cj, cov.At(ci, cj)/nf)
		}
		diagMean += cov.At(ci, ci)
	}
	diagMean /= float64(nch)
	if reg > 0 {
		load := reg * diagMean
		for ci := 0; ci < nch; ci++ {
			cov.SetSym(ci, ci, cov.At(ci, ci)+load)
		}
	}
	return cov, nil
}
