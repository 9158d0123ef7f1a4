// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InvParams configure minimum-norm inverse estimation
type InvParams struct {
	SNR float64 `def:"3" desc:"assumed amplitude signal-to-noise ratio -- the regularization is lambda2 = 1 / SNR^2"`
}

func (ip *InvParams) Defaults() {
	ip.SNR = 3
}

// Lambda2 returns the regularization parameter 1 / SNR^2
func (ip *InvParams) Lambda2() float64 {
	return 1 / (ip.SNR * ip.SNR)
}

// meg.Inverse is a prepared minimum-norm inverse operator: a fixed
// linear map from sensor measurements to source-space current estimates,
// built once from a forward model and noise covariance and then applied
// to evoked data.  Fully deterministic.
type Inverse struct {
	ChanNames []string    `desc:"sensor channels the operator consumes, in order"`
	Srcs      []SrcVertex `desc:"source vertices the operator estimates, in order"`
	Lambda2   float64     `desc:"regularization parameter used"`
	K         *mat.Dense  `desc:"nsrc x nchan inverse kernel"`
}

// whitener returns W = Lambda^-1/2 Q^T from the eigendecomposition of
// the noise covariance C = Q Lambda Q^T, so that W C W^T = I.
// Eigenvalues below a relative floor are truncated to zero rows.
func whitener(cov *mat.SymDense) (*mat.Dense, error) {
	n := cov.SymmetricDim()
	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return nil, fmt.Errorf("meg.whitener: eigendecomposition failed")
	}
	vals := es.Values(nil)
	var q mat.Dense
	es.VectorsTo(&q)
	var maxVal float64
	for _, v := range vals {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return nil, fmt.Errorf("meg.whitener: covariance is not positive")
	}
	floor := 1e-12 * maxVal
	w := mat.NewDense(n, n, nil)
	for ri := 0; ri < n; ri++ {
		if vals[ri] <= floor {
			continue
		}
		iv := 1 / math.Sqrt(vals[ri])
		for ci := 0; ci < n; ci++ {
			w.Set(ri, ci, iv*q.At(ci, ri))
		}
	}
	return w, nil
}

// MakeInverse builds the minimum-norm inverse operator from a forward
// model and a noise covariance over the same channels, with
// SNR-controlled regularization.  The whitened gain is scaled so the
// identity source covariance has unit average sensor power, then the
// regularized pseudoinverse is formed via SVD.
func MakeInverse(fw *Forward, cov *mat.SymDense, ip *InvParams) (*Inverse, error) {
	nch := fw.NChans()
	if cov.SymmetricDim() != nch {
		return nil, fmt.Errorf("meg.MakeInverse: covariance is %v x %v but forward has %v channels",
			cov.SymmetricDim(), cov.SymmetricDim(), nch)
	}
	w, err := whitener(cov)
	if err != nil {
		return nil, err
	}
	var gw mat.Dense
	gw.Mul(w, fw.Gain)

	// scale so trace(Gw Gw^T) = nchan
	var tr float64
	for ri := 0; ri < nch; ri++ {
		for ci := 0; ci < fw.NSrcs(); ci++ {
			v := gw.At(ri, ci)
			tr += v * v
		}
	}
	if tr <= 0 {
		return nil, fmt.Errorf("meg.MakeInverse: forward gain is all zero")
	}
	scale := math.Sqrt(tr / float64(nch))
	gw.Scale(1/scale, &gw)

	var svd mat.SVD
	if ok := svd.Factorize(&gw, mat.SVDThin); !ok {
		return nil, fmt.Errorf("meg.MakeInverse: SVD failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	lambda2 := ip.Lambda2()
	// V diag(s / (s^2 + lambda2)) U^T, folded with the gain scale
	nr := len(sv)
	d := mat.NewDense(nr, nr, nil)
	for i, s := range sv {
		d.Set(i, i, s/(s*s+lambda2)/scale)
	}
	var vd, k mat.Dense
	vd.Mul(&v, d)
	k.Mul(&vd, u.T())
	var kw mat.Dense
	kw.Mul(&k, w)

	return &Inverse{
		ChanNames: fw.ChanNames,
		Srcs:      fw.Srcs,
		Lambda2:   lambda2,
		K:         &kw,
	}, nil
}

// SourceEstimate is per-vertex, per-sample signed current amplitude
// (Am), the product of applying an inverse operator to evoked data
type SourceEstimate struct {
	Srcs  []SrcVertex `desc:"source vertices, in data row order"`
	Times []float64   `desc:"sample times relative to the event (sec)"`
	Data  *mat.Dense  `desc:"nsrc x nsamp current estimates"`
}

// Apply applies the inverse operator to the evoked response, matching
// channels by name.  Every operator channel must be present in the
// evoked data.
func (inv *Inverse) Apply(ev *Evoked) (*SourceEstimate, error) {
	chIdx := make(map[string]int, len(ev.Info))
	for ci, inf := range ev.Info {
		chIdx[inf.Name] = ci
	}
	nch := len(inv.ChanNames)
	nsamp := len(ev.Times)
	x := mat.NewDense(nch, nsamp, nil)
	for ri, nm := range inv.ChanNames {
		ci, ok := chIdx[nm]
		if !ok {
			return nil, fmt.Errorf("meg.Inverse: channel %v not in evoked data", nm)
		}
		for si := 0; si < nsamp; si++ {
			x.Set(ri, si, ev.Data[ci][si])
		}
	}
	stc := &SourceEstimate{Srcs: inv.Srcs, Times: ev.Times}
	var j mat.Dense
	j.Mul(inv.K, x)
	stc.Data = &j
	return stc, nil
}
