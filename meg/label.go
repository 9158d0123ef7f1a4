// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LabelTC reduces the source estimate within one anatomical label to a
// single representative time course via the sign-consistent principal
// component ("pca_flip"): the first right singular vector of the
// label's vertex x time data, sign-aligned with the dominant vertex
// weighting so that arbitrary per-vertex sign ambiguity cancels, and
// scaled to match the average power across label vertices.
func (stc *SourceEstimate) LabelTC(hemi Hemi, verts []int32) ([]float64, error) {
	vset := make(map[int32]bool, len(verts))
	for _, v := range verts {
		vset[v] = true
	}
	var rows []int
	for si, src := range stc.Srcs {
		if src.Hemi == hemi && vset[src.Vertex] {
			rows = append(rows, si)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("meg.LabelTC: no source vertices in label (%v candidates)", len(verts))
	}
	nsamp := len(stc.Times)
	data := mat.NewDense(len(rows), nsamp, nil)
	for ri, si := range rows {
		for ti := 0; ti < nsamp; ti++ {
			data.Set(ri, ti, stc.Data.At(si, ti))
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(data, mat.SVDThin); !ok {
		return nil, fmt.Errorf("meg.LabelTC: SVD failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sv := svd.Values(nil)

	// sign: align the first left singular vector with the all-ones flip
	// vector (fixed normal orientation)
	var usum float64
	for ri := 0; ri < len(rows); ri++ {
		usum += u.At(ri, 0)
	}
	sign := 1.0
	if usum < 0 {
		sign = -1
	}
	// scale: norm of singular values over sqrt(nvertices) preserves the
	// average power in the label
	var snorm float64
	for _, s := range sv {
		snorm += s * s
	}
	scale := math.Sqrt(snorm) / math.Sqrt(float64(len(rows)))

	tc := make([]float64, nsamp)
	for ti := 0; ti < nsamp; ti++ {
		tc[ti] = sign * scale * v.At(ti, 0)
	}
	return tc, nil
}

// Calibrate applies the dataset-specific manual calibration to a label
// time course, in place: a sign flip convention and a unit rescale
// (e.g., -1 and 1e9 to express source current in nAm with the
// superficial-to-deep positive convention).  These are external inputs
// chosen per dataset, not inferred.
func Calibrate(tc []float64, sign, scale float64) {
	for i := range tc {
		tc[i] *= sign * scale
	}
}
