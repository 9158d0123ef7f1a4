// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"gonum.org/v1/gonum/mat"
)

// Hemi is a cortical hemisphere
type Hemi int32

const (
	LH Hemi = iota
	RH
	HemiN
)

func (h Hemi) String() string {
	if h == LH {
		return "lh"
	}
	return "rh"
}

// SrcVertex identifies one candidate source location: a vertex on one
// hemisphere's cortical surface
type SrcVertex struct {
	Hemi   Hemi  `desc:"hemisphere"`
	Vertex int32 `desc:"surface vertex number"`
}

// meg.Forward is a precomputed forward (head) model: the linear gain
// from each candidate cortical source (fixed orientation, normal to the
// surface) to each sensor.  Read-only input to inverse estimation.
type Forward struct {
	ChanNames []string    `desc:"sensor channel names, in gain row order"`
	Srcs      []SrcVertex `desc:"source vertices, in gain column order"`
	Gain      *mat.Dense  `desc:"nchan x nsrc gain matrix"`
}

// NChans returns the number of sensor channels
func (fw *Forward) NChans() int { return len(fw.ChanNames) }

// NSrcs returns the number of candidate sources
func (fw *Forward) NSrcs() int { return len(fw.Srcs) }

// PickChans returns a forward model restricted to the given channel
// names, in their order, erroring on any channel absent from the model
func (fw *Forward) PickChans(names []string) (*Forward, error) {
	rowIdx := make(map[string]int, len(fw.ChanNames))
	for ri, nm := range fw.ChanNames {
		rowIdx[nm] = ri
	}
	sub := &Forward{ChanNames: names, Srcs: fw.Srcs}
	sub.Gain = mat.NewDense(len(names), fw.NSrcs(), nil)
	for ni, nm := range names {
		ri, ok := rowIdx[nm]
		if !ok {
			return nil, fmt.Errorf("meg.Forward: channel %v not in forward model", nm)
		}
		for ci := 0; ci < fw.NSrcs(); ci++ {
			sub.Gain.Set(ni, ci, fw.Gain.At(ri, ci))
		}
	}
	return sub, nil
}

// Table returns the forward model as an etable.Table: Hemi and Vertex
// columns followed by one column per sensor channel, one row per source
func (fw *Forward) Table() *etable.Table {
	sch := etable.Schema{
		{Name: "Hemi", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Vertex", Type: etensor.INT64, CellShape: nil, DimNames: nil},
	}
	for _, nm := range fw.ChanNames {
		sch = append(sch, etable.Column{Name: nm, Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, fw.NSrcs())
	dt.SetMetaData("name", "Forward")
	for si, src := range fw.Srcs {
		dt.SetCellString("Hemi", si, src.Hemi.String())
		dt.SetCellFloat("Vertex", si, float64(src.Vertex))
		for ri, nm := range fw.ChanNames {
			dt.SetCellFloat(nm, si, fw.Gain.At(ri, si))
		}
	}
	return dt
}

// SaveTSV saves the forward model to a TSV file
func (fw *Forward) SaveTSV(filename string) error {
	return fw.Table().SaveCSV(gi.FileName(filename), etable.Tab, etable.Headers)
}

// OpenForwardTSV opens a forward model from a TSV file saved by SaveTSV
func OpenForwardTSV(filename string) (*Forward, error) {
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(filename), etable.Tab); err != nil {
		return nil, err
	}
	for _, cnm := range []string{"Hemi", "Vertex"} {
		if _, err := dt.ColByNameTry(cnm); err != nil {
			return nil, fmt.Errorf("meg.OpenForwardTSV: %v", err)
		}
	}
	fw := &Forward{}
	for _, nm := range dt.ColNames {
		if nm == "Hemi" || nm == "Vertex" {
			continue
		}
		fw.ChanNames = append(fw.ChanNames, nm)
	}
	nsrc := dt.Rows
	fw.Gain = mat.NewDense(len(fw.ChanNames), nsrc, nil)
	for si := 0; si < nsrc; si++ {
		hs := dt.CellString("Hemi", si)
		hemi := LH
		if hs == "rh" {
			hemi = RH
		} else if hs != "lh" {
			return nil, fmt.Errorf("meg.OpenForwardTSV: bad hemisphere: %v", hs)
		}
		fw.Srcs = append(fw.Srcs, SrcVertex{Hemi: hemi, Vertex: int32(dt.CellFloat("Vertex", si))})
		for ri, nm := range fw.ChanNames {
			fw.Gain.Set(ri, si, dt.CellFloat(nm, si))
		}
	}
	return fw, nil
}
