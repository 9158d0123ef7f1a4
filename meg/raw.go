// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/gi/gi"
	"github.com/goki/ki/kit"
)

//////////////////////////////////////////////////////////////////////////////////////
//  ChanType

// ChanType is the kind of sensor channel in a recording
type ChanType int32

//go:generate stringer -type=ChanType

var KiT_ChanType = kit.Enums.AddEnum(ChanTypeN, kit.NotBitFlag, nil)

func (ev ChanType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ChanType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Grad is a planar gradiometer MEG channel (T/m)
	Grad ChanType = iota

	// Mag is a magnetometer MEG channel (T)
	Mag

	// EEG is an electroencephalography channel (V)
	EEG

	// Stim is a digital stimulus trigger channel
	Stim

	// Misc is any other auxiliary channel, excluded from analysis
	Misc

	ChanTypeN
)

// ChanInfo is the metadata for one channel
type ChanInfo struct {
	Name string   `desc:"channel name, e.g., MEG1234"`
	Type ChanType `desc:"kind of sensor"`
}

//////////////////////////////////////////////////////////////////////////////////////
//  Raw

// meg.Raw is a continuous multichannel recording: one row of samples per
// channel, with per-channel metadata and a fixed sampling rate.
// Filtering mutates the data in place.
type Raw struct {
	Info  []ChanInfo  `desc:"per-channel metadata, in data row order"`
	SRate float64     `desc:"sampling rate (Hz)"`
	Data  [][]float64 `desc:"channel x sample data"`
}

// NSamples returns the number of samples per channel
func (rw *Raw) NSamples() int {
	if len(rw.Data) == 0 {
		return 0
	}
	return len(rw.Data[0])
}

// ChanIdxTry returns the index of the channel with given name, or an
// error if not found
func (rw *Raw) ChanIdxTry(name string) (int, error) {
	for ci, inf := range rw.Info {
		if inf.Name == name {
			return ci, nil
		}
	}
	return -1, fmt.Errorf("meg.Raw: channel named: %v not found", name)
}

// Picks returns the indexes of all channels of the given types
func (rw *Raw) Picks(types ...ChanType) []int {
	var idxs []int
	for ci, inf := range rw.Info {
		for _, tp := range types {
			if inf.Type == tp {
				idxs = append(idxs, ci)
				break
			}
		}
	}
	return idxs
}

// Times returns the sample times in seconds, starting at 0
func (rw *Raw) Times() []float64 {
	ts := make([]float64, rw.NSamples())
	for si := range ts {
		ts[si] = float64(si) / rw.SRate
	}
	return ts
}

// Validate checks internal consistency: equal channel counts between
// Info and Data, equal sample counts across channels, positive SRate
func (rw *Raw) Validate() error {
	if rw.SRate <= 0 {
		return fmt.Errorf("meg.Raw: sampling rate must be positive: %v", rw.SRate)
	}
	if len(rw.Info) != len(rw.Data) {
		return fmt.Errorf("meg.Raw: %v channel infos but %v data rows", len(rw.Info), len(rw.Data))
	}
	ns := rw.NSamples()
	for ci := range rw.Data {
		if len(rw.Data[ci]) != ns {
			return fmt.Errorf("meg.Raw: channel %v has %v samples, expected %v",
				rw.Info[ci].Name, len(rw.Data[ci]), ns)
		}
	}
	return nil
}

// Table returns the recording as an etable.Table: one column per channel,
// named by channel, one row per sample, with channel types in column
// metadata-free form suitable for TSV round trips
func (rw *Raw) Table() *etable.Table {
	sch := etable.Schema{}
	for _, inf := range rw.Info {
		sch = append(sch, etable.Column{Name: inf.Name, Type: etensor.FLOAT64, CellShape: nil, DimNames: nil})
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, rw.NSamples())
	dt.SetMetaData("name", "Raw")
	for ci, inf := range rw.Info {
		for si := 0; si < rw.NSamples(); si++ {
			dt.SetCellFloat(inf.Name, si, rw.Data[ci][si])
		}
	}
	return dt
}

// chanTable returns the channel metadata as an etable.Table with Name
// and Type columns
func (rw *Raw) chanTable() *etable.Table {
	sch := etable.Schema{
		{Name: "Name", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Type", Type: etensor.STRING, CellShape: nil, DimNames: nil},
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sch, len(rw.Info))
	dt.SetMetaData("name", "Channels")
	for ci, inf := range rw.Info {
		dt.SetCellString("Name", ci, inf.Name)
		dt.SetCellString("Type", ci, inf.Type.String())
	}
	return dt
}

// SaveTSV saves the recording to a data TSV and a channel-metadata TSV.
// The sampling rate is recorded in the channel file metadata row 0 name
// "SRate" with the rate in the Type column.
func (rw *Raw) SaveTSV(dataFile, chanFile string) error {
	dt := rw.Table()
	if err := dt.SaveCSV(gi.FileName(dataFile), etable.Tab, etable.Headers); err != nil {
		return err
	}
	ct := rw.chanTable()
	ct.AddRows(1)
	ct.SetCellString("Name", ct.Rows-1, "SRate")
	ct.SetCellString("Type", ct.Rows-1, fmt.Sprintf("%g", rw.SRate))
	return ct.SaveCSV(gi.FileName(chanFile), etable.Tab, etable.Headers)
}

// OpenRawTSV opens a recording from a data TSV and a channel-metadata TSV
// saved by SaveTSV
func OpenRawTSV(dataFile, chanFile string) (*Raw, error) {
	ct := &etable.Table{}
	if err := ct.OpenCSV(gi.FileName(chanFile), etable.Tab); err != nil {
		return nil, err
	}
	rw := &Raw{}
	for ri := 0; ri < ct.Rows; ri++ {
		nm := ct.CellString("Name", ri)
		ts := ct.CellString("Type", ri)
		if nm == "SRate" {
			var sr float64
			if _, err := fmt.Sscanf(ts, "%g", &sr); err != nil {
				return nil, fmt.Errorf("meg.OpenRawTSV: bad SRate value: %v", ts)
			}
			rw.SRate = sr
			continue
		}
		var tp ChanType
		if err := tp.FromString(ts); err != nil {
			return nil, fmt.Errorf("meg.OpenRawTSV: channel %v: %v", nm, err)
		}
		rw.Info = append(rw.Info, ChanInfo{Name: nm, Type: tp})
	}
	dt := &etable.Table{}
	if err := dt.OpenCSV(gi.FileName(dataFile), etable.Tab); err != nil {
		return nil, err
	}
	rw.Data = make([][]float64, len(rw.Info))
	for ci, inf := range rw.Info {
		col, err := dt.ColByNameTry(inf.Name)
		if err != nil {
			return nil, fmt.Errorf("meg.OpenRawTSV: %v", err)
		}
		rw.Data[ci] = make([]float64, dt.Rows)
		for si := 0; si < dt.Rows; si++ {
			rw.Data[ci][si] = col.FloatVal1D(si)
		}
	}
	return rw, rw.Validate()
}
