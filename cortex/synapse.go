// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"github.com/goki/ki/kit"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Receptor

// Receptor is the synaptic receptor channel that a connection or drive
// delivers its conductance onto
type Receptor int32

//go:generate stringer -type=Receptor

var KiT_Receptor = kit.Enums.AddEnum(ReceptorN, kit.NotBitFlag, nil)

func (ev Receptor) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Receptor) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// AMPA is the fast single-exponential excitatory channel
	AMPA Receptor = iota

	// NMDA is the slow bi-exponential voltage-dependent excitatory channel
	NMDA

	// GABAA is the fast single-exponential inhibitory channel
	GABAA

	// GABAB is the slow bi-exponential inhibitory channel
	GABAB

	ReceptorN
)

//////////////////////////////////////////////////////////////////////////////////////
//  SynLoc

// SynLoc is the synaptic input zone on the receiving cell: proximal
// (somatic / basal) vs. distal (apical dendrite).  Inhibitory input is
// always somatic regardless of location.
type SynLoc int32

//go:generate stringer -type=SynLoc

var KiT_SynLoc = kit.Enums.AddEnum(SynLocN, kit.NotBitFlag, nil)

func (ev SynLoc) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SynLoc) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Proximal input targets the soma / basal zone (lemniscal thalamic pathway)
	Proximal SynLoc = iota

	// Distal input targets the apical dendrite (cortico-cortical pathway)
	Distal

	SynLocN
)

// Conductance delivery slots in the population ring buffer: one slot per
// receptor x zone combination that a cell can receive on.
const (
	SlotAmpaProx = iota
	SlotNmdaProx
	SlotGabaA
	SlotGabaB
	SlotAmpaDist
	SlotNmdaDist
	NSlots
)

// SlotFor returns the delivery slot for given receptor and zone on a
// receiving cell of given type.  Basket cells have no apical dendrite, so
// distal excitation folds onto their somatic zone; inhibition is always
// somatic.
func SlotFor(recep Receptor, loc SynLoc, recv CellType) int {
	switch recep {
	case GABAA:
		return SlotGabaA
	case GABAB:
		return SlotGabaB
	}
	if loc == Distal && recv.IsPyr() {
		if recep == NMDA {
			return SlotNmdaDist
		}
		return SlotAmpaDist
	}
	if recep == NMDA {
		return SlotNmdaProx
	}
	return SlotAmpaProx
}

//////////////////////////////////////////////////////////////////////////////////////
//  Conn

// cortex.Conn is a fixed all-to-all synaptic projection between two cell
// populations within the column, delivering onto one receptor channel
// with a fixed conduction delay.  Weights do not learn: the evoked
// response paradigm runs the column with fixed connectivity.
type Conn struct {
	Send  string   `desc:"name of the sending population"`
	Recv  string   `desc:"name of the receiving population"`
	Recep Receptor `desc:"receptor channel the projection delivers onto"`
	Loc   SynLoc   `desc:"synaptic zone on the receiving cell"`
	Wt    float32  `desc:"total conductance delivered per presynaptic spike (nS), divided across receiving cells"`
	Delay float32  `def:"1" desc:"conduction delay (msec)"`

	SendIdx    int     `view:"-" desc:"index of sending population -- set by Build"`
	RecvIdx    int     `view:"-" desc:"index of receiving population -- set by Build"`
	Slot       int     `view:"-" desc:"delivery slot -- set by Build"`
	DelaySteps int     `view:"-" desc:"delay in cycles -- set by Build"`
	WtEff      float32 `view:"-" desc:"per-cell weight: Wt / N recv -- set by Build"`
}

func (cn *Conn) Defaults() {
	cn.Delay = 1
}
