// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// cortex.Neuron holds all of the neuron (unit) level state variables.
// Membrane potentials are in mV, conductances in normalized units that are
// multiplied by the population Gbar (nS), currents in pA.
// All variables must be float32 and are accessible by name via VarByName.
type Neuron struct {

	// somatic membrane potential -- integrates Inet current over time
	Vm float32 `desc:"somatic membrane potential (mV)"`

	// apical dendrite membrane potential (pyramidal cells only -- baskets leave this at Vm)
	VmDend float32 `desc:"apical dendrite membrane potential (mV)"`

	// net somatic current from all channels, drives update of Vm
	Inet float32 `desc:"net somatic current (pA)"`

	// net dendritic current from all channels, drives update of VmDend
	InetDend float32 `desc:"net dendritic current (pA)"`

	// intracellular axial current flowing from dendrite into soma -- the
	// per-cell contribution to the aggregate dipole for pyramidal cells
	IAxial float32 `desc:"axial dendrite-to-soma current (pA)"`

	// AMPA conductance at the proximal / somatic zone
	GAmpa float32 `desc:"proximal AMPA conductance"`

	// NMDA conductance at the proximal / somatic zone (bi-exponential state)
	GNmda float32 `desc:"proximal NMDA conductance"`

	// NMDA driving state variable for bi-exponential dynamics
	GNmdaD float32 `desc:"proximal NMDA bi-exponential driver"`

	// GABA-A conductance (somatic)
	GGabaA float32 `desc:"somatic GABA-A conductance"`

	// GABA-B conductance (somatic, bi-exponential state)
	GGabaB float32 `desc:"somatic GABA-B conductance"`

	// GABA-B driving state variable for bi-exponential dynamics
	GGabaBD float32 `desc:"somatic GABA-B bi-exponential driver"`

	// AMPA conductance at the distal dendritic zone
	GAmpaDend float32 `desc:"distal AMPA conductance"`

	// NMDA conductance at the distal dendritic zone
	GNmdaDend float32 `desc:"distal NMDA conductance"`

	// NMDA distal driving state variable
	GNmdaDendD float32 `desc:"distal NMDA bi-exponential driver"`

	// spike-triggered adaptation conductance (K+), decays with Adapt.Tau
	GAdapt float32 `desc:"spike-triggered adaptation conductance"`

	// whether neuron has spiked or not on this cycle (0 or 1)
	Spike float32 `desc:"spiked this cycle"`

	// refractory cycles remaining -- no spiking while > 0
	RefracCyc float32 `desc:"refractory cycles remaining"`
}

// NeuronVars are the names of the neuron variables, for logging / display
var NeuronVars = []string{"Vm", "VmDend", "Inet", "InetDend", "IAxial",
	"GAmpa", "GNmda", "GNmdaD", "GGabaA", "GGabaB", "GGabaBD",
	"GAmpaDend", "GNmdaDend", "GNmdaDendD", "GAdapt", "Spike", "RefracCyc"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// VarByName returns variable by name, or error if name not found
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	switch varNm {
	case "Vm":
		return nrn.Vm, nil
	case "VmDend":
		return nrn.VmDend, nil
	case "Inet":
		return nrn.Inet, nil
	case "InetDend":
		return nrn.InetDend, nil
	case "IAxial":
		return nrn.IAxial, nil
	case "GAmpa":
		return nrn.GAmpa, nil
	case "GNmda":
		return nrn.GNmda, nil
	case "GNmdaD":
		return nrn.GNmdaD, nil
	case "GGabaA":
		return nrn.GGabaA, nil
	case "GGabaB":
		return nrn.GGabaB, nil
	case "GGabaBD":
		return nrn.GGabaBD, nil
	case "GAmpaDend":
		return nrn.GAmpaDend, nil
	case "GNmdaDend":
		return nrn.GNmdaDend, nil
	case "GNmdaDendD":
		return nrn.GNmdaDendD, nil
	case "GAdapt":
		return nrn.GAdapt, nil
	case "Spike":
		return nrn.Spike, nil
	case "RefracCyc":
		return nrn.RefracCyc, nil
	}
	return 0, fmt.Errorf("cortex.Neuron VarByName: variable named: %v not found", varNm)
}

//////////////////////////////////////////////////////////////////////////////////////
//  CellType

// CellType is the type of a cell population in the column
type CellType int32

//go:generate stringer -type=CellType

var KiT_CellType = kit.Enums.AddEnum(CellTypeN, kit.NotBitFlag, nil)

func (ev CellType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CellType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// L2Pyr is a layer 2/3 pyramidal cell: two compartments, dipole source
	L2Pyr CellType = iota

	// L2Basket is a layer 2/3 basket interneuron: single compartment, inhibitory
	L2Basket

	// L5Pyr is a layer 5 pyramidal cell: two compartments, dipole source
	L5Pyr

	// L5Basket is a layer 5 basket interneuron: single compartment, inhibitory
	L5Basket

	CellTypeN
)

// IsPyr returns true for the two-compartment pyramidal (dipole source) types
func (ct CellType) IsPyr() bool {
	return ct == L2Pyr || ct == L5Pyr
}

// IsInhib returns true for the basket interneuron types
func (ct CellType) IsInhib() bool {
	return ct == L2Basket || ct == L5Basket
}
