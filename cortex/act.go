// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/neurodyn/erpsim/chans"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the activation params and functions for cortex

// cortex.ActParams contains all the activation computation params and
// functions for the two-compartment conductance neuron, at the neuron
// level.  This is included in cortex.Pop to drive the computation.
type ActParams struct {
	Dt      DtParams       `view:"inline" desc:"time constants for temporal integration of membrane state"`
	Gbar    chans.Chans    `view:"inline" desc:"maximal conductance levels for each receptor channel (nS)"`
	Erev    chans.Chans    `view:"inline" desc:"reversal potentials for each receptor channel (mV)"`
	Init    ActInitParams  `view:"inline" desc:"initial membrane state at start of trial"`
	Spike   SpikeParams    `view:"inline" desc:"threshold spiking and refractory parameters"`
	Adapt   AdaptParams    `view:"inline" desc:"spike-triggered adaptation (K+) parameters"`
	AMPA    SynDecayParams `view:"inline" desc:"AMPA single-exponential decay"`
	GABAA   SynDecayParams `view:"inline" desc:"GABA-A single-exponential decay"`
	NMDA    NMDAParams     `view:"inline" desc:"NMDA bi-exponential dynamics and Mg+ block"`
	GABAB   GABABParams    `view:"inline" desc:"GABA-B bi-exponential dynamics"`
	Dend    DendParams     `view:"inline" desc:"dendrite compartment coupling and dipole geometry"`
	VmRange minmax.F32     `view:"inline" desc:"allowed range for membrane potentials (mV) -- clipped after integration"`
}

func (ac *ActParams) Defaults() {
	ac.Dt.Defaults()
	ac.Gbar.SetAll(1, 1, 1, 1, 10)
	ac.Erev.SetAll(0, 0, -80, -95, -65)
	ac.Init.Defaults()
	ac.Spike.Defaults()
	ac.Adapt.Defaults()
	ac.AMPA.Tau = 5
	ac.GABAA.Tau = 5
	ac.NMDA.Defaults()
	ac.GABAB.Defaults()
	ac.Dend.Defaults()
	ac.VmRange.Set(-120, 60)
	ac.Update()
}

// Update must be called after any changes to parameters
func (ac *ActParams) Update() {
	ac.Dt.Update()
	ac.AMPA.Update(ac.Dt.Ms)
	ac.GABAA.Update(ac.Dt.Ms)
	ac.NMDA.Update()
	ac.GABAB.Update()
	ac.Spike.UpdateDt(ac.Dt.Ms)
	ac.Adapt.UpdateDt(ac.Dt.Ms)
}

// InitActs initializes membrane and conductance state for the start of a trial
func (ac *ActParams) InitActs(nrn *Neuron) {
	nrn.Vm = ac.Init.Vm
	nrn.VmDend = ac.Init.Vm
	nrn.Inet = 0
	nrn.InetDend = 0
	nrn.IAxial = 0
	nrn.GAmpa = 0
	nrn.GNmda = 0
	nrn.GNmdaD = 0
	nrn.GGabaA = 0
	nrn.GGabaB = 0
	nrn.GGabaBD = 0
	nrn.GAmpaDend = 0
	nrn.GNmdaDend = 0
	nrn.GNmdaDendD = 0
	nrn.GAdapt = 0
	nrn.Spike = 0
	nrn.RefracCyc = 0
}

// GDecay advances the synaptic conductances one time step: exponential
// decay for AMPA and GABA-A, bi-exponential rise / decay for NMDA and
// GABA-B (both zones).
func (ac *ActParams) GDecay(nrn *Neuron) {
	nrn.GAmpa *= ac.AMPA.DecayFact
	nrn.GGabaA *= ac.GABAA.DecayFact
	nrn.GAmpaDend *= ac.AMPA.DecayFact

	dG, dD := ac.NMDA.BiExp(nrn.GNmda, nrn.GNmdaD)
	nrn.GNmda += ac.Dt.Ms * dG
	nrn.GNmdaD += ac.Dt.Ms * dD

	dG, dD = ac.NMDA.BiExp(nrn.GNmdaDend, nrn.GNmdaDendD)
	nrn.GNmdaDend += ac.Dt.Ms * dG
	nrn.GNmdaDendD += ac.Dt.Ms * dD

	dG, dD = ac.GABAB.BiExp(nrn.GGabaB, nrn.GGabaBD)
	nrn.GGabaB += ac.Dt.Ms * dG
	nrn.GGabaBD += ac.Dt.Ms * dD

	nrn.GAdapt *= ac.Adapt.DecayFact
}

// InetFmG computes the net current for a compartment with given membrane
// potential and summed channel conductances (nS), returning pA
func (ac *ActParams) InetFmG(vm, gAmpa, gNmda, gGabaA, gGabaB float32) float32 {
	inet := gAmpa * (ac.Erev.AMPA - vm)
	inet += gNmda * ac.NMDA.MgGFmV(vm) * (ac.Erev.NMDA - vm)
	inet += gGabaA * (ac.Erev.GABAA - vm)
	inet += gGabaB * (ac.Erev.GABAB - vm)
	inet += ac.Gbar.L * (ac.Erev.L - vm)
	return inet
}

// VmFmG updates both compartments' membrane potentials from current
// conductances, including the axial coupling current between them.
// For single-compartment (basket) cells, pass twoComp = false: the
// dendrite tracks the soma and the axial current is zero.
func (ac *ActParams) VmFmG(nrn *Neuron, twoComp bool) {
	isyn := ac.InetFmG(nrn.Vm, ac.Gbar.AMPA*nrn.GAmpa, ac.Gbar.NMDA*nrn.GNmda,
		ac.Gbar.GABAA*nrn.GGabaA, ac.Gbar.GABAB*nrn.GGabaB)
	isyn += ac.Adapt.Gbar * nrn.GAdapt * (ac.Adapt.Erev - nrn.Vm)

	if !twoComp {
		nrn.IAxial = 0
		nrn.Inet = isyn
		nrn.InetDend = 0
		if nrn.RefracCyc <= 0 {
			nrn.Vm = ac.VmRange.ClipVal(nrn.Vm + ac.Dt.Ms*isyn/ac.Dt.CSoma)
		}
		nrn.VmDend = nrn.Vm
		return
	}

	nrn.IAxial = ac.Dend.GCore * (nrn.VmDend - nrn.Vm)
	nrn.Inet = isyn + nrn.IAxial

	idend := ac.InetFmG(nrn.VmDend, ac.Gbar.AMPA*nrn.GAmpaDend,
		ac.Gbar.NMDA*nrn.GNmdaDend, 0, 0)
	idend += ac.Dend.GCore * (nrn.Vm - nrn.VmDend)
	nrn.InetDend = idend

	if nrn.RefracCyc <= 0 {
		nrn.Vm = ac.VmRange.ClipVal(nrn.Vm + ac.Dt.Ms*nrn.Inet/ac.Dt.CSoma)
	}
	nrn.VmDend = ac.VmRange.ClipVal(nrn.VmDend + ac.Dt.Ms*nrn.InetDend/ac.Dt.CDend)
}

// SpikeFmVm computes spiking from membrane potential: threshold crossing
// with reset and absolute refractory period, incrementing adaptation.
func (ac *ActParams) SpikeFmVm(nrn *Neuron) {
	if nrn.RefracCyc > 0 {
		nrn.RefracCyc--
		nrn.Spike = 0
		return
	}
	if nrn.Vm >= ac.Spike.Thr {
		nrn.Spike = 1
		nrn.Vm = ac.Spike.VmReset
		nrn.RefracCyc = ac.Spike.RefracCyc
		nrn.GAdapt += ac.Adapt.Inc
	} else {
		nrn.Spike = 0
	}
}

// DipoleMoment returns the instantaneous dipole moment contribution of
// this (pyramidal) neuron in nAm: axial current (pA) times dendrite
// length (um) = 1e-18 Am = 1e-9 nAm.
func (ac *ActParams) DipoleMoment(nrn *Neuron) float32 {
	return nrn.IAxial * ac.Dend.LenUm * 1e-9
}

//////////////////////////////////////////////////////////////////////////////////////
//  DtParams

// DtParams are time-step and capacitance constants for integration
type DtParams struct {
	Ms    float32 `def:"0.025" min:"0.001" desc:"integration time step (msec)"`
	CSoma float32 `def:"100" desc:"somatic membrane capacitance (pF)"`
	CDend float32 `def:"85" desc:"dendritic membrane capacitance (pF)"`
}

func (dp *DtParams) Update() {
}

func (dp *DtParams) Defaults() {
	dp.Ms = 0.025
	dp.CSoma = 100
	dp.CDend = 85
}

//////////////////////////////////////////////////////////////////////////////////////
//  ActInitParams

// ActInitParams are initial values for membrane state
type ActInitParams struct {
	Vm float32 `def:"-65" desc:"initial membrane potential, both compartments (mV)"`
}

func (ai *ActInitParams) Update() {
}

func (ai *ActInitParams) Defaults() {
	ai.Vm = -65
}

//////////////////////////////////////////////////////////////////////////////////////
//  SpikeParams

// SpikeParams are threshold spiking and refractory parameters
type SpikeParams struct {
	Thr       float32 `def:"-40" desc:"spike threshold (mV)"`
	VmReset   float32 `def:"-70" desc:"post-spike reset potential (mV)"`
	RefracMs  float32 `def:"2" desc:"absolute refractory period (msec)"`
	RefracCyc float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"refractory period in cycles -- computed from RefracMs in Pop.UpdateParams"`
}

func (sp *SpikeParams) Update() {
}

func (sp *SpikeParams) Defaults() {
	sp.Thr = -40
	sp.VmReset = -70
	sp.RefracMs = 2
}

// UpdateDt computes the cycle-level refractory count for given time step
func (sp *SpikeParams) UpdateDt(dtMs float32) {
	sp.RefracCyc = sp.RefracMs / dtMs
}

//////////////////////////////////////////////////////////////////////////////////////
//  AdaptParams

// AdaptParams govern the spike-triggered adaptation K+ conductance,
// which reduces repetitive firing over time.
type AdaptParams struct {
	On        bool    `desc:"whether adaptation is engaged"`
	Tau       float32 `def:"100" desc:"decay time constant (msec)"`
	Inc       float32 `def:"0.5" desc:"conductance increment per spike (normalized)"`
	Gbar      float32 `def:"1" desc:"maximal adaptation conductance (nS)"`
	Erev      float32 `def:"-90" desc:"adaptation (K+) reversal potential (mV)"`
	DecayFact float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"per-cycle decay factor -- computed from Tau in Pop.UpdateParams"`
}

func (ap *AdaptParams) Update() {
}

func (ap *AdaptParams) Defaults() {
	ap.On = true
	ap.Tau = 100
	ap.Inc = 0.5
	ap.Gbar = 1
	ap.Erev = -90
}

// UpdateDt computes the per-cycle decay factor for given time step
func (ap *AdaptParams) UpdateDt(dtMs float32) {
	if !ap.On {
		ap.DecayFact = 1
		return
	}
	ap.DecayFact = math32.Exp(-dtMs / ap.Tau)
}

//////////////////////////////////////////////////////////////////////////////////////
//  SynDecayParams

// SynDecayParams are single-exponential synaptic decay dynamics (AMPA, GABA-A)
type SynDecayParams struct {
	Tau       float32 `def:"5" desc:"decay time constant (msec)"`
	DecayFact float32 `inactive:"+" view:"-" json:"-" xml:"-" desc:"per-cycle decay factor: exp(-dt/Tau)"`
}

func (sd *SynDecayParams) Update(dtMs float32) {
	sd.DecayFact = math32.Exp(-dtMs / sd.Tau)
}

//////////////////////////////////////////////////////////////////////////////////////
//  NMDAParams

// NMDAParams control the NMDA receptor channel: bi-exponential conductance
// time course plus the voltage-dependent Mg+ block per Jahr & Stevens (1990)
type NMDAParams struct {
	RiseTau  float32 `def:"1" desc:"rise time constant for bi-exponential time dynamics (msec)"`
	DecayTau float32 `def:"20" desc:"decay time constant for bi-exponential time dynamics (msec)"`
	MgC      float32 `def:"1" desc:"extracellular Mg+ concentration factor -- scales the block sigmoid"`
	TauFact  float32 `view:"-" desc:"time constant factor used in integration: (Decay / Rise) ^ (Rise / (Decay - Rise))"`
}

func (np *NMDAParams) Defaults() {
	np.RiseTau = 1
	np.DecayTau = 20
	np.MgC = 1
	np.Update()
}

func (np *NMDAParams) Update() {
	np.TauFact = math32.Pow(np.DecayTau/np.RiseTau, np.RiseTau/(np.DecayTau-np.RiseTau))
}

// MgGFmV returns the fraction of NMDA conductance open as a function of
// membrane potential (mV), reflecting the Mg+ block
func (np *NMDAParams) MgGFmV(v float32) float32 {
	return 1 / (1 + 0.28*np.MgC*math32.Exp(-0.062*v))
}

// BiExp computes the bi-exponential update, returning dG and dD derivatives
// to integrate into g and its driver gD
func (np *NMDAParams) BiExp(g, gD float32) (dG, dD float32) {
	dG = (np.TauFact*gD - g) / np.RiseTau
	dD = -gD / np.DecayTau
	return
}

//////////////////////////////////////////////////////////////////////////////////////
//  GABABParams

// GABABParams control the slow metabotropic GABA-B channel with
// bi-exponential conductance dynamics
type GABABParams struct {
	RiseTau  float32 `def:"1" desc:"rise time constant for bi-exponential time dynamics (msec)"`
	DecayTau float32 `def:"20" desc:"decay time constant for bi-exponential time dynamics (msec)"`
	TauFact  float32 `view:"-" desc:"time constant factor used in integration: (Decay / Rise) ^ (Rise / (Decay - Rise))"`
}

func (gp *GABABParams) Defaults() {
	gp.RiseTau = 1
	gp.DecayTau = 20
	gp.Update()
}

func (gp *GABABParams) Update() {
	gp.TauFact = math32.Pow(gp.DecayTau/gp.RiseTau, gp.RiseTau/(gp.DecayTau-gp.RiseTau))
}

// BiExp computes the bi-exponential update, returning dG and dD derivatives
func (gp *GABABParams) BiExp(g, gD float32) (dG, dD float32) {
	dG = (gp.TauFact*gD - g) / gp.RiseTau
	dD = -gD / gp.DecayTau
	return
}

//////////////////////////////////////////////////////////////////////////////////////
//  DendParams

// DendParams are the dendrite compartment coupling and dipole geometry
type DendParams struct {
	GCore float32 `def:"25" desc:"axial core conductance coupling dendrite and soma (nS)"`
	LenUm float32 `desc:"apical dendrite length (um) -- scales axial current into dipole moment; 0 for non-pyramidal cells"`
}

func (dd *DendParams) Update() {
}

func (dd *DendParams) Defaults() {
	dd.GCore = 25
	dd.LenUm = 0
}
