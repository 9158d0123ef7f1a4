// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing expected values
const difTol = float32(1.0e-6)

func CmprFloats(out, cor []float32, msg string, t *testing.T) {
	for i := range out {
		dif := math32.Abs(out[i] - cor[i])
		if dif > difTol {
			t.Errorf("%v err: out: %v, cor: %v, dif: %v\n", msg, out[i], cor[i], dif)
		}
	}
}

func TestActDefaults(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	if ac.Dt.Ms != 0.025 {
		t.Errorf("Dt.Ms should be 0.025, got %v", ac.Dt.Ms)
	}
	// 2 msec refractory at 0.025 msec steps
	if ac.Spike.RefracCyc != 80 {
		t.Errorf("Spike.RefracCyc should be 80, got %v", ac.Spike.RefracCyc)
	}
	cor := math32.Exp(-0.025 / 5)
	if math32.Abs(ac.AMPA.DecayFact-cor) > difTol {
		t.Errorf("AMPA.DecayFact should be %v, got %v", cor, ac.AMPA.DecayFact)
	}
	// (20/1)^(1/19)
	cor = math32.Pow(20, 1.0/19.0)
	if math32.Abs(ac.NMDA.TauFact-cor) > difTol {
		t.Errorf("NMDA.TauFact should be %v, got %v", cor, ac.NMDA.TauFact)
	}
}

func TestGDecayAmpa(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := &Neuron{}
	ac.InitActs(nrn)
	nrn.GAmpa = 1

	ncyc := 400 // 10 msec
	for cyc := 0; cyc < ncyc; cyc++ {
		ac.GDecay(nrn)
	}
	// exact exponential decay: g(t) = exp(-t / tau)
	cor := math32.Exp(-10.0 / 5.0)
	if math32.Abs(nrn.GAmpa-cor) > 1.0e-4 {
		t.Errorf("GAmpa after 10 msec: %v, cor: %v", nrn.GAmpa, cor)
	}
}

func TestGDecayNmdaRiseFall(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := &Neuron{}
	ac.InitActs(nrn)
	nrn.GNmdaD = 1

	// conductance rises from zero, peaks, then decays back toward zero
	prev := float32(0)
	rising := true
	peak := float32(0)
	for cyc := 0; cyc < 4000; cyc++ { // 100 msec
		ac.GDecay(nrn)
		if rising {
			if nrn.GNmda < prev {
				rising = false
				peak = prev
			}
		}
		prev = nrn.GNmda
	}
	if rising {
		t.Errorf("GNmda never peaked, final: %v", nrn.GNmda)
	}
	if peak <= 0.5 {
		t.Errorf("GNmda peak too low: %v", peak)
	}
	if nrn.GNmda > 0.1*peak {
		t.Errorf("GNmda did not decay after 100 msec: %v, peak: %v", nrn.GNmda, peak)
	}
}

func TestVmRest(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := &Neuron{}
	ac.InitActs(nrn)

	// with no synaptic input, Vm stays at the leak reversal potential
	for cyc := 0; cyc < 1000; cyc++ {
		ac.GDecay(nrn)
		ac.VmFmG(nrn, true)
		ac.SpikeFmVm(nrn)
	}
	CmprFloats([]float32{nrn.Vm, nrn.VmDend, nrn.IAxial},
		[]float32{-65, -65, 0}, "rest state", t)
}

func TestVmExcInh(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := &Neuron{}
	ac.InitActs(nrn)

	// steady AMPA depolarizes toward its 0 mV reversal
	nrn.GAmpa = 1
	ac.VmFmG(nrn, false)
	if nrn.Vm <= -65 {
		t.Errorf("AMPA should depolarize: Vm = %v", nrn.Vm)
	}

	ac.InitActs(nrn)
	nrn.GGabaA = 1
	ac.VmFmG(nrn, false)
	if nrn.Vm >= -65 {
		t.Errorf("GABA-A should hyperpolarize from rest: Vm = %v", nrn.Vm)
	}
}

func TestSpikeReset(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	nrn := &Neuron{}
	ac.InitActs(nrn)

	nrn.Vm = ac.Spike.Thr + 1
	ac.SpikeFmVm(nrn)
	if nrn.Spike != 1 {
		t.Errorf("should have spiked at Vm = %v", ac.Spike.Thr+1)
	}
	if nrn.Vm != ac.Spike.VmReset {
		t.Errorf("Vm should reset to %v, got %v", ac.Spike.VmReset, nrn.Vm)
	}
	if nrn.GAdapt != ac.Adapt.Inc {
		t.Errorf("GAdapt should increment to %v, got %v", ac.Adapt.Inc, nrn.GAdapt)
	}
	// no spiking during the refractory period, even above threshold
	for cyc := 0; cyc < int(ac.Spike.RefracCyc); cyc++ {
		nrn.Vm = ac.Spike.Thr + 10
		ac.SpikeFmVm(nrn)
		if nrn.Spike != 0 {
			t.Errorf("spiked during refractory period at cycle %v", cyc)
		}
	}
	nrn.Vm = ac.Spike.Thr + 10
	ac.SpikeFmVm(nrn)
	if nrn.Spike != 1 {
		t.Errorf("should spike again after refractory period")
	}
}

func TestMgBlock(t *testing.T) {
	np := NMDAParams{}
	np.Defaults()
	// fraction open increases monotonically with depolarization
	prev := np.MgGFmV(-90)
	for _, v := range []float32{-70, -50, -30, -10, 10, 30} {
		frac := np.MgGFmV(v)
		if frac <= prev {
			t.Errorf("Mg block fraction not monotonic at v = %v: %v <= %v", v, frac, prev)
		}
		prev = frac
	}
	if np.MgGFmV(-90) > 0.1 {
		t.Errorf("Mg block too open at -90 mV: %v", np.MgGFmV(-90))
	}
	if np.MgGFmV(30) < 0.9 {
		t.Errorf("Mg block too closed at +30 mV: %v", np.MgGFmV(30))
	}
}

func TestDipoleMoment(t *testing.T) {
	ac := ActParams{}
	ac.Defaults()
	ac.Dend.LenUm = 800
	nrn := &Neuron{}
	ac.InitActs(nrn)

	// depolarize the dendrite only: axial current flows dendrite to soma,
	// producing a positive dipole contribution
	nrn.VmDend = -55
	ac.VmFmG(nrn, true)
	if nrn.IAxial <= 0 {
		t.Errorf("IAxial should be positive with depolarized dendrite: %v", nrn.IAxial)
	}
	cor := nrn.IAxial * 800 * 1e-9
	if math32.Abs(ac.DipoleMoment(nrn)-cor) > difTol {
		t.Errorf("DipoleMoment: %v, cor: %v", ac.DipoleMoment(nrn), cor)
	}
}
