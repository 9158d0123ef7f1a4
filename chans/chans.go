// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the synaptic receptor channels used in computing
the two-compartment neuron approximation in cortex, based on the standard
equivalent RC circuit model of a neuron (i.e., basic Ohms law equations).
Channels are resolved per receptor: fast excitatory (AMPA), slow
voltage-dependent excitatory (NMDA), fast inhibitory (GABA-A), and slow
inhibitory (GABA-B), plus the constant leak.
*/
package chans

// Chans are the per-receptor ion channel values (conductances or reversal
// potentials) used in computing compartment currents.
type Chans struct {
	AMPA  float32 `desc:"fast excitatory sodium (Na) channels gated by synaptic glutamate"`
	NMDA  float32 `desc:"slow voltage-dependent excitatory channels gated by glutamate, with Mg+ block"`
	GABAA float32 `desc:"fast inhibitory chloride (Cl-) channels gated by synaptic GABA"`
	GABAB float32 `desc:"slow inhibitory potassium (K+) channels gated by metabotropic GABA receptors"`
	L     float32 `desc:"constant leak (potassium, K+) channels -- determines resting potential"`
}

// SetAll sets all the values
func (ch *Chans) SetAll(ampa, nmda, gabaa, gabab, l float32) {
	ch.AMPA, ch.NMDA, ch.GABAA, ch.GABAB, ch.L = ampa, nmda, gabaa, gabab, l
}

// SetFmOtherMinus sets all the values from other Chans minus given value
func (ch *Chans) SetFmOtherMinus(oth Chans, minus float32) {
	ch.AMPA, ch.NMDA, ch.GABAA, ch.GABAB, ch.L = oth.AMPA-minus, oth.NMDA-minus, oth.GABAA-minus, oth.GABAB-minus, oth.L-minus
}

// Exc returns the total excitatory (AMPA + NMDA) value
func (ch *Chans) Exc() float32 {
	return ch.AMPA + ch.NMDA
}

// Inh returns the total inhibitory (GABA-A + GABA-B) value
func (ch *Chans) Inh() float32 {
	return ch.GABAA + ch.GABAB
}
