// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cortex implements a laminar cortical column model for simulating
the aggregate current dipole measured by MEG / EEG sensors, in the spirit
of the neocortical template of Jones et al. (2009).

The column contains four cell populations: layer 2/3 and layer 5
pyramidal cells (two-compartment: soma + apical dendrite) and layer 2/3
and layer 5 basket interneurons (single compartment).  Synapses are
resolved per receptor channel: single-exponential AMPA and GABA-A, and
bi-exponential NMDA and GABA-B, with the NMDA Mg+ block voltage
dependence per Jahr & Stevens (1990).

Exogenous input arrives via named evoked Drives: seeded Gaussian
generators of spike events that target either the proximal (lemniscal
thalamic) or distal (cortico-cortical) synaptic zone, with per-population
AMPA / NMDA weights and conduction delays.

The signal of interest is the net intracellular current flowing along the
pyramidal apical dendrites: its sum over cells, times dendrite length,
is the aggregate current dipole moment, recorded per cycle into a
dipole.Dipole.  Multiple stochastic trials can be fanned out over a
bounded pool of workers with RunTrials; trials are independent and
reproduce exactly for equal drive seeds.
*/
package cortex
