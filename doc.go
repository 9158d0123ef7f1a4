// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package erpsim is the overall repository for reproducing MEG evoked
responses (ERPs) with a laminar cortical column simulation, implemented
in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* meg: sensor-space analysis of a continuous MEG recording -- band-pass
filtering, event extraction, epoching with artifact rejection, noise
covariance, and a minimum-norm inverse solution onto the cortical surface,
with label time-course extraction from a FreeSurfer parcellation.

* cortex: the laminar column network simulator -- two-compartment spiking
pyramidal and basket cells in layers 2/3 and 5, receptor-resolved synapses
(AMPA, NMDA, GABA-A, GABA-B), timed evoked drives targeting proximal vs.
distal dendrites, and aggregate current-dipole output, run over multiple
stochastic trials.

* chans: synaptic receptor channel parameters shared by cortex.

* dipole: the dipole time-series record produced by cortex, with
moving-average smoothing, linear rescaling, trial averaging, and CSV I/O.

* dataset: sample dataset path conventions and on-demand fetching from a
remote archive.

* examples: these compile into runnable programs.  examples/erp is the
full tutorial pipeline: it derives an empirical dipole time course from
the sample MEG recording and reproduces it with the column model, plotting
both for comparison.
*/
package erpsim
