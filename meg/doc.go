// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package meg implements the sensor-space analysis chain that turns a
continuous MEG recording into a region-of-interest current time course:
band-pass filtering, stimulus event extraction, epoching with amplitude
rejection, evoked averaging, noise covariance estimation, minimum-norm
inverse estimation against a precomputed forward model, cortical
parcellation (FreeSurfer annot) reading, and sign-consistent label time
course extraction.

All estimation here is deterministic: repeated runs on the same inputs
produce identical outputs.
*/
package meg
