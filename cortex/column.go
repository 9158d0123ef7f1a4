// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

// StdColumn returns the standard laminar column: layer 2/3 and layer 5
// pyramidal populations with their basket interneurons, wired with the
// canonical within- and between-layer projections.  Sizes follow the
// usual 100 pyramidal / 35 basket cells per layer; pass different sizes
// for reduced test networks.
func StdColumn(name string, nPyr, nBasket int) *Network {
	nt := NewNetwork(name)
	l2p := nt.AddPop("L2Pyr", L2Pyr, nPyr)
	l2p.SetClass("L2 Pyr")
	l2b := nt.AddPop("L2Basket", L2Basket, nBasket)
	l2b.SetClass("L2 Basket")
	l5p := nt.AddPop("L5Pyr", L5Pyr, nPyr)
	l5p.SetClass("L5 Pyr")
	l5b := nt.AddPop("L5Basket", L5Basket, nBasket)
	l5b.SetClass("L5 Basket")

	// within-layer recurrent excitation and feedback inhibition
	nt.ConnectPops("L2Pyr", "L2Pyr", AMPA, Proximal, 0.5, 1)
	nt.ConnectPops("L2Pyr", "L2Basket", AMPA, Proximal, 0.5, 1)
	nt.ConnectPops("L2Basket", "L2Pyr", GABAA, Proximal, 5, 1)
	nt.ConnectPops("L2Basket", "L2Pyr", GABAB, Proximal, 2, 1)

	nt.ConnectPops("L5Pyr", "L5Pyr", AMPA, Proximal, 0.5, 1)
	nt.ConnectPops("L5Pyr", "L5Basket", AMPA, Proximal, 0.5, 1)
	nt.ConnectPops("L5Basket", "L5Pyr", GABAA, Proximal, 5, 1)
	nt.ConnectPops("L5Basket", "L5Pyr", GABAB, Proximal, 2, 1)

	// feedforward L2/3 -> L5: pyramidals onto apical dendrites, plus
	// feedforward inhibition via L5 baskets
	nt.ConnectPops("L2Pyr", "L5Pyr", AMPA, Distal, 0.25, 3)
	nt.ConnectPops("L2Pyr", "L5Basket", AMPA, Proximal, 0.25, 3)
	nt.ConnectPops("L2Basket", "L5Pyr", GABAA, Proximal, 1, 3)

	return nt
}

// StdDrives adds the standard four evoked drives for the auditory evoked
// response paradigm: two proximal and two distal, alternating, with the
// canonical mean times (msec after stimulus onset).  The base seed
// separates the drives' random streams.
func StdDrives(nt *Network, baseSeed int64) {
	ev1 := NewDrive("evprox1", Proximal)
	ev1.Mu = 26
	ev1.Sigma = 2.5
	ev1.WtAMPA["L2Pyr"] = 0.4
	ev1.WtAMPA["L2Basket"] = 0.6
	ev1.WtAMPA["L5Pyr"] = 0.2
	ev1.WtAMPA["L5Basket"] = 0.4
	ev1.WtNMDA["L5Pyr"] = 0.1
	ev1.Delays["L2Pyr"] = 0.1
	ev1.Delays["L2Basket"] = 0.1
	ev1.Delays["L5Pyr"] = 1
	ev1.Delays["L5Basket"] = 1
	ev1.EventSeed = baseSeed
	nt.AddDrive(ev1)

	ev2 := NewDrive("evdist1", Distal)
	ev2.Mu = 64
	ev2.Sigma = 3.9
	ev2.WtAMPA["L2Pyr"] = 0.9
	ev2.WtAMPA["L2Basket"] = 0.6
	ev2.WtAMPA["L5Pyr"] = 0.9
	ev2.WtNMDA["L2Pyr"] = 0.1
	ev2.WtNMDA["L5Pyr"] = 0.1
	ev2.Delays["L2Pyr"] = 0.1
	ev2.Delays["L2Basket"] = 0.1
	ev2.Delays["L5Pyr"] = 0.1
	ev2.EventSeed = baseSeed + 1
	nt.AddDrive(ev2)

	ev3 := NewDrive("evprox2", Proximal)
	ev3.Mu = 137
	ev3.Sigma = 8.3
	ev3.WtAMPA["L2Pyr"] = 0.7
	ev3.WtAMPA["L2Basket"] = 0.05
	ev3.WtAMPA["L5Pyr"] = 0.7
	ev3.WtAMPA["L5Basket"] = 0.05
	ev3.Delays["L2Pyr"] = 0.1
	ev3.Delays["L2Basket"] = 0.1
	ev3.Delays["L5Pyr"] = 1
	ev3.Delays["L5Basket"] = 1
	ev3.EventSeed = baseSeed + 2
	nt.AddDrive(ev3)

	ev4 := NewDrive("evdist2", Distal)
	ev4.Mu = 200
	ev4.Sigma = 12
	ev4.WtAMPA["L2Pyr"] = 0.6
	ev4.WtAMPA["L2Basket"] = 0.3
	ev4.WtAMPA["L5Pyr"] = 0.6
	ev4.WtNMDA["L2Pyr"] = 0.1
	ev4.WtNMDA["L5Pyr"] = 0.1
	ev4.Delays["L2Pyr"] = 0.1
	ev4.Delays["L2Basket"] = 0.1
	ev4.Delays["L5Pyr"] = 0.1
	ev4.EventSeed = baseSeed + 3
	nt.AddDrive(ev4)
}
