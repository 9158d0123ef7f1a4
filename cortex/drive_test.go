// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"testing"
)

func TestDriveEventTimes(t *testing.T) {
	dr := NewDrive("evprox1", Proximal)
	dr.Mu = 26
	dr.Sigma = 2.5
	dr.NumSpikes = 1
	dr.EventSeed = 42

	ev1 := dr.EventTimes(10, 0)
	ev2 := dr.EventTimes(10, 0)
	if len(ev1) != 10 {
		t.Errorf("expected 10 cells, got %v", len(ev1))
	}
	for ci := range ev1 {
		for si := range ev1[ci] {
			if ev1[ci][si] != ev2[ci][si] {
				t.Errorf("same seed should give identical times: cell %v: %v vs %v",
					ci, ev1[ci][si], ev2[ci][si])
			}
			if ev1[ci][si] < 0 {
				t.Errorf("negative event time: %v", ev1[ci][si])
			}
		}
	}

	ev3 := dr.EventTimes(10, 17)
	same := true
	for ci := range ev1 {
		if ev1[ci][0] != ev3[ci][0] {
			same = false
		}
	}
	if same {
		t.Errorf("different seed offset should give different times")
	}
}

func TestDriveSynchronous(t *testing.T) {
	dr := NewDrive("evprox1", Proximal)
	dr.Mu = 26
	dr.Sigma = 0
	dr.NumSpikes = 2
	dr.EventSeed = 42

	evts := dr.EventTimes(5, 0)
	for ci := range evts {
		if len(evts[ci]) != 2 {
			t.Errorf("cell %v: expected 2 spikes, got %v", ci, len(evts[ci]))
		}
		for si := range evts[ci] {
			if evts[ci][si] != 26 {
				t.Errorf("sigma 0 should give exact Mu: cell %v got %v", ci, evts[ci][si])
			}
		}
	}
}

func TestDriveValidate(t *testing.T) {
	nt := StdColumn("TestNet", 4, 2)

	dr := NewDrive("bad", Proximal)
	dr.WtAMPA["NoSuchPop"] = 1
	dr.Delays["NoSuchPop"] = 1
	nt.AddDrive(dr)
	if err := nt.Build(); err == nil {
		t.Errorf("Build should fail on unknown drive target")
	}

	nt = StdColumn("TestNet", 4, 2)
	dr = NewDrive("nodelay", Proximal)
	dr.WtAMPA["L2Pyr"] = 1
	nt.AddDrive(dr)
	if err := nt.Build(); err == nil {
		t.Errorf("Build should fail on missing delay for targeted population")
	}

	nt = StdColumn("TestNet", 4, 2)
	StdDrives(nt, 100)
	if err := nt.Build(); err != nil {
		t.Errorf("standard drives should validate: %v", err)
	}
}

func TestDriveTargets(t *testing.T) {
	dr := NewDrive("ev", Distal)
	dr.WtAMPA["L5Pyr"] = 1
	dr.WtAMPA["L2Pyr"] = 1
	dr.WtNMDA["L2Basket"] = 1
	tgs := dr.Targets()
	cor := []string{"L2Basket", "L2Pyr", "L5Pyr"}
	if len(tgs) != len(cor) {
		t.Fatalf("expected %v targets, got %v", len(cor), len(tgs))
	}
	for i := range cor {
		if tgs[i] != cor[i] {
			t.Errorf("target %v: expected %v, got %v", i, cor[i], tgs[i])
		}
	}
}
