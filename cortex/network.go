// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"fmt"
	"log"
	"sort"

	"github.com/emer/emergent/params"
	"github.com/goki/mat32"
	"github.com/neurodyn/erpsim/dipole"
)

//////////////////////////////////////////////////////////////////////////////////////
//  Pop

// cortex.Pop is one cell population in the column: a named, homogeneous
// group of neurons of one cell type, sharing activation parameters.
type Pop struct {
	Nm      string    `desc:"name of the population, e.g., L5Pyr"`
	Cls     string    `desc:"space-separated style classes for parameter styling, e.g., L5 Pyr"`
	Typ     CellType  `desc:"cell type of this population"`
	N       int       `desc:"number of cells"`
	Act     ActParams `view:"no-inline" desc:"activation parameters for all cells in this population"`
	Neurons []Neuron  `view:"-" desc:"slice of neuron state -- allocated by Build"`

	// GBuf is the ring buffer of future conductance deliveries:
	// [delay step][cell * NSlots + slot], rotated by BufPos each cycle
	GBuf   [][]float32 `view:"-" desc:"conductance delivery ring buffer"`
	BufPos int         `view:"-" desc:"current ring buffer position"`
}

// params.Styler interface, for styled parameter application
func (pp *Pop) TypeName() string { return "Pop" }
func (pp *Pop) Name() string     { return pp.Nm }
func (pp *Pop) Class() string    { return pp.Cls }

// SetClass sets the style class(es) for this population
func (pp *Pop) SetClass(cls string) { pp.Cls = cls }

// Defaults sets default parameters for this population based on its type
func (pp *Pop) Defaults() {
	pp.Act.Defaults()
	switch pp.Typ {
	case L2Pyr:
		pp.Act.Dend.LenUm = 300
	case L5Pyr:
		pp.Act.Dend.LenUm = 800
	default: // baskets: single compartment, faster membrane
		pp.Act.Dend.LenUm = 0
		pp.Act.Dt.CSoma = 50
		pp.Act.Adapt.On = false
	}
	pp.Act.Update()
}

// UpdateParams updates all params given any changes that might have been
// made to individual values
func (pp *Pop) UpdateParams() {
	pp.Act.Update()
}

// InitActs initializes membrane state for all cells and clears the
// delivery buffer
func (pp *Pop) InitActs() {
	for ni := range pp.Neurons {
		pp.Act.InitActs(&pp.Neurons[ni])
	}
	for bi := range pp.GBuf {
		buf := pp.GBuf[bi]
		for i := range buf {
			buf[i] = 0
		}
	}
	pp.BufPos = 0
}

// ApplyGBuf applies the current ring buffer slot's conductance increments
// to the neurons and advances the ring
func (pp *Pop) ApplyGBuf() {
	if len(pp.GBuf) == 0 {
		return
	}
	buf := pp.GBuf[pp.BufPos]
	for ni := range pp.Neurons {
		nrn := &pp.Neurons[ni]
		bi := ni * NSlots
		nrn.GAmpa += buf[bi+SlotAmpaProx]
		nrn.GNmdaD += buf[bi+SlotNmdaProx]
		nrn.GGabaA += buf[bi+SlotGabaA]
		nrn.GGabaBD += buf[bi+SlotGabaB]
		nrn.GAmpaDend += buf[bi+SlotAmpaDist]
		nrn.GNmdaDendD += buf[bi+SlotNmdaDist]
	}
	for i := range buf {
		buf[i] = 0
	}
	pp.BufPos = (pp.BufPos + 1) % len(pp.GBuf)
}

// Deposit adds a conductance increment for the given cell and slot,
// delaySteps cycles in the future
func (pp *Pop) Deposit(cell, slot, delaySteps int, w float32) {
	di := (pp.BufPos + delaySteps) % len(pp.GBuf)
	pp.GBuf[di][cell*NSlots+slot] += w
}

// UnitValues returns the values of given neuron variable for all cells,
// appending to the given slice
func (pp *Pop) UnitValues(vals *[]float32, varNm string) error {
	*vals = (*vals)[:0]
	for ni := range pp.Neurons {
		v, err := pp.Neurons[ni].VarByName(varNm)
		if err != nil {
			return err
		}
		*vals = append(*vals, v)
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Network

// SpikeEvent records one output spike of a simulated cell
type SpikeEvent struct {
	Time float32 `desc:"spike time (msec)"`
	Pop  string  `desc:"population name"`
	Cell int     `desc:"cell index within population"`
}

// driveEv is one scheduled exogenous conductance delivery, resolved to a
// population, cell, slot and cycle at trial start
type driveEv struct {
	Cyc  int
	Pop  int
	Cell int
	Slot int
	W    float32
}

// cortex.Network is the laminar column: populations, internal
// connections, and evoked drives, plus per-trial runtime state.
type Network struct {
	Nm     string   `desc:"network name"`
	Pops   []*Pop   `desc:"cell populations in order added"`
	Conns  []*Conn  `desc:"internal projections"`
	Drives []*Drive `desc:"named evoked drives"`
	Time   Time     `desc:"timing state"`

	// trial schedule state, rebuilt per trial
	evs    []driveEv    `view:"-" desc:"per-trial drive schedule, sorted by cycle"`
	evPos  int          `view:"-" desc:"cursor into evs"`
	devs   []DriveEvent `view:"-" desc:"per-trial drive raster record"`
	spikes []SpikeEvent `view:"-" desc:"per-trial output spike record"`
	built  bool         `view:"-"`
}

// NewNetwork returns a new network with the given name
func NewNetwork(name string) *Network {
	nt := &Network{Nm: name}
	nt.Time.Defaults()
	return nt
}

// AddPop adds a new population with given name, cell type and size
func (nt *Network) AddPop(name string, typ CellType, n int) *Pop {
	pp := &Pop{Nm: name, Typ: typ, N: n}
	pp.Defaults()
	nt.Pops = append(nt.Pops, pp)
	return pp
}

// PopByNameTry returns a population by name, or an error if not found
func (nt *Network) PopByNameTry(name string) (*Pop, error) {
	for _, pp := range nt.Pops {
		if pp.Nm == name {
			return pp, nil
		}
	}
	return nil, fmt.Errorf("population named: %v not found in network: %v", name, nt.Nm)
}

// PopByName returns a population by name, logging an error if not found
func (nt *Network) PopByName(name string) *Pop {
	pp, err := nt.PopByNameTry(name)
	if err != nil {
		log.Println(err)
	}
	return pp
}

// ConnectPops adds an internal all-to-all projection between populations,
// by name, onto the given receptor at the given zone
func (nt *Network) ConnectPops(send, recv string, recep Receptor, loc SynLoc, wt, delay float32) *Conn {
	cn := &Conn{Send: send, Recv: recv, Recep: recep, Loc: loc, Wt: wt, Delay: delay}
	nt.Conns = append(nt.Conns, cn)
	return cn
}

// AddDrive adds an evoked drive.  Validation happens at Build time so
// drives can be added before their target populations.
func (nt *Network) AddDrive(dr *Drive) {
	nt.Drives = append(nt.Drives, dr)
}

// DriveByNameTry returns a drive by name, or an error if not found
func (nt *Network) DriveByNameTry(name string) (*Drive, error) {
	for _, dr := range nt.Drives {
		if dr.Name == name {
			return dr, nil
		}
	}
	return nil, fmt.Errorf("drive named: %v not found in network: %v", name, nt.Nm)
}

// Defaults sets default parameters on all populations
func (nt *Network) Defaults() {
	for _, pp := range nt.Pops {
		pp.Defaults()
	}
	for _, cn := range nt.Conns {
		if cn.Delay == 0 {
			cn.Defaults()
		}
	}
}

// UpdateParams updates derived parameters on all populations
func (nt *Network) UpdateParams() {
	for _, pp := range nt.Pops {
		pp.UpdateParams()
	}
}

// ApplyParams applies given parameter style Sheet to the populations in
// this network.  Calls UpdateParams to ensure derived parameters are all
// updated.  If setMsg is true, a message is printed to confirm each
// parameter that is set.  Returns true if any params were set, and error
// if there were any errors.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for _, pp := range nt.Pops {
		app, err := pars.Apply(pp, setMsg)
		if app {
			pp.UpdateParams()
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

// maxDelaySteps returns the ring buffer length needed to cover the
// longest internal connection delay
func (nt *Network) maxDelaySteps() int {
	max := 1
	for _, cn := range nt.Conns {
		if cn.DelaySteps > max {
			max = cn.DelaySteps
		}
	}
	return max + 1
}

// Build resolves all connection and drive references, validates drives,
// and allocates neuron and buffer state.  Must be called before running.
func (nt *Network) Build() error {
	dt := nt.Time.TimePerCyc
	popIdx := make(map[string]int, len(nt.Pops))
	for pi, pp := range nt.Pops {
		popIdx[pp.Nm] = pi
		pp.Neurons = make([]Neuron, pp.N)
		pp.Act.Update()
	}
	for _, cn := range nt.Conns {
		si, ok := popIdx[cn.Send]
		if !ok {
			return fmt.Errorf("connection send population: %v not found in network: %v", cn.Send, nt.Nm)
		}
		ri, ok := popIdx[cn.Recv]
		if !ok {
			return fmt.Errorf("connection recv population: %v not found in network: %v", cn.Recv, nt.Nm)
		}
		cn.SendIdx = si
		cn.RecvIdx = ri
		cn.Slot = SlotFor(cn.Recep, cn.Loc, nt.Pops[ri].Typ)
		cn.DelaySteps = int(mat32.Round(cn.Delay / dt))
		if cn.DelaySteps < 1 {
			cn.DelaySteps = 1
		}
		cn.WtEff = cn.Wt / float32(nt.Pops[ri].N)
	}
	for _, dr := range nt.Drives {
		if err := dr.Validate(nt); err != nil {
			return err
		}
	}
	mds := nt.maxDelaySteps()
	for _, pp := range nt.Pops {
		pp.GBuf = make([][]float32, mds)
		for bi := range pp.GBuf {
			pp.GBuf[bi] = make([]float32, pp.N*NSlots)
		}
	}
	nt.built = true
	return nil
}

// InitActs initializes all per-trial state: membrane potentials,
// conductance buffers, schedules and records
func (nt *Network) InitActs() {
	for _, pp := range nt.Pops {
		pp.InitActs()
	}
	nt.Time.TrialStart()
	nt.evs = nil
	nt.evPos = 0
	nt.devs = nil
	nt.spikes = nil
}

// ScheduleDrives generates each drive's event times with the given trial
// seed offset and resolves them into the per-trial delivery schedule.
// Events landing beyond the trial length are silently dropped at run time.
func (nt *Network) ScheduleDrives(seedOff int64) {
	dt := nt.Time.TimePerCyc
	for _, dr := range nt.Drives {
		for _, tnm := range dr.Targets() {
			pp := nt.PopByName(tnm)
			pi := 0
			for i, p := range nt.Pops {
				if p == pp {
					pi = i
					break
				}
			}
			delay := dr.Delays[tnm]
			evts := dr.EventTimes(pp.N, seedOff)
			for ci, ts := range evts {
				for _, t := range ts {
					cyc := int(mat32.Round((float32(t) + delay) / dt))
					if wa, ok := dr.WtAMPA[tnm]; ok && wa != 0 {
						slot := SlotFor(AMPA, dr.Loc, pp.Typ)
						nt.evs = append(nt.evs, driveEv{Cyc: cyc, Pop: pi, Cell: ci, Slot: slot, W: wa})
					}
					if wn, ok := dr.WtNMDA[tnm]; ok && wn != 0 {
						slot := SlotFor(NMDA, dr.Loc, pp.Typ)
						nt.evs = append(nt.evs, driveEv{Cyc: cyc, Pop: pi, Cell: ci, Slot: slot, W: wn})
					}
					nt.devs = append(nt.devs, DriveEvent{Time: float32(t), Drive: dr.Name, Cell: ci})
				}
			}
		}
	}
	sort.Slice(nt.evs, func(i, j int) bool { return nt.evs[i].Cyc < nt.evs[j].Cyc })
	nt.evPos = 0
}

// applyDrives applies all scheduled drive deliveries for the current cycle
func (nt *Network) applyDrives() {
	cyc := nt.Time.Cycle
	for nt.evPos < len(nt.evs) && nt.evs[nt.evPos].Cyc == cyc {
		ev := &nt.evs[nt.evPos]
		pp := nt.Pops[ev.Pop]
		switch ev.Slot {
		case SlotAmpaProx:
			pp.Neurons[ev.Cell].GAmpa += ev.W
		case SlotNmdaProx:
			pp.Neurons[ev.Cell].GNmdaD += ev.W
		case SlotAmpaDist:
			pp.Neurons[ev.Cell].GAmpaDend += ev.W
		case SlotNmdaDist:
			pp.Neurons[ev.Cell].GNmdaDendD += ev.W
		}
		nt.evPos++
	}
	// events scheduled for already-past cycles can only arise from
	// unsorted state; skip them to preserve forward progress
	for nt.evPos < len(nt.evs) && nt.evs[nt.evPos].Cyc < cyc {
		nt.evPos++
	}
}

// Cycle runs one cycle of updating: drive and buffered conductance
// delivery, synaptic decay, membrane integration, spiking, and spike
// propagation into the delivery buffers.  Returns the instantaneous
// layer 2/3 and layer 5 dipole moments (nAm).
func (nt *Network) Cycle() (dpL2, dpL5 float64) {
	nt.applyDrives()
	for _, pp := range nt.Pops {
		pp.ApplyGBuf()
	}
	for pi, pp := range nt.Pops {
		twoComp := pp.Typ.IsPyr()
		var dpSum float32
		for ni := range pp.Neurons {
			nrn := &pp.Neurons[ni]
			pp.Act.GDecay(nrn)
			pp.Act.VmFmG(nrn, twoComp)
			pp.Act.SpikeFmVm(nrn)
			if nrn.Spike > 0 {
				nt.spikes = append(nt.spikes, SpikeEvent{Time: nt.Time.Time, Pop: pp.Nm, Cell: ni})
				nt.sendSpike(pi)
			}
			if twoComp {
				dpSum += pp.Act.DipoleMoment(nrn)
			}
		}
		switch pp.Typ {
		case L2Pyr:
			dpL2 += float64(dpSum)
		case L5Pyr:
			dpL5 += float64(dpSum)
		}
	}
	nt.Time.CycleInc()
	return
}

// sendSpike deposits conductance increments for one spike of a cell in
// the given (sending) population, into all receiving populations' buffers
func (nt *Network) sendSpike(sendPop int) {
	for _, cn := range nt.Conns {
		if cn.SendIdx != sendPop {
			continue
		}
		rp := nt.Pops[cn.RecvIdx]
		for ci := 0; ci < rp.N; ci++ {
			rp.Deposit(ci, cn.Slot, cn.DelaySteps, cn.WtEff)
		}
	}
}

// TrialResult holds the outputs of one simulation trial
type TrialResult struct {
	Trial       int            `desc:"trial index"`
	Dpl         *dipole.Dipole `desc:"dipole time series"`
	Spikes      []SpikeEvent   `desc:"output spikes of all simulated cells"`
	DriveEvents []DriveEvent   `desc:"input spikes generated by the drives"`
}

// RunTrial runs one full trial of the given duration (msec), using the
// per-trial seed offset for drive event generation, and returns the
// trial outputs.  The network must be Built.
func (nt *Network) RunTrial(trial int, durMs float32, seedOff int64) (*TrialResult, error) {
	if !nt.built {
		return nil, fmt.Errorf("network: %v has not been Built", nt.Nm)
	}
	nt.InitActs()
	nt.ScheduleDrives(seedOff)
	ncyc := int(durMs / nt.Time.TimePerCyc)
	dpl := dipole.New(ncyc)
	for cyc := 0; cyc < ncyc; cyc++ {
		t := float64(nt.Time.Time)
		l2, l5 := nt.Cycle()
		dpl.Add(t, l2+l5, l2, l5)
	}
	res := &TrialResult{Trial: trial, Dpl: dpl}
	res.Spikes = make([]SpikeEvent, len(nt.spikes))
	copy(res.Spikes, nt.spikes)
	res.DriveEvents = make([]DriveEvent, len(nt.devs))
	copy(res.DriveEvents, nt.devs)
	return res, nil
}

// Clone returns a structurally identical copy of the network with fresh
// runtime state, suitable for running trials in a parallel worker.
// Parameters and connectivity are copied; the copy must be Built by the
// caller if the original was not yet built, otherwise it is ready to run.
func (nt *Network) Clone() *Network {
	cp := NewNetwork(nt.Nm)
	cp.Time = nt.Time
	for _, pp := range nt.Pops {
		np := cp.AddPop(pp.Nm, pp.Typ, pp.N)
		np.Cls = pp.Cls
		np.Act = pp.Act
	}
	for _, cn := range nt.Conns {
		c := *cn
		cp.Conns = append(cp.Conns, &c)
	}
	for _, dr := range nt.Drives {
		d := *dr
		cp.Drives = append(cp.Drives, &d)
	}
	if nt.built {
		if err := cp.Build(); err != nil {
			log.Println(err)
		}
	}
	return cp
}
