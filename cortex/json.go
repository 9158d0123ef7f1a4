// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"encoding/json"
	"io/ioutil"
)

// PopSpec is the serializable description of one population
type PopSpec struct {
	Name  string   `desc:"population name"`
	Class string   `desc:"style classes"`
	Type  CellType `desc:"cell type"`
	N     int      `desc:"number of cells"`
}

// NetSpec is the serializable description of a network: populations,
// internal connections and drives, without any runtime state.  It is the
// on-disk format for column configurations.
type NetSpec struct {
	Name   string    `desc:"network name"`
	Pops   []PopSpec `desc:"populations"`
	Conns  []Conn    `desc:"internal projections"`
	Drives []Drive   `desc:"evoked drives"`
}

// Spec returns the serializable description of this network
func (nt *Network) Spec() *NetSpec {
	ns := &NetSpec{Name: nt.Nm}
	for _, pp := range nt.Pops {
		ns.Pops = append(ns.Pops, PopSpec{Name: pp.Nm, Class: pp.Cls, Type: pp.Typ, N: pp.N})
	}
	for _, cn := range nt.Conns {
		ns.Conns = append(ns.Conns, *cn)
	}
	for _, dr := range nt.Drives {
		ns.Drives = append(ns.Drives, *dr)
	}
	return ns
}

// FromSpec builds a new network from the serializable description,
// with default parameters per population type.  The caller must Build.
func FromSpec(ns *NetSpec) *Network {
	nt := NewNetwork(ns.Name)
	for _, ps := range ns.Pops {
		pp := nt.AddPop(ps.Name, ps.Type, ps.N)
		pp.Cls = ps.Class
	}
	for i := range ns.Conns {
		cn := ns.Conns[i]
		nt.Conns = append(nt.Conns, &cn)
	}
	for i := range ns.Drives {
		dr := ns.Drives[i]
		nt.Drives = append(nt.Drives, &dr)
	}
	return nt
}

// SaveJSON saves the network description to a JSON file
func (nt *Network) SaveJSON(filename string) error {
	b, err := json.MarshalIndent(nt.Spec(), "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, b, 0644)
}

// OpenJSON opens a network description from a JSON file and builds a
// new network from it
func OpenJSON(filename string) (*Network, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	ns := &NetSpec{}
	if err := json.Unmarshal(b, ns); err != nil {
		return nil, err
	}
	return FromSpec(ns), nil
}
