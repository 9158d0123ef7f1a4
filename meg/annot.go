// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meg

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// annot files are big-endian binary: a vertex -> packed-RGB label value
// list followed by a version-2 color table naming each label value.

// AnnotLabel is one named entry in a parcellation color table
type AnnotLabel struct {
	ID   int32  `desc:"structure id"`
	Name string `desc:"anatomical name, e.g., superiortemporal"`
	R    int32  `desc:"red"`
	G    int32  `desc:"green"`
	B    int32  `desc:"blue"`
	A    int32  `desc:"alpha / flag field"`
}

// Val returns the packed annotation value for this label: r + g<<8 + b<<16
func (al *AnnotLabel) Val() int32 {
	return al.R | al.G<<8 | al.B<<16
}

// meg.Annot is a FreeSurfer cortical parcellation for one hemisphere:
// an annotation value per listed surface vertex, plus the color table
// mapping values to anatomical names
type Annot struct {
	Vertices []int32      `desc:"surface vertex numbers"`
	Values   []int32      `desc:"packed annotation value per vertex"`
	Labels   []AnnotLabel `desc:"color table entries"`
}

// LabelByNameTry returns the color table entry with given name, or an
// error if not found
func (an *Annot) LabelByNameTry(name string) (*AnnotLabel, error) {
	for li := range an.Labels {
		if an.Labels[li].Name == name {
			return &an.Labels[li], nil
		}
	}
	return nil, fmt.Errorf("meg.Annot: label named: %v not found", name)
}

// LabelVertices returns the surface vertex numbers annotated with the
// named label
func (an *Annot) LabelVertices(name string) ([]int32, error) {
	lb, err := an.LabelByNameTry(name)
	if err != nil {
		return nil, err
	}
	val := lb.Val()
	var verts []int32
	for vi, v := range an.Values {
		if v == val {
			verts = append(verts, an.Vertices[vi])
		}
	}
	return verts, nil
}

// ReadAnnot reads a FreeSurfer annot from the given reader
func ReadAnnot(r io.Reader) (*Annot, error) {
	br := bufio.NewReader(r)
	var vtxct int32
	if err := binary.Read(br, binary.BigEndian, &vtxct); err != nil {
		return nil, fmt.Errorf("meg.ReadAnnot: %v", err)
	}
	if vtxct < 0 {
		return nil, fmt.Errorf("meg.ReadAnnot: negative vertex count: %v", vtxct)
	}
	an := &Annot{}
	an.Vertices = make([]int32, vtxct)
	an.Values = make([]int32, vtxct)
	for vi := int32(0); vi < vtxct; vi++ {
		if err := binary.Read(br, binary.BigEndian, &an.Vertices[vi]); err != nil {
			return nil, fmt.Errorf("meg.ReadAnnot: vertex %v: %v", vi, err)
		}
		if err := binary.Read(br, binary.BigEndian, &an.Values[vi]); err != nil {
			return nil, fmt.Errorf("meg.ReadAnnot: value %v: %v", vi, err)
		}
	}
	var tag int32
	if err := binary.Read(br, binary.BigEndian, &tag); err != nil {
		if err == io.EOF {
			return an, nil // no color table
		}
		return nil, fmt.Errorf("meg.ReadAnnot: %v", err)
	}
	if tag != 1 {
		return an, nil
	}
	var vers int32
	if err := binary.Read(br, binary.BigEndian, &vers); err != nil {
		return nil, fmt.Errorf("meg.ReadAnnot: %v", err)
	}
	if vers > 0 {
		return nil, fmt.Errorf("meg.ReadAnnot: old-format color table (n = %v) not supported", vers)
	}
	if -vers != 2 {
		return nil, fmt.Errorf("meg.ReadAnnot: unsupported color table version: %v", -vers)
	}
	var maxID int32
	if err := binary.Read(br, binary.BigEndian, &maxID); err != nil {
		return nil, fmt.Errorf("meg.ReadAnnot: %v", err)
	}
	fname, err := readAnnotString(br)
	if err != nil {
		return nil, fmt.Errorf("meg.ReadAnnot: table filename: %v", err)
	}
	_ = fname
	var nent int32
	if err := binary.Read(br, binary.BigEndian, &nent); err != nil {
		return nil, fmt.Errorf("meg.ReadAnnot: %v", err)
	}
	for ei := int32(0); ei < nent; ei++ {
		var lb AnnotLabel
		if err := binary.Read(br, binary.BigEndian, &lb.ID); err != nil {
			return nil, fmt.Errorf("meg.ReadAnnot: entry %v: %v", ei, err)
		}
		lb.Name, err = readAnnotString(br)
		if err != nil {
			return nil, fmt.Errorf("meg.ReadAnnot: entry %v name: %v", ei, err)
		}
		for _, fp := range []*int32{&lb.R, &lb.G, &lb.B, &lb.A} {
			if err := binary.Read(br, binary.BigEndian, fp); err != nil {
				return nil, fmt.Errorf("meg.ReadAnnot: entry %v color: %v", ei, err)
			}
		}
		an.Labels = append(an.Labels, lb)
	}
	return an, nil
}

// OpenAnnot opens a FreeSurfer annot file
func OpenAnnot(filename string) (*Annot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadAnnot(f)
}

// WriteAnnot writes the annotation in FreeSurfer version-2 format
func (an *Annot) WriteAnnot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.BigEndian, int32(len(an.Vertices))); err != nil {
		return err
	}
	for vi := range an.Vertices {
		if err := binary.Write(bw, binary.BigEndian, an.Vertices[vi]); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.BigEndian, an.Values[vi]); err != nil {
			return err
		}
	}
	if len(an.Labels) > 0 {
		var maxID int32
		for _, lb := range an.Labels {
			if lb.ID > maxID {
				maxID = lb.ID
			}
		}
		for _, v := range []int32{1, -2, maxID + 1} {
			if err := binary.Write(bw, binary.BigEndian, v); err != nil {
				return err
			}
		}
		if err := writeAnnotString(bw, "internal"); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.BigEndian, int32(len(an.Labels))); err != nil {
			return err
		}
		for _, lb := range an.Labels {
			if err := binary.Write(bw, binary.BigEndian, lb.ID); err != nil {
				return err
			}
			if err := writeAnnotString(bw, lb.Name); err != nil {
				return err
			}
			for _, v := range []int32{lb.R, lb.G, lb.B, lb.A} {
				if err := binary.Write(bw, binary.BigEndian, v); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// SaveAnnot saves the annotation to a file
func (an *Annot) SaveAnnot(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return an.WriteAnnot(f)
}

// readAnnotString reads a length-prefixed, NUL-terminated string
func readAnnotString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	if n < 0 || n > 1<<20 {
		return "", fmt.Errorf("bad string length: %v", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}

// writeAnnotString writes a length-prefixed, NUL-terminated string
func writeAnnotString(w io.Writer, s string) error {
	b := append([]byte(s), 0)
	if err := binary.Write(w, binary.BigEndian, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
