// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package dataset derives the on-disk layout of a sample MEG dataset from
subject and task names, and fetches the dataset on demand from a remote
tar.gz archive when files are missing locally.
*/
package dataset

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Paths addresses the files of one subject / task recording under a
// dataset root directory
type Paths struct {
	Root    string `desc:"dataset root directory"`
	Subject string `desc:"subject identifier, e.g., sub-01"`
	Task    string `desc:"task name, e.g., auditory"`
}

// SubjectDir returns the subject's directory
func (pt *Paths) SubjectDir() string {
	return filepath.Join(pt.Root, pt.Subject)
}

// RawFile returns the path of the continuous recording data TSV
func (pt *Paths) RawFile() string {
	return filepath.Join(pt.SubjectDir(), fmt.Sprintf("%s_task-%s_meg.tsv", pt.Subject, pt.Task))
}

// ChannelsFile returns the path of the channel metadata TSV
func (pt *Paths) ChannelsFile() string {
	return filepath.Join(pt.SubjectDir(), fmt.Sprintf("%s_task-%s_channels.tsv", pt.Subject, pt.Task))
}

// ForwardFile returns the path of the precomputed forward solution TSV
func (pt *Paths) ForwardFile() string {
	return filepath.Join(pt.SubjectDir(), fmt.Sprintf("%s_task-%s_fwd.tsv", pt.Subject, pt.Task))
}

// AnnotFile returns the path of the cortical parcellation for the given
// hemisphere ("lh" or "rh")
func (pt *Paths) AnnotFile(hemi string) string {
	return filepath.Join(pt.SubjectDir(), "label", fmt.Sprintf("%s.aparc.annot", hemi))
}

// NetParamsFile returns the path of the JSON network-parameter file
func (pt *Paths) NetParamsFile() string {
	return filepath.Join(pt.Root, "net_params.json")
}

// Missing returns the subset of given paths that do not exist locally
func Missing(files ...string) []string {
	var mis []string
	for _, fn := range files {
		if _, err := os.Stat(fn); err != nil {
			mis = append(mis, fn)
		}
	}
	return mis
}

// Fetch downloads a tar.gz archive from the given URL and unpacks it
// under the dataset root, creating directories as needed.  Entries with
// path traversal components are rejected.
func (pt *Paths) Fetch(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("dataset.Fetch: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset.Fetch: %v: %v", url, resp.Status)
	}
	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("dataset.Fetch: %v", err)
	}
	defer gz.Close()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("dataset.Fetch: %v", err)
		}
		name := filepath.Clean(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("dataset.Fetch: unsafe archive path: %v", hdr.Name)
		}
		dst := filepath.Join(pt.Root, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dst, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return err
			}
			f, err := os.Create(dst)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("dataset.Fetch: %v: %v", hdr.Name, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
}

// FetchIfMissing downloads and unpacks the archive only if any of the
// given files is missing locally.  Returns the files that are still
// missing after the fetch, as an error if nonempty.
func (pt *Paths) FetchIfMissing(url string, files ...string) error {
	if len(Missing(files...)) == 0 {
		return nil
	}
	if err := pt.Fetch(url); err != nil {
		return err
	}
	if mis := Missing(files...); len(mis) > 0 {
		return fmt.Errorf("dataset.FetchIfMissing: still missing after fetch: %v", mis)
	}
	return nil
}
