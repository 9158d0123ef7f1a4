// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tarGz builds an in-memory tar.gz archive from name -> contents
func tarGz(t *testing.T, files map[string]string) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for nm, body := range files {
		hdr := &tar.Header{Name: nm, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("tar body: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestPaths(t *testing.T) {
	pt := &Paths{Root: "/data", Subject: "sub-01", Task: "auditory"}
	if pt.RawFile() != filepath.Join("/data", "sub-01", "sub-01_task-auditory_meg.tsv") {
		t.Errorf("RawFile: %v", pt.RawFile())
	}
	if !strings.HasSuffix(pt.AnnotFile("lh"), filepath.Join("label", "lh.aparc.annot")) {
		t.Errorf("AnnotFile: %v", pt.AnnotFile("lh"))
	}
	if filepath.Dir(pt.NetParamsFile()) != "/data" {
		t.Errorf("NetParamsFile: %v", pt.NetParamsFile())
	}
}

func TestFetchIfMissing(t *testing.T) {
	pt := &Paths{Root: t.TempDir(), Subject: "sub-01", Task: "auditory"}
	arch := tarGz(t, map[string]string{
		"sub-01/sub-01_task-auditory_meg.tsv":      "data",
		"sub-01/sub-01_task-auditory_channels.tsv": "chans",
	})
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(arch)
	}))
	defer srv.Close()

	files := []string{pt.RawFile(), pt.ChannelsFile()}
	if err := pt.FetchIfMissing(srv.URL, files...); err != nil {
		t.Fatalf("FetchIfMissing failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 fetch, got %v", hits)
	}
	b, err := os.ReadFile(pt.RawFile())
	if err != nil || string(b) != "data" {
		t.Errorf("fetched file contents: %q, %v", b, err)
	}

	// already present: no second fetch
	if err := pt.FetchIfMissing(srv.URL, files...); err != nil {
		t.Fatalf("second FetchIfMissing failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("should not re-fetch present files: %v hits", hits)
	}

	// archive lacking a requested file is an error
	if err := pt.FetchIfMissing(srv.URL, pt.ForwardFile()); err == nil {
		t.Errorf("missing-after-fetch should fail")
	}
}

func TestFetchRejectsTraversal(t *testing.T) {
	pt := &Paths{Root: t.TempDir(), Subject: "sub-01", Task: "auditory"}
	arch := tarGz(t, map[string]string{"../evil.txt": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(arch)
	}))
	defer srv.Close()
	if err := pt.Fetch(srv.URL); err == nil {
		t.Errorf("path traversal should be rejected")
	}
}

func TestFetchBadStatus(t *testing.T) {
	pt := &Paths{Root: t.TempDir()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	if err := pt.Fetch(srv.URL); err == nil {
		t.Errorf("non-200 response should fail")
	}
}
