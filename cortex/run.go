// Copyright (c) 2024, The ERPsim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cortex

import (
	"sync"

	"github.com/emer/emergent/timer"
)

// TrialSeedStride is the per-trial increment applied to every drive's
// EventSeed, so trials are independent but individually reproducible
const TrialSeedStride = 17

// RunTrials runs nTrials independent trials of the given duration (msec)
// across nJobs parallel workers, each on its own clone of the network.
// Trial i uses seed offset i * TrialSeedStride for all drives.  Results
// are returned in trial order.  The first error encountered aborts the
// run.  The total wall-clock time across workers is returned in secs.
func (nt *Network) RunTrials(nTrials int, durMs float32, nJobs int) ([]*TrialResult, float64, error) {
	if nJobs < 1 {
		nJobs = 1
	}
	if nJobs > nTrials {
		nJobs = nTrials
	}
	results := make([]*TrialResult, nTrials)
	trials := make(chan int, nTrials)
	for ti := 0; ti < nTrials; ti++ {
		trials <- ti
	}
	close(trials)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	tmr := timer.Time{}
	tmr.Start()
	for wi := 0; wi < nJobs; wi++ {
		wg.Add(1)
		wnt := nt
		if wi > 0 {
			wnt = nt.Clone()
		}
		go func(wnt *Network) {
			defer wg.Done()
			for ti := range trials {
				mu.Lock()
				abort := firstErr != nil
				mu.Unlock()
				if abort {
					return
				}
				res, err := wnt.RunTrial(ti, durMs, int64(ti)*TrialSeedStride)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					results[ti] = res
				}
				mu.Unlock()
			}
		}(wnt)
	}
	wg.Wait()
	tmr.Stop()
	if firstErr != nil {
		return nil, tmr.TotalSecs(), firstErr
	}
	return results, tmr.TotalSecs(), nil
}
