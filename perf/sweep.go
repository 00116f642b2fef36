// perf/sweep.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package perf

import (
	"context"
	"runtime"

	"github.com/vfrkit/vfrkit/log"
	"github.com/vfrkit/vfrkit/wx"

	"github.com/brunoga/deep"
	"golang.org/x/sync/errgroup"
)

// RunwayWind returns the headwind (negative for a tailwind) and
// crosswind (positive from the right) components of the wind for a
// takeoff on the given runway heading. Both must be true or both
// magnetic.
func RunwayWind(runwayHeading float32, wind wx.Wind) (headwind, crosswind float32) {
	return wind.Components(runwayHeading)
}

// WeightSweep computes the takeoff performance for each of the given
// weights, otherwise using the conditions in in. Each calculation gets
// its own copy of the input.
func WeightSweep(in TakeoffInput, weights []float32, lg *log.Logger) []TakeoffResult {
	results := make([]TakeoffResult, len(weights))
	for i, w := range weights {
		wi := deep.MustCopy(in)
		wi.Weight = w
		results[i] = ComputeTakeoff(wi, lg)
	}
	return results
}

// ComputeTakeoffs evaluates the given takeoffs concurrently; results are
// returned in the same order as the inputs. An error is returned only if
// the context is canceled.
func ComputeTakeoffs(ctx context.Context, inputs []TakeoffInput, lg *log.Logger) ([]TakeoffResult, error) {
	results := make([]TakeoffResult, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, in := range inputs {
		i, in := i, in
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ComputeTakeoff(in, lg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
