// Package montecarlo draws and summarizes batches of samples from a
// distribution.
package montecarlo

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
)

// Sampler is anything that can produce one random draw.
type Sampler interface {
	Rand() float64
}

// Draw fills a slice with n draws from s, fanned out over the given
// number of workers. The sampler's random source must be safe for
// concurrent draws when workers > 1; the process default source is.
// Parallel draws are not reproducible across runs even with a seeded
// source, so deterministic callers should use a single worker.
func Draw(ctx context.Context, s Sampler, n, workers int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("montecarlo: negative sample count %d", n)
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		seg := out[lo:hi]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := range seg {
				seg[i] = s.Rand()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary holds empirical statistics of a sample batch.
type Summary struct {
	N         int
	Mean      float64
	StdDev    float64
	Median    float64
	Min       float64
	Max       float64
	ZeroShare float64
}

// Summarize computes the empirical summary of a non-empty sample batch.
func Summarize(samples []float64) (Summary, error) {
	mean, err := stats.Mean(samples)
	if err != nil {
		return Summary{}, err
	}
	sd, err := stats.StandardDeviation(samples)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(samples)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(samples)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(samples)
	if err != nil {
		return Summary{}, err
	}

	zeros := 0
	for _, x := range samples {
		if x == 0 {
			zeros++
		}
	}

	return Summary{
		N:         len(samples),
		Mean:      mean,
		StdDev:    sd,
		Median:    median,
		Min:       min,
		Max:       max,
		ZeroShare: float64(zeros) / float64(len(samples)),
	}, nil
}
