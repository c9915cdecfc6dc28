package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

type job[N vecmath.Scalar] struct {
	sim *Simulator[N]
	cfg *Config[N]
}

// Batch runs independent simulators concurrently. Each simulator owns its
// world, so no world is ever touched by two goroutines.
type Batch[N vecmath.Scalar] struct {
	jobs  []job[N]
	limit int
}

// NewBatch runs at most limit simulators at once; limit <= 0 means no limit.
func NewBatch[N vecmath.Scalar](limit int, sims ...*Simulator[N]) *Batch[N] {
	b := &Batch[N]{limit: limit}
	for _, s := range sims {
		b.Add(s)
	}
	return b
}

// Add queues s to run with the config passed to Run.
func (b *Batch[N]) Add(s *Simulator[N]) { b.jobs = append(b.jobs, job[N]{sim: s}) }

// AddWithConfig queues s with its own config, ignoring the one passed to Run.
func (b *Batch[N]) AddWithConfig(s *Simulator[N], cfg Config[N]) {
	b.jobs = append(b.jobs, job[N]{sim: s, cfg: &cfg})
}

func (b *Batch[N]) Len() int { return len(b.jobs) }

// Run returns results in the order the simulators were added. The first
// failing run cancels the others.
func (b *Batch[N]) Run(ctx context.Context, cfg Config[N]) ([]*Result[N], error) {
	results := make([]*Result[N], len(b.jobs))

	g, ctx := errgroup.WithContext(ctx)
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}

	for i, j := range b.jobs {
		i, j := i, j
		c := cfg
		if j.cfg != nil {
			c = *j.cfg
		}
		g.Go(func() error {
			res, err := j.sim.Run(ctx, c)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
