package experiment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

// group collects the scenes of one scalar type into a single sim.Batch.
type group[N vecmath.Scalar] struct {
	batch *sim.Batch[N]
	exps  []*Experiment[N]
	index []int
}

func newGroup[N vecmath.Scalar](limit int) *group[N] {
	return &group[N]{batch: sim.NewBatch[N](limit)}
}

func (g *group[N]) add(i int, scene *config.Scene, log *zap.Logger) error {
	exp, err := New[N](scene, log)
	if err != nil {
		return err
	}
	g.batch.AddWithConfig(exp.Simulator(), exp.Config())
	g.exps = append(g.exps, exp)
	g.index = append(g.index, i)
	return nil
}

func (g *group[N]) run(ctx context.Context, out []*Outcome) error {
	if g.batch.Len() == 0 {
		return nil
	}
	results, err := g.batch.Run(ctx, sim.Config[N]{})
	if err != nil {
		return err
	}
	for k, res := range results {
		out[g.index[k]] = g.exps[k].outcome(res)
	}
	return nil
}

// RunBatch runs scenes concurrently, at most limit at a time per scalar
// type. Outcomes are returned in scene order.
func RunBatch(ctx context.Context, scenes []*config.Scene, limit int, log *zap.Logger) ([]*Outcome, error) {
	floats := newGroup[float64](limit)
	ints := newGroup[int64](limit)

	for i, scene := range scenes {
		var err error
		if scene.Scalar == config.ScalarInt {
			err = ints.add(i, scene, log)
		} else {
			err = floats.add(i, scene, log)
		}
		if err != nil {
			return nil, err
		}
	}

	out := make([]*Outcome, len(scenes))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return floats.run(ctx, out) })
	g.Go(func() error { return ints.run(ctx, out) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
