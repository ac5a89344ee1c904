// Package channels turns the channels of one image into summed-area tables.
package channels

import (
	"context"
	"errors"
	"fmt"

	"integral/parallel"
	"integral/sat"
)

// ErrConstruction reports a fault while building one channel's table. The
// image's tables must then be treated as incomplete.
var ErrConstruction = errors.New("summed-area table construction failed")

// Channel is one scalar component of an image.
type Channel struct {
	Index int
	Grid  *sat.Grid[float64]
}

// Collection holds the channels of a single image in component order.
type Collection []Channel

// Dims returns the dimensions shared by all channels.
func (c Collection) Dims() (rows, cols int) {
	if len(c) == 0 {
		return 0, 0
	}
	return c[0].Grid.Rows(), c[0].Grid.Cols()
}

// Pipeline builds the tables of a collection on a shared pool.
type Pipeline struct {
	pool *parallel.Pool
}

func NewPipeline(pool *parallel.Pool) *Pipeline {
	return &Pipeline{pool: pool}
}

// Run builds every channel of c in place, one pool task per channel, and
// returns once all dispatched tasks have finished. Channels complete in no
// particular order. If ctx is cancelled, channels not yet dispatched are
// skipped and ctx.Err() is returned.
func (p *Pipeline) Run(ctx context.Context, c Collection) error {
	b := p.pool.Batch()
	var ctxErr error
	for _, ch := range c {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		b.Go(func() error {
			sat.Build(ch.Grid)
			return nil
		})
	}

	if err := b.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	return ctxErr
}
