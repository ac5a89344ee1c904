package channels

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"integral/parallel"
	"integral/sat"
)

func randomGrid(r *rand.Rand, rows, cols int) *sat.Grid[float64] {
	v := make([]float64, rows*cols)
	for i := range v {
		v[i] = float64(r.IntN(65536))
	}
	return sat.GridFrom(rows, cols, v)
}

func clone(g *sat.Grid[float64]) *sat.Grid[float64] {
	return sat.GridFrom(g.Rows(), g.Cols(), append([]float64(nil), g.Values()...))
}

func TestRunChannelIndependence(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	const n = 6
	src := make([]*sat.Grid[float64], n)
	for i := range src {
		src[i] = randomGrid(r, 37, 53)
	}

	// Each channel alone on a single worker.
	single := parallel.Start(1)
	defer single.Wait(true)
	want := make([][]float64, n)
	for i, g := range src {
		c := Collection{{Index: i, Grid: clone(g)}}
		require.NoError(t, NewPipeline(single).Run(context.Background(), c))
		want[i] = c[0].Grid.Values()
	}

	// All channels together, concurrently.
	for _, workers := range []int{1, 2, n, 0} {
		pool := parallel.Start(workers)
		c := make(Collection, n)
		for i, g := range src {
			c[i] = Channel{Index: i, Grid: clone(g)}
		}
		require.NoError(t, NewPipeline(pool).Run(context.Background(), c))
		for i := range c {
			assert.Equal(t, i, c[i].Index)
			assert.Equal(t, want[i], c[i].Grid.Values(), "channel %d with %d workers", i, workers)
		}
		pool.Wait(true)
	}
}

func TestRunSharedPoolAcrossImages(t *testing.T) {
	pool := parallel.Start(3)
	defer pool.Wait(true)
	p := NewPipeline(pool)

	for img := range 4 {
		c := Collection{
			{Index: 0, Grid: sat.GridFrom(2, 3, []float64{0, 1, 2, 3, 4, 5})},
			{Index: 1, Grid: sat.GridFrom(2, 3, []float64{1, 1, 1, 1, 1, 1})},
		}
		require.NoError(t, p.Run(context.Background(), c), "image %d", img)
		assert.Equal(t, []float64{0, 1, 3, 3, 8, 15}, c[0].Grid.Values())
		assert.Equal(t, []float64{1, 2, 3, 2, 4, 6}, c[1].Grid.Values())
	}
}

func TestRunEmpty(t *testing.T) {
	pool := parallel.Start(2)
	defer pool.Wait(true)
	p := NewPipeline(pool)

	require.NoError(t, p.Run(context.Background(), nil))
	c := Collection{{Index: 0, Grid: sat.NewGrid[float64](0, 0)}}
	require.NoError(t, p.Run(context.Background(), c))
}

func TestRunConstructionError(t *testing.T) {
	for _, workers := range []int{1, 4} {
		pool := parallel.Start(workers)
		c := Collection{
			{Index: 0, Grid: sat.GridFrom(1, 3, []float64{1, 1, 1})},
			{Index: 1, Grid: nil},
			{Index: 2, Grid: sat.GridFrom(3, 1, []float64{2, 2, 2})},
		}
		err := NewPipeline(pool).Run(context.Background(), c)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConstruction)
		var pe *parallel.PanicError
		assert.ErrorAs(t, err, &pe)

		// Healthy channels still complete untouched by the failure.
		assert.Equal(t, []float64{1, 2, 3}, c[0].Grid.Values())
		assert.Equal(t, []float64{2, 4, 6}, c[2].Grid.Values())
		pool.Wait(true)
	}
}

func TestRunCancelled(t *testing.T) {
	pool := parallel.Start(2)
	defer pool.Wait(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := Collection{{Index: 0, Grid: sat.GridFrom(1, 2, []float64{1, 1})}}
	err := NewPipeline(pool).Run(ctx, c)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []float64{1, 1}, c[0].Grid.Values(), "cancelled run must not start channels")
}

func TestDims(t *testing.T) {
	rows, cols := Collection(nil).Dims()
	assert.Zero(t, rows)
	assert.Zero(t, cols)

	c := Collection{{Grid: sat.NewGrid[float64](4, 9)}, {Index: 1, Grid: sat.NewGrid[float64](4, 9)}}
	rows, cols = c.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 9, cols)
}

func TestExport(t *testing.T) {
	c := Collection{
		{Index: 0, Grid: sat.GridFrom(2, 3, []float64{0, 1, 3, 3, 8, 15})},
		{Index: 1, Grid: sat.GridFrom(1, 2, []float64{0.5, 1234567.25})},
	}
	var buf bytes.Buffer
	require.NoError(t, c.Export(&buf))
	assert.Equal(t, "0 1 3\n3 8 15\n\n0.5 1.23456725e+06\n\n", buf.String())
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Collection{{Grid: sat.NewGrid[float64](0, 0)}}.Export(&buf))
	require.NoError(t, Collection{{Grid: sat.NewGrid[float64](0, 3)}}.Export(&buf))
	require.NoError(t, Collection(nil).Export(&buf))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestExportPropagatesWriterError(t *testing.T) {
	c := Collection{{Grid: sat.GridFrom(1, 1, []float64{1})}}
	err := c.Export(failingWriter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
}
