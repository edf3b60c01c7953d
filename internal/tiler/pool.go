package tiler

import (
	"context"

	commonspool "github.com/jolestar/go-commons-pool/v2"
)

// Pool recycles *Tiler instances (their active-edge slice, point queue,
// and walked-edge bitmap) across the worker pool's goroutines, so a
// scene with many path objects doesn't allocate fresh sweep-line
// scratch state per object. Unlike a plain sync.Pool, this pool has a
// bounded size, which lets a caller cap total scratch memory when many
// objects are in flight concurrently.
type Pool struct {
	tolerance float32
	pool      *commonspool.ObjectPool
}

// NewPool creates a Pool of Tilers sharing the given flattening
// tolerance, bounded to maxSize live-or-idle instances.
func NewPool(tolerance float32, maxSize int) *Pool {
	factory := commonspool.NewPooledObjectFactorySimple(
		func(ctx context.Context) (interface{}, error) {
			return New(tolerance), nil
		})

	config := commonspool.NewDefaultPoolConfig()
	config.MaxTotal = maxSize
	config.MaxIdle = maxSize

	return &Pool{
		tolerance: tolerance,
		pool:      commonspool.NewObjectPool(context.Background(), factory, config),
	}
}

// Borrow returns a ready-to-use *Tiler, allocating a new one if the
// pool is empty and under its size cap.
func (p *Pool) Borrow(ctx context.Context) (*Tiler, error) {
	obj, err := p.pool.BorrowObject(ctx)
	if err != nil {
		return nil, err
	}
	return obj.(*Tiler), nil
}

// Return gives a Tiler back to the pool for reuse by the next job.
func (p *Pool) Return(ctx context.Context, t *Tiler) {
	_ = p.pool.ReturnObject(ctx, t)
}

// Close releases every idle Tiler the pool is holding.
func (p *Pool) Close(ctx context.Context) {
	p.pool.Close(ctx)
}

// Tolerance returns the flattening tolerance shared by every Tiler
// this pool hands out.
func (p *Pool) Tolerance() float32 {
	return p.tolerance
}
