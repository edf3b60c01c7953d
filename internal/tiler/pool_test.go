package tiler

import (
	"context"
	"testing"
)

func TestPoolBorrowReturnReusesTiler(t *testing.T) {
	ctx := context.Background()
	p := NewPool(0.333, 4)
	defer p.Close(ctx)

	tl, err := p.Borrow(ctx)
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}
	if tl == nil {
		t.Fatalf("expected non-nil tiler")
	}
	p.Return(ctx, tl)

	tl2, err := p.Borrow(ctx)
	if err != nil {
		t.Fatalf("borrow failed: %v", err)
	}
	if tl2 == nil {
		t.Fatalf("expected non-nil tiler")
	}
	p.Return(ctx, tl2)
}
