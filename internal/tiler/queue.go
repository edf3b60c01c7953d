package tiler

import (
	"container/heap"

	"github.com/vtilecore/vtile/internal/outline"
)

// pointItem is one entry of the sweep's point_queue: a contour vertex
// waiting to be discovered by the descending sweep line, ordered by
// (y, PointIndex) ascending The synthetic PointIndex
// here packs (contour, vertex-within-contour) exactly as
// outline.PointIndex does, giving a total, deterministic tie-break.
type pointItem struct {
	Y     float32
	Index outline.PointIndex

	contour, vertex int
}

type pointQueue []pointItem

func (q pointQueue) Len() int { return len(q) }

func (q pointQueue) Less(i, j int) bool {
	if q[i].Y != q[j].Y {
		return q[i].Y < q[j].Y
	}
	return q[i].Index < q[j].Index
}

func (q pointQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *pointQueue) Push(x any) { *q = append(*q, x.(pointItem)) }

func (q *pointQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// newPointQueue wraps a pointQueue as a ready-to-use heap.
func newPointQueue() *pointQueue {
	q := &pointQueue{}
	heap.Init(q)
	return q
}

func (q *pointQueue) push(item pointItem) {
	heap.Push(q, item)
}

func (q *pointQueue) peekY() (float32, bool) {
	if len(*q) == 0 {
		return 0, false
	}
	return (*q)[0].Y, true
}

func (q *pointQueue) pop() pointItem {
	return heap.Pop(q).(pointItem)
}
