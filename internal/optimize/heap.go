package optimize

import "container/heap"

// scoredPoint is a candidate AFK point carrying its coarse-scan score.
type scoredPoint struct {
	x, z  int
	total int
}

// topHeap is a bounded min-heap of the highest-scoring candidates seen so
// far, capped at a fixed size: pushing past capacity evicts the current
// minimum.
type topHeap struct {
	items []scoredPoint
	cap   int
}

func newTopHeap(cap int) *topHeap {
	if cap < 1 {
		cap = 1
	}
	h := &topHeap{cap: cap}
	heap.Init(h)
	return h
}

func (h *topHeap) Len() int            { return len(h.items) }
func (h *topHeap) Less(i, j int) bool  { return h.items[i].total < h.items[j].total }
func (h *topHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *topHeap) Push(x interface{})  { h.items = append(h.items, x.(scoredPoint)) }
func (h *topHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// offer adds p to the retained set, evicting the current minimum if the set
// is already at capacity and p beats it.
func (h *topHeap) offer(p scoredPoint) {
	if h.Len() < h.cap {
		heap.Push(h, p)
		return
	}
	if h.Len() > 0 && p.total > h.items[0].total {
		heap.Pop(h)
		heap.Push(h, p)
	}
}

func (h *topHeap) all() []scoredPoint {
	out := make([]scoredPoint, len(h.items))
	copy(out, h.items)
	return out
}
