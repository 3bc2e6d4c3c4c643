// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package photomosaic

import (
	"container/heap"
)

// TileHeapEntry is an entry stored in a tile heap. It consists of a tile (by
// its index in the candidate list) and the value of that tile.
type TileHeapEntry struct {
	Index int
	ID    string
	Value float64
}

// tileHeapInterface is an internal type that implements heap.Interface.
// The greatest value is on top so that it can be dropped when the heap is
// full. Of two equal values the later tile is considered greater.
type tileHeapInterface []TileHeapEntry

func (h tileHeapInterface) Len() int {
	return len(h)
}

func (h tileHeapInterface) Less(i, j int) bool {
	if h[i].Value == h[j].Value {
		return h[i].Index > h[j].Index
	}
	return h[i].Value > h[j].Value
}

func (h tileHeapInterface) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *tileHeapInterface) Push(x interface{}) {
	*h = append(*h, x.(TileHeapEntry))
}

func (h *tileHeapInterface) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TileHeap is a container that keeps the bound tiles with the smallest values.
type TileHeap struct {
	interf tileHeapInterface
	bound  int
}

// NewTileHeap returns a new tile heap with a given bound. If bound > 0 it is
// used as the upper limit of entries stored in the heap, otherwise all
// entries are kept.
func NewTileHeap(bound int) *TileHeap {
	capacity := bound
	if capacity < 1 {
		capacity = 100
	}
	return &TileHeap{interf: make(tileHeapInterface, 0, capacity), bound: bound}
}

// Add adds a new entry to the heap, dropping the greatest entry if the heap
// is full.
func (h *TileHeap) Add(entry TileHeapEntry) {
	heap.Push(&h.interf, entry)
	if h.bound > 0 && h.interf.Len() > h.bound {
		heap.Pop(&h.interf)
	}
}

// Len returns the number of entries in the heap.
func (h *TileHeap) Len() int {
	return h.interf.Len()
}

// GetView returns the sorted collection of entries in the heap, that is tiles
// with smallest values first.
// The complexity is O(n * log(n)) where n is the size of the heap.
func (h *TileHeap) GetView() []TileHeapEntry {
	n := h.interf.Len()
	tmp := make(tileHeapInterface, n)
	copy(tmp, h.interf)
	res := make([]TileHeapEntry, n)
	for i := 0; i < n; i++ {
		res[n-i-1] = heap.Pop(&tmp).(TileHeapEntry)
	}
	return res
}

// Rank returns the k candidates with the smallest metric value for query,
// best first. No uniqueness penalty is applied. The first entry is the tile
// Select would choose for a patch without any placed neighbors.
func (m Matcher) Rank(query Signature, candidates []TileEntry, k int) []TileHeapEntry {
	metric := m.Metric
	if metric == nil {
		metric = SignatureDistance
	}
	h := NewTileHeap(k)
	for i, tile := range candidates {
		h.Add(TileHeapEntry{Index: i, ID: tile.ID, Value: metric(query, tile.Signature)})
	}
	return h.GetView()
}
