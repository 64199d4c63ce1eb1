package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapExtractsInRankOrder(t *testing.T) {
	heap := NewFourAryHeap[SearchKey]()

	ranks := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		rank := rand.Float64() * 1000
		ranks = append(ranks, rank)
		heap.Insert(NewPriorityQueueNode(rank, NewSearchKey("n")))
	}
	sort.Float64s(ranks)

	for _, want := range ranks {
		node, err := heap.ExtractMin()
		require.NoError(t, err)
		assert.InDelta(t, want, node.GetRank(), 1e-9)
	}
	assert.True(t, heap.IsEmpty())
}

func TestHeapDecreaseKey(t *testing.T) {
	heap := NewFourAryHeap[SearchKey]()

	a := NewPriorityQueueNode(10.0, NewSearchKey("a"))
	b := NewPriorityQueueNode(20.0, NewSearchKey("b"))
	heap.Insert(a)
	heap.Insert(b)

	require.NoError(t, heap.DecreaseKey(b, 5.0))

	min, err := heap.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, "b", min.GetItem().GetNode())

	// increasing a rank through DecreaseKey is rejected
	assert.Error(t, heap.DecreaseKey(a, 50.0))
}

func TestHeapExtractFromEmpty(t *testing.T) {
	heap := NewBinaryHeap[SearchKey]()
	_, err := heap.ExtractMin()
	assert.Error(t, err)
}
