package datastructure_test

import (
	"math"
	"testing"

	"github.com/lintang-b-s/nodedist/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {
	return min + rand.Intn(max-min)
}

type dummyNode struct {
	id uint64
}

func TestFibonacciHeapInsertExtractMin(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	min := math.MaxFloat64
	for i := 0; i < 10000; i++ {
		priority := float64(generateRandomInteger(0, 10000))
		if priority < min {
			min = priority
		}
		pq.Insert(dummyNode{uint64(i)}, priority, uint64(i))

		assert.Equal(t, min, pq.GetMin().GetPriority())
	}
	assert.Equal(t, 10000, pq.Size())

	prevItem := pq.ExtractMin()

	for i := 1; i < 10000; i++ {
		item := pq.ExtractMin()

		if prevItem.GetPriority() > item.GetPriority() {
			t.Errorf("PriorityQueue is not sorted")
		}
		if prevItem.GetPriority() == item.GetPriority() && prevItem.GetTie() > item.GetTie() {
			t.Errorf("PriorityQueue ties not ordered by tie key")
		}
		prevItem = item
	}
	assert.True(t, pq.IsEmpty())
}

func TestFibonacciHeapInsertDecreaseKey(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()

	itemSlice := make([]*datastructure.Entry[dummyNode], 10000)
	for i := 0; i < 10000; i++ {
		priority := float64(generateRandomInteger(1000, 10000000))
		itemSlice[i] = pq.Insert(dummyNode{uint64(i)}, priority, uint64(i))
	}

	// extract sebagian dulu biar heap punya tree dengan child
	extracted := make(map[*datastructure.Entry[dummyNode]]bool)
	for i := 0; i < 100; i++ {
		extracted[pq.ExtractMin()] = true
	}

	for i := 0; i < 10000; i++ {
		if extracted[itemSlice[i]] || itemSlice[i].GetPriority() < 1 {
			continue
		}
		pq.DecreaseKey(itemSlice[i], float64(generateRandomInteger(0, int(itemSlice[i].GetPriority()))))
	}

	prevItem := pq.ExtractMin()
	for pq.Size() > 0 {
		item := pq.ExtractMin()

		if prevItem.GetPriority() > item.GetPriority() {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}
}

func TestFibonacciHeapTieBreak(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()

	for _, id := range []uint64{7, 3, 9, 1, 5} {
		pq.Insert(dummyNode{id}, 2.5, id)
	}
	pq.Insert(dummyNode{100}, 1.0, 100)

	got := []uint64{}
	for !pq.IsEmpty() {
		got = append(got, pq.ExtractMin().GetElem().id)
	}
	assert.Equal(t, []uint64{100, 1, 3, 5, 7, 9}, got)
}

func TestFibonacciHeapDecreaseKeyToTie(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()
	pq.Insert(dummyNode{2}, 4.0, 2)
	e := pq.Insert(dummyNode{1}, 8.0, 1)
	pq.Insert(dummyNode{3}, 6.0, 3)

	pq.DecreaseKey(e, 4.0)
	e.SetElem(dummyNode{1})

	assert.Equal(t, uint64(1), pq.ExtractMin().GetElem().id)
	assert.Equal(t, uint64(2), pq.ExtractMin().GetElem().id)
	assert.Equal(t, uint64(3), pq.ExtractMin().GetElem().id)
}

func TestFibonacciHeapDecreaseKeyPanicsOnIncrease(t *testing.T) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()
	e := pq.Insert(dummyNode{1}, 1.0, 1)

	assert.Panics(t, func() {
		pq.DecreaseKey(e, 2.0)
	})
}

func BenchmarkFibonacciHeapDecreaseKey(b *testing.B) {
	pq := datastructure.NewFibonacciHeap[dummyNode]()

	for i := 0; i < b.N; i++ {
		priority := float64(generateRandomInteger(1000, 10000000))
		curr := pq.Insert(dummyNode{uint64(i)}, priority, uint64(i))

		pq.DecreaseKey(curr, float64(generateRandomInteger(0, int(curr.GetPriority()))))
	}
}
