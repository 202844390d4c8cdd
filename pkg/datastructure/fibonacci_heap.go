package datastructure

import (
	"math"

	"github.com/lintang-b-s/nodedist/pkg/util"
)

// Entry. satu item di heap. urutan entry: priority ascending, kalau sama pakai tie ascending.
type Entry[T any] struct {
	degree   int
	isMarked bool

	next   *Entry[T]
	prev   *Entry[T]
	child  *Entry[T]
	parent *Entry[T]

	elem     T
	priority float64
	tie      uint64
}

func NewEntry[T any](elem T, priority float64, tie uint64) *Entry[T] {
	e := &Entry[T]{
		elem:     elem,
		priority: priority,
		tie:      tie,
	}
	e.next = e
	e.prev = e

	return e
}

func (e *Entry[T]) GetPriority() float64 {
	return e.priority
}

func (e *Entry[T]) GetTie() uint64 {
	return e.tie
}

func (e *Entry[T]) GetElem() T {
	return e.elem
}

// SetElem. ganti payload entry. posisi entry di heap tidak berubah.
func (e *Entry[T]) SetElem(elem T) {
	e.elem = elem
}

func less[T any](a, b *Entry[T]) bool {
	return a.priority < b.priority || (a.priority == b.priority && a.tie < b.tie)
}

/*
amortized analysis ref: https://www.utsc.utoronto.ca/~atafliovich/cscb63/content/week10/clrs_fibonacci_chapter.pdf

potential function:
pot(Hi) = t(Hi) + 2m(Hi)

where Hi is the heap after operation-i
t(Hi) is the number of trees in root list after operation-i
m(Hi) is the number of marked nodes after operation-i
*/
type FibonacciHeap[T any] struct {
	mMin  *Entry[T]
	mSize int
}

func NewFibonacciHeap[T any]() *FibonacciHeap[T] {
	return &FibonacciHeap[T]{
		mMin:  nil,
		mSize: 0,
	}
}

func (f *FibonacciHeap[T]) GetMin() *Entry[T] {
	return f.mMin
}

func (f *FibonacciHeap[T]) GetMinRank() float64 {
	if f.mMin == nil {
		return math.MaxFloat64
	}
	return f.mMin.priority
}

func (f *FibonacciHeap[T]) Size() int {
	return f.mSize
}

func (f *FibonacciHeap[T]) IsEmpty() bool {
	return f.mMin == nil
}

/*
Insert. insert new entry to the heap

after operation insert-i
t(H_i) = t(H_{i-1}) + 1
m(H_i) = m(H_{i-1})
ci = 1 (actual cost)

ci' = 1 + ( t(H_{i-1}) + 1 + 2m(H_{i-1})  ) - ( t(H_{i-1}) + 2m(H_{i-1}) ) = 2
amortized cost = O(1)
*/
func (f *FibonacciHeap[T]) Insert(value T, priority float64, tie uint64) *Entry[T] {
	result := NewEntry(value, priority, tie)

	f.mMin = f.mergeLists(f.mMin, result)
	f.mSize++

	return result
}

func (f *FibonacciHeap[T]) mergeLists(one *Entry[T], two *Entry[T]) *Entry[T] {
	if one == nil && two == nil {
		return nil
	} else if one != nil && two == nil {
		return one
	} else if one == nil && two != nil {
		return two
	}

	/*
		both non-null. sambung dua circular list:

		one -> oneNext ...        one -> twoNext ... two -> oneNext ...
		two -> twoNext ...   =>
	*/
	oneNext := one.next
	one.next = two.next
	one.next.prev = one
	two.next = oneNext
	two.next.prev = two

	if less(one, two) {
		return one
	}
	return two
}

/*
DecreaseKey. update priority of entry to newPriority (tie tidak berubah).

assume decreaseKey call perform c calls of recursive cascade-cut up to the root node
ci = c (actual cost)
after operation decreasekey-i node x
t(H_i) = t(H_{i-1}) + c
m(H_i) <= m(H_{i-1})-c+2

ci' (at most) =    c + ( t(H_{i-1}) + c  + 2( m(H_{i-1})-c+2) ) - (t(H_{i-1}) + 2m(H_{i-1})) =  4
amortized cost = O(1)
*/
func (f *FibonacciHeap[T]) DecreaseKey(entry *Entry[T], newPriority float64) {
	util.AssertPanic(newPriority <= entry.priority, "new priority must be less or equal than old priority")
	f.decreaseUnchecked(entry, newPriority)
}

func (f *FibonacciHeap[T]) decreaseUnchecked(entry *Entry[T], priority float64) {
	entry.priority = priority

	if entry.parent != nil && !less(entry.parent, entry) {
		// entry sekarang lebih kecil dari parent nya, cut dari parent
		f.cutNode(entry)
	}

	if less(entry, f.mMin) {
		f.mMin = entry
	}
}

func (f *FibonacciHeap[T]) cutNode(entry *Entry[T]) {
	entry.isMarked = false

	if entry.parent == nil {
		// base case: entry is root (no cascasding-cut further up)
		return
	}

	if entry.next != entry {
		entry.next.prev = entry.prev
		entry.prev.next = entry.next
	}

	if entry.parent.child == entry {
		if entry.next != entry {
			entry.parent.child = entry.next
		} else {
			entry.parent.child = nil
		}
	}

	entry.parent.degree--

	entry.prev = entry
	entry.next = entry

	// add entry to the root list of H
	f.mMin = f.mergeLists(f.mMin, entry)

	// cascade-cut
	if entry.parent.isMarked {
		f.cutNode(entry.parent)
	} else {
		entry.parent.isMarked = true
	}

	entry.parent = nil
}

/*
ExtractMin. remove the min node from the heap and return it

ci = D(n)+t(H) (actual cost)
t(H_i) = D(n)+1 (at most D(n) roots remain after consolidate operation)
m(H_i) = m(H_{i-1})

ci' = D(n)+t(H) + (D(n)+1  + 2 m(H)) - (t(H) + 2m(H)) = D(n)
amortized cost = O(log n)
*/
func (f *FibonacciHeap[T]) ExtractMin() *Entry[T] {
	util.AssertPanic(f.mMin != nil, "heap is empty")

	f.mSize--

	minElem := f.mMin

	if f.mMin.next == f.mMin {
		f.mMin = nil
	} else {
		f.mMin.prev.next = f.mMin.next
		f.mMin.next.prev = f.mMin.prev
		f.mMin = f.mMin.next
	}

	if minElem.child != nil {
		// clear parent pointer semua children min element
		start := minElem.child
		curr := minElem.child
		for {
			curr.parent = nil
			curr = curr.next
			if curr == start {
				break
			}
		}
	}

	f.mMin = f.mergeLists(f.mMin, minElem.child)

	minElem.next = minElem
	minElem.prev = minElem
	minElem.child = nil

	if f.mMin == nil {
		return minElem
	}

	// consolidate(H). treeTable[i] berisi nil atau tree dengan degree i
	treeTable := make([]*Entry[T], 0)

	toVisit := make([]*Entry[T], 0)
	for curr := f.mMin; len(toVisit) == 0 || toVisit[0] != curr; curr = curr.next {
		toVisit = append(toVisit, curr)
	}

	for _, curr := range toVisit {
		for {
			for curr.degree >= len(treeTable) {
				treeTable = append(treeTable, nil)
			}

			if treeTable[curr.degree] == nil {
				treeTable[curr.degree] = curr
				break
			}

			other := treeTable[curr.degree]
			treeTable[curr.degree] = nil

			var (
				min, max *Entry[T]
			)

			if less(other, curr) {
				min, max = other, curr
			} else {
				min, max = curr, other
			}

			max.next.prev = max.prev
			max.prev.next = max.next

			// FIB-HEAP-LINK(H, max, min)
			max.next = max
			max.prev = max
			min.child = f.mergeLists(min.child, max)

			max.parent = min
			max.isMarked = false
			min.degree++

			curr = min
		}

		if !less(f.mMin, curr) {
			f.mMin = curr
		}
	}

	return minElem
}
