package container

// Indexed is implemented by arena elements that track their own slot.
type Indexed interface {
	Index() int
	SetIndex(i int)
}

// Arena is a dense, index-tracked array of owned elements. A Partition uses
// it as the sole owner of the vehicles inside its range (spec.md §9):
// lanes and hand-off bookkeeping reference vehicles by arena index, never
// by a pointer shared across packages. Additions and removals are buffered
// and only applied on Prepare, so a tick's bookkeeping (spawn, hand-off,
// off-road removal) can be decided in any order and committed once.
type Arena[T Indexed] struct {
	data   []T
	add    []T
	remove []T
}

// NewArena creates an empty arena.
func NewArena[T Indexed]() *Arena[T] {
	return &Arena[T]{
		data:   make([]T, 0),
		add:    make([]T, 0),
		remove: make([]T, 0),
	}
}

// Len returns the number of committed elements.
func (a *Arena[T]) Len() int { return len(a.data) }

// Data returns the committed elements in arena-index order.
func (a *Arena[T]) Data() []T { return a.data }

// Add stages an element for addition; it becomes visible after Prepare.
func (a *Arena[T]) Add(value T) {
	a.add = append(a.add, value)
}

// Remove stages an element for removal; it is dropped after Prepare.
func (a *Arena[T]) Remove(value T) {
	a.remove = append(a.remove, value)
}

// Prepare commits all staged additions and removals, reindexing affected
// elements so Index() always reflects their current slot. It returns the
// surviving elements that were moved into a freed slot by the removal
// swap-fill: a newly-added element's index is fresh and never referenced
// before Prepare returns, but a survivor's index may already be cached
// elsewhere (a lane's cell, say), and that cache must be refreshed against
// the returned elements' new Index().
func (a *Arena[T]) Prepare() []T {
	var moved []T
	if len(a.add) >= len(a.remove) {
		for i, x := range a.remove {
			ind := x.Index()
			a.data[ind] = a.add[i]
			a.data[ind].SetIndex(ind)
		}
		l1 := len(a.remove)
		l2 := len(a.add) - l1
		for i := 0; i < l2; i++ {
			a.add[l1+i].SetIndex(len(a.data) + i)
		}
		a.data = append(a.data, a.add[len(a.remove):]...)
	} else {
		for i, x := range a.add {
			ind := a.remove[i].Index()
			a.data[ind] = x
			a.data[ind].SetIndex(ind)
		}
		l1 := len(a.add)
		l2 := len(a.remove) - l1
		l3 := len(a.data) - l2
		var slots []int
		seen := make(map[int]bool)
		for i := 0; i < l2; i++ {
			ind := a.remove[l1+i].Index()
			a.data[ind] = a.data[l3+i]
			a.data[ind].SetIndex(ind)
			// A slot at or past l3 is truncated below, so nothing survives there.
			if ind < l3 && !seen[ind] {
				seen[ind] = true
				slots = append(slots, ind)
			}
		}
		a.data = a.data[:l3]
		for _, ind := range slots {
			moved = append(moved, a.data[ind])
		}
	}
	a.add = a.add[:0]
	a.remove = a.remove[:0]
	return moved
}
