package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fib-lab/ca-traffic-sim/container"
)

type item struct {
	id    int
	index int
}

func (it *item) Index() int     { return it.index }
func (it *item) SetIndex(i int) { it.index = i }

func TestArenaAddAssignsIndex(t *testing.T) {
	a := container.NewArena[*item]()
	x := &item{id: 1}
	y := &item{id: 2}
	a.Add(x)
	a.Add(y)
	a.Prepare()

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 0, x.Index())
	assert.Equal(t, 1, y.Index())
	assert.Same(t, x, a.Data()[x.Index()])
	assert.Same(t, y, a.Data()[y.Index()])
}

func TestArenaRemoveSwapFills(t *testing.T) {
	a := container.NewArena[*item]()
	x := &item{id: 1}
	y := &item{id: 2}
	z := &item{id: 3}
	a.Add(x)
	a.Add(y)
	a.Add(z)
	a.Prepare()

	a.Remove(x)
	moved := a.Prepare()

	assert.Equal(t, 2, a.Len())
	for _, it := range a.Data() {
		assert.NotEqual(t, 1, it.id)
		assert.Equal(t, it, a.Data()[it.Index()])
	}

	if assert.Len(t, moved, 1) {
		assert.Same(t, z, moved[0])
		assert.Equal(t, 0, z.Index())
	}
}

func TestArenaPrepareReportsOnlyReindexedSurvivors(t *testing.T) {
	a := container.NewArena[*item]()
	x := &item{id: 1}
	y := &item{id: 2}
	a.Add(x)
	a.Add(y)
	moved := a.Prepare()

	assert.Empty(t, moved, "fresh additions are not reported as moved")

	z := &item{id: 3}
	a.Remove(x)
	a.Add(z)
	moved = a.Prepare()

	assert.Empty(t, moved, "a removed slot filled directly by an addition is not a survivor move")
}

func TestArenaMixedAddRemove(t *testing.T) {
	a := container.NewArena[*item]()
	x := &item{id: 1}
	y := &item{id: 2}
	a.Add(x)
	a.Add(y)
	a.Prepare()

	z := &item{id: 3}
	a.Remove(x)
	a.Add(z)
	a.Prepare()

	assert.Equal(t, 2, a.Len())
	ids := map[int]bool{}
	for _, it := range a.Data() {
		ids[it.id] = true
		assert.Equal(t, it, a.Data()[it.Index()])
	}
	assert.True(t, ids[2])
	assert.True(t, ids[3])
	assert.False(t, ids[1])
}
