package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Gauge is a float64 stored as atomic bits; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *Gauge) Load() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Max raises the gauge to v if v is larger and returns the resulting value
func (g *Gauge) Max(v float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		if v <= cur {
			return cur
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}

// Table maps metric names to stable pointers
// Writers look a metric up once and keep the pointer; updates never touch the table
type Table[T any] struct {
	m sync.Map // string -> *T
}

// Get returns the metric for name, creating it on first use
func (t *Table[T]) Get(name string) *T {
	if v, ok := t.m.Load(name); ok {
		return v.(*T)
	}
	v, _ := t.m.LoadOrStore(name, new(T))
	return v.(*T)
}

// Names returns registered names in sorted order
func (t *Table[T]) Names() []string {
	var names []string
	t.m.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Each visits metrics in sorted name order
func (t *Table[T]) Each(fn func(name string, v *T)) {
	for _, name := range t.Names() {
		fn(name, t.Get(name))
	}
}

// Len returns the number of registered metrics
func (t *Table[T]) Len() int {
	n := 0
	t.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
