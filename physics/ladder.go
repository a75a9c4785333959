package physics

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/bounce/vmath"
)

// SizeLadder is an ascending set of allowed radii
// Index is a map lookup, Next is a binary search
type SizeLadder struct {
	tiers []float64
	index map[float64]int
}

// NewSizeLadder sorts and de-duplicates tiers; every tier must be finite and > 0
func NewSizeLadder(tiers []float64) (*SizeLadder, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("size ladder is empty")
	}

	sorted := make([]float64, len(tiers))
	copy(sorted, tiers)
	sort.Float64s(sorted)

	l := &SizeLadder{
		tiers: make([]float64, 0, len(sorted)),
		index: make(map[float64]int, len(sorted)),
	}
	for _, r := range sorted {
		if !vmath.IsFinite(r) || r <= 0 {
			return nil, fmt.Errorf("size ladder tier %v must be finite and positive", r)
		}
		if _, dup := l.index[r]; dup {
			continue
		}
		l.index[r] = len(l.tiers)
		l.tiers = append(l.tiers, r)
	}
	return l, nil
}

// MustSizeLadder is NewSizeLadder for compile-time tier tables
func MustSizeLadder(tiers ...float64) *SizeLadder {
	l, err := NewSizeLadder(tiers)
	if err != nil {
		panic(err)
	}
	return l
}

// Index returns the tier index of radius r if r is exactly a tier value
func (l *SizeLadder) Index(r float64) (int, bool) {
	if l == nil {
		return 0, false
	}
	i, ok := l.index[r]
	return i, ok
}

// Next returns the smallest tier strictly greater than r
func (l *SizeLadder) Next(r float64) (float64, bool) {
	if l == nil {
		return 0, false
	}
	i := sort.Search(len(l.tiers), func(i int) bool { return l.tiers[i] > r })
	if i == len(l.tiers) {
		return 0, false
	}
	return l.tiers[i], true
}

// Len returns the number of tiers
func (l *SizeLadder) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tiers)
}

// Tier returns the radius at index i
func (l *SizeLadder) Tier(i int) float64 {
	return l.tiers[i]
}

// Top returns the largest tier
func (l *SizeLadder) Top() float64 {
	return l.tiers[len(l.tiers)-1]
}

// Tiers returns a copy of the ordered tier values
func (l *SizeLadder) Tiers() []float64 {
	if l == nil {
		return nil
	}
	out := make([]float64, len(l.tiers))
	copy(out, l.tiers)
	return out
}
