package status

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry holds named counters and gauges, readable from any goroutine
type Registry struct {
	Counters Table[atomic.Int64]
	Gauges   Table[Gauge]
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of metrics of both kinds
func (r *Registry) Len() int {
	return r.Counters.Len() + r.Gauges.Len()
}

// Format renders "name=value" pairs, counters first, each kind sorted by name
func (r *Registry) Format() string {
	var sb strings.Builder
	sep := func() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
	}
	r.Counters.Each(func(name string, v *atomic.Int64) {
		sep()
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(v.Load(), 10))
	})
	r.Gauges.Each(func(name string, v *Gauge) {
		sep()
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(v.Load(), 'f', 2, 64))
	})
	return sb.String()
}
