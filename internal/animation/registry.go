package animation

import (
	"fmt"
	"sync/atomic"
)

// Registry hands out default container names and export numbers. One
// registry is shared by every container created in a process, so exported
// clip names never collide.
type Registry struct {
	next    atomic.Int64
	exports atomic.Int64
}

// NewRegistry returns a registry whose first name is "Untitled1" and whose
// first export number is 1.
func NewRegistry() *Registry {
	r := &Registry{}
	r.next.Store(1)
	r.exports.Store(1)
	return r
}

// NextName returns a fresh "Untitled<N>" name.
func (r *Registry) NextName() string {
	n := r.next.Add(1) - 1
	return fmt.Sprintf("Untitled%d", n)
}

// NextExport returns a fresh export number.
func (r *Registry) NextExport() int {
	return int(r.exports.Add(1) - 1)
}
