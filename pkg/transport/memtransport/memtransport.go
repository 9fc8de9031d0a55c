// Package memtransport is an in-process reference Transport: every publish
// call appends to an unbounded, mutex-guarded history instead of touching a
// network client. Useful for tests and for the cmd/vda5050pp scaffold when
// run without a broker configured.
package memtransport

import (
	"context"
	"sync"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// VisualizationMessage is one recorded PublishVisualization call.
type VisualizationMessage struct {
	Position vdamodel.AGVPosition
	Velocity vdamodel.Velocity
}

// Transport records every published message for later inspection.
type Transport struct {
	mu             sync.Mutex
	states         []statestore.Snapshot
	visualizations []VisualizationMessage
	connections    []bool
}

// New constructs an empty recording Transport.
func New() *Transport {
	return &Transport{}
}

// PublishState records state.
func (t *Transport) PublishState(_ context.Context, state statestore.Snapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states = append(t.states, state)
	return nil
}

// PublishVisualization records pos/vel.
func (t *Transport) PublishVisualization(_ context.Context, pos vdamodel.AGVPosition, vel vdamodel.Velocity) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visualizations = append(t.visualizations, VisualizationMessage{Position: pos, Velocity: vel})
	return nil
}

// PublishConnection records the online/offline transition.
func (t *Transport) PublishConnection(_ context.Context, online bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connections = append(t.connections, online)
	return nil
}

// States returns a copy of every state published so far.
func (t *Transport) States() []statestore.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]statestore.Snapshot, len(t.states))
	copy(out, t.states)
	return out
}

// Visualizations returns a copy of every visualization message published so
// far.
func (t *Transport) Visualizations() []VisualizationMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]VisualizationMessage, len(t.visualizations))
	copy(out, t.visualizations)
	return out
}

// LastState returns the most recently published state, if any.
func (t *Transport) LastState() (statestore.Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.states) == 0 {
		return statestore.Snapshot{}, false
	}
	return t.states[len(t.states)-1], true
}
