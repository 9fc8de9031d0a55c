// Package transport declares the minimal publish boundary the Logic façade
// and StateUpdateTimer call into. No MQTT client is implemented here
// (non-goal, §1); see memtransport for the in-process reference used by
// tests and the cmd/vda5050pp scaffold.
package transport

import (
	"context"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// Transport publishes outgoing VDA 5050 topics. Implementations must be
// safe for concurrent use; PublishState in particular is called from the
// StateUpdateTimer's single background loop but may race with
// PublishConnection at startup/shutdown.
type Transport interface {
	PublishState(ctx context.Context, state statestore.Snapshot) error
	PublishVisualization(ctx context.Context, pos vdamodel.AGVPosition, vel vdamodel.Velocity) error
	PublishConnection(ctx context.Context, online bool) error
}
