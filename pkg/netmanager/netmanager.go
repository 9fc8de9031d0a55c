// Package netmanager implements the order execution engine (§4.7): it
// turns an Order into a small net of nodes, edges, and their actions, fires
// transitions as driver handlers acknowledge progress, and enforces the
// blocking-type guards that serialize HARD actions against everything else.
//
// The Petri net described by the specification (places/transitions/tokens)
// is realized here as explicit runtime structs with status fields plus a
// blockingBudget guard, rather than a literal token-graph simulator: the
// same firing rules and guards apply, expressed the way Go models a state
// machine.
package netmanager

import (
	"context"
	"sort"
	"sync"

	"github.com/cmraaron/libvda5050pp-sub001/pkg/interfaceagv"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/metrics"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

type actionRuntime struct {
	action     vdamodel.Action
	status     vdamodel.ActionStatus
	contextSeq int64
	declIndex  int
	ready      func() bool
}

type nodeRuntime struct {
	node    vdamodel.Node
	reached bool
	actions []*actionRuntime
}

type edgeRuntime struct {
	edge      vdamodel.Edge
	started   bool
	traversed bool
	startNode *nodeRuntime
	endNode   *nodeRuntime
	actions   []*actionRuntime
}

// NetManager is the order execution engine. One NetManager is held by the
// Handle for the lifetime of the process; SetOrder replaces or extends the
// net it currently drives.
type NetManager struct {
	mu sync.Mutex

	store          *statestore.Store
	actionHandlers map[string]interfaceagv.ActionHandler
	navHandler     interfaceagv.NavigationHandler
	contNav        interfaceagv.ContinuousNavigationHandler

	order vdamodel.Order
	nodes []*nodeRuntime
	edges []*edgeRuntime

	instant []*actionRuntime

	budget     *blockingBudget
	pauseClear bool
	cancelling bool

	activeCount int
	onAllExit   func()

	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup

	metrics metrics.RuntimeMetrics
}

// SetMetrics attaches m as the destination for queue-depth instrumentation.
// m may be nil (the default), disabling it with zero overhead.
func (n *NetManager) SetMetrics(m metrics.RuntimeMetrics) {
	n.metrics = m
}

// New constructs a NetManager with no active order. actionHandlers maps
// action type to the driver handler that executes it; navHandler and
// contNav are mutually exclusive navigation strategies (either, both, or
// neither may be nil — a nil pair means navigation is never dispatched and
// traversals finish as no-ops).
func New(store *statestore.Store, actionHandlers map[string]interfaceagv.ActionHandler, navHandler interfaceagv.NavigationHandler, contNav interfaceagv.ContinuousNavigationHandler) *NetManager {
	n := &NetManager{
		store:          store,
		actionHandlers: actionHandlers,
		navHandler:     navHandler,
		contNav:        contNav,
		budget:         &blockingBudget{},
		pauseClear:     true,
		tasks:          make(chan func(), 64),
		done:           make(chan struct{}),
	}
	n.wg.Add(1)
	go n.taskWorker()
	return n
}

// Close stops the task-queue worker and waits for it to drain. Any task
// already dispatched completes before Close returns.
func (n *NetManager) Close() {
	close(n.done)
	n.wg.Wait()
}

func (n *NetManager) taskWorker() {
	defer n.wg.Done()
	for {
		select {
		case <-n.done:
			for {
				select {
				case task := <-n.tasks:
					task()
				default:
					return
				}
			}
		case task := <-n.tasks:
			task()
		}
	}
}

// dispatch schedules a handler invocation on the task-queue worker so
// engine-locked critical sections never block on driver code (§5).
func (n *NetManager) dispatch(task func()) {
	select {
	case n.tasks <- task:
		metrics.RecordQueueDepth(n.metrics, len(n.tasks))
	case <-n.done:
	}
}

// Dispatch exposes the net manager's single-consumer task queue to
// pkg/logic, so PauseResumeActionManager and InstantActionsManager route
// their own driver callback invocations (DoPause/DoResume,
// InitializePosition) through the same FIFO worker that node/edge/action
// handlers use, instead of spawning ad hoc goroutines or calling the driver
// inline (§5).
func (n *NetManager) Dispatch(task func()) {
	n.dispatch(task)
}

// SetOrder accepts a new or updated order (orderUpdateId strictly greater
// than the one currently tracked, enforced by the validator pipeline
// upstream — the engine assumes pre-validated input per §4.7) and
// (re)builds the net's released tail, then fires whatever transitions that
// unblocks.
func (n *NetManager) SetOrder(order vdamodel.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()

	isNewOrder := n.order.OrderID != order.OrderID
	n.order = order
	n.buildNet(order, isNewOrder)
	n.store.SetOrder(order.OrderID, order.OrderUpdateID)
	n.store.SetIdle(false)
	n.fireEligibleStarts()
}

func (n *NetManager) buildNet(order vdamodel.Order, isNewOrder bool) {
	nodesByID := make(map[string]*nodeRuntime, len(order.Nodes))

	releasedNodes := order.ReleasedNodes()
	sort.Slice(releasedNodes, func(i, j int) bool { return releasedNodes[i].SequenceID < releasedNodes[j].SequenceID })

	nodes := make([]*nodeRuntime, 0, len(releasedNodes))
	for i, node := range releasedNodes {
		nr := &nodeRuntime{node: node}
		// The first released node of a brand-new order is the AGV's current
		// position: trivially reached. Node reachability for returning
		// orders is carried over from the previous net below.
		if isNewOrder && i == 0 {
			nr.reached = true
		}
		nr.actions = buildActionRuntimes(node.Actions, node.SequenceID, func() bool { return nr.reached })
		nodes = append(nodes, nr)
		nodesByID[node.NodeID] = nr
	}

	if !isNewOrder {
		n.carryOverNodeState(nodes, nodesByID)
	}

	releasedEdges := order.ReleasedEdges()
	sort.Slice(releasedEdges, func(i, j int) bool { return releasedEdges[i].SequenceID < releasedEdges[j].SequenceID })

	edges := make([]*edgeRuntime, 0, len(releasedEdges))
	for _, edge := range releasedEdges {
		startNode := nodesByID[edge.StartNodeID]
		endNode := nodesByID[edge.EndNodeID]
		er := &edgeRuntime{edge: edge, startNode: startNode, endNode: endNode}
		er.actions = buildActionRuntimes(edge.Actions, edge.SequenceID, func() bool { return er.started })
		edges = append(edges, er)
	}

	if !isNewOrder {
		n.carryOverEdgeState(edges)
	}

	n.nodes = nodes
	n.edges = edges
}

func (n *NetManager) carryOverNodeState(nodes []*nodeRuntime, byID map[string]*nodeRuntime) {
	previous := make(map[string]*nodeRuntime, len(n.nodes))
	for _, nr := range n.nodes {
		previous[nr.node.NodeID] = nr
	}
	for _, nr := range nodes {
		if old, ok := previous[nr.node.NodeID]; ok {
			nr.reached = old.reached
			carryOverActionState(nr.actions, old.actions)
		}
	}
	_ = byID
}

func (n *NetManager) carryOverEdgeState(edges []*edgeRuntime) {
	previous := make(map[string]*edgeRuntime, len(n.edges))
	for _, er := range n.edges {
		previous[er.edge.EdgeID] = er
	}
	for _, er := range edges {
		if old, ok := previous[er.edge.EdgeID]; ok {
			er.started = old.started
			er.traversed = old.traversed
			carryOverActionState(er.actions, old.actions)
		}
	}
}

func carryOverActionState(next, previous []*actionRuntime) {
	byID := make(map[string]*actionRuntime, len(previous))
	for _, ar := range previous {
		byID[ar.action.ActionID] = ar
	}
	for _, ar := range next {
		if old, ok := byID[ar.action.ActionID]; ok {
			ar.status = old.status
		}
	}
}

func buildActionRuntimes(actions []vdamodel.Action, contextSeq int64, ready func() bool) []*actionRuntime {
	out := make([]*actionRuntime, 0, len(actions))
	for i, action := range actions {
		out = append(out, &actionRuntime{
			action:     action,
			status:     vdamodel.ActionWaiting,
			contextSeq: contextSeq,
			declIndex:  i,
			ready:      ready,
		})
	}
	return out
}

// NotifyHorizonChanged recomputes the predicted (unreleased) tail without
// touching released places (§4.7). The horizon itself is not executed; it
// exists only to inform a ContinuousNavigationHandler and is replaced
// wholesale on every call.
func (n *NetManager) NotifyHorizonChanged(order vdamodel.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.order = order
	if n.contNav == nil {
		return
	}
	horizonNodes := order.HorizonNodes()
	var horizonEdges []vdamodel.Edge
	for _, e := range order.Edges {
		if !e.Released {
			horizonEdges = append(horizonEdges, e)
		}
	}
	n.dispatch(func() {
		_ = n.contNav.HorizonUpdated(context.Background(), horizonNodes, horizonEdges, &continuousNavCallbacks{n: n})
	})
}
