package logic

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/cmraaron/libvda5050pp-sub001/internal/logger"
	"github.com/cmraaron/libvda5050pp-sub001/internal/telemetry"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/statestore"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/urgency"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/validation"
	"github.com/cmraaron/libvda5050pp-sub001/pkg/vdamodel"
)

// NetEngine is the slice of NetManager the Logic façade drives orders
// through. Satisfied by *pkg/netmanager.NetManager.
type NetEngine interface {
	Engine
	SetOrder(order vdamodel.Order)
	NotifyHorizonChanged(order vdamodel.Order)
}

// Logic is the small façade the messaging layer calls into (§2): one entry
// point per inbound message type, each running the validator pipeline
// before handing validated input to the engine or the instant-actions
// manager. Action validation is context-sensitive (a node action is not
// automatically an instant action), so New builds one ActionDeclaredValidator
// per context from a single AGVDescription.
type Logic struct {
	store          *statestore.Store
	engine         NetEngine
	instantActions *InstantActionsManager

	orderValidators   validation.Pipeline[vdamodel.Order]
	nodeActions       validation.Pipeline[vdamodel.Action]
	edgeActions       validation.Pipeline[vdamodel.Action]
	instantActionsVal validation.Pipeline[vdamodel.Action]

	lastOrder         vdamodel.Order
	lastOrderUpdateID int64
	haveOrder         bool
}

// New constructs a Logic façade wired to engine and instantActions. store
// doubles as the validation.VehicleState the OrderReachableValidator
// consults.
func New(store *statestore.Store, engine NetEngine, instantActions *InstantActionsManager, description vdamodel.AGVDescription) *Logic {
	return &Logic{
		store:             store,
		engine:            engine,
		instantActions:    instantActions,
		orderValidators:   validation.NewPipeline(validation.NewOrderReachableValidator(store)),
		nodeActions:       validation.NewPipeline(validation.NewActionDeclaredValidator(description, validation.ActionContext{Node: true})),
		edgeActions:       validation.NewPipeline(validation.NewActionDeclaredValidator(description, validation.ActionContext{Edge: true})),
		instantActionsVal: validation.NewPipeline(validation.NewActionDeclaredValidator(description, validation.ActionContext{Instant: true})),
	}
}

// InterpretOrder validates order and, if accepted, either starts a new net
// (first orderUpdateId seen for this orderId) or extends the current one
// (strictly greater orderUpdateId), then notifies the engine of the new
// horizon. Rejected orders leave the engine untouched; their errors are
// appended to the state store at high urgency.
func (l *Logic) InterpretOrder(ctx context.Context, order vdamodel.Order) []validation.Error {
	ctx, span := telemetry.StartSpan(ctx, "logic.InterpretOrder")
	defer span.End()

	lc := logger.NewLogContext(l.store.AGVID()).WithOrder(order.OrderID, order.OrderUpdateID)
	lc.TraceID = traceID(ctx)
	ctx = logger.WithContext(ctx, lc)

	errs := l.orderValidators.Validate(order)
	for _, node := range order.Nodes {
		for _, action := range node.Actions {
			errs = append(errs, l.nodeActions.Validate(action)...)
		}
	}
	for _, edge := range order.Edges {
		for _, action := range edge.Actions {
			errs = append(errs, l.edgeActions.Validate(action)...)
		}
	}

	isNewOrder := !l.haveOrder || order.OrderID != l.currentOrderID()
	if !isNewOrder {
		if order.OrderUpdateID <= l.lastOrderUpdateID {
			// A repeat of the current orderUpdateId with a different body is
			// fatal; any other stale or repeated update is a warning.
			level := validation.LevelWarning
			if order.OrderUpdateID == l.lastOrderUpdateID && !reflect.DeepEqual(order, l.lastOrder) {
				level = validation.LevelFatal
			}
			errs = append(errs, validation.Error{
				ErrorType:        validation.KindOrderError,
				ErrorDescription: "orderUpdateId must be strictly greater than the order currently in progress",
				ErrorLevel:       level,
			})
		} else {
			errs = append(errs, validation.ValidateReleasedMatch(l.lastOrder, order)...)
		}
	}

	if len(errs) > 0 {
		logger.WarnCtx(ctx, "order rejected by validator pipeline", logger.KeyErrorType, errs[0].ErrorType)
		telemetry.RecordError(ctx, fmt.Errorf("order rejected: %s", errs[0].ErrorType))
		l.store.AppendErrors(urgency.High, errs...)
		return errs
	}

	logger.DebugCtx(ctx, "order admitted")
	l.engine.SetOrder(order)
	l.engine.NotifyHorizonChanged(order)
	l.lastOrder = order
	l.lastOrderUpdateID = order.OrderUpdateID
	l.haveOrder = true
	return nil
}

func (l *Logic) currentOrderID() string {
	orderID, _ := l.store.Order()
	return orderID
}

// DoInstantAction validates action and, if accepted, dispatches it through
// the instant-actions manager.
func (l *Logic) DoInstantAction(ctx context.Context, action vdamodel.Action) []validation.Error {
	ctx, span := telemetry.StartSpan(ctx, "logic.DoInstantAction")
	defer span.End()

	lc := logger.NewLogContext(l.store.AGVID()).WithAction(action.ActionID)
	lc.TraceID = traceID(ctx)
	ctx = logger.WithContext(ctx, lc)

	errs := l.instantActionsVal.Validate(action)
	if len(errs) > 0 {
		logger.WarnCtx(ctx, "instant action rejected by validator pipeline", logger.KeyActionType, action.ActionType)
		telemetry.RecordError(ctx, fmt.Errorf("instant action rejected: %s", errs[0].ErrorType))
		l.store.AppendErrors(urgency.High, errs...)
		return errs
	}

	logger.DebugCtx(ctx, "instant action admitted", logger.KeyActionType, action.ActionType)
	l.instantActions.Dispatch(ctx, action)
	return nil
}

// traceID returns the active span's trace id, falling back to a random
// uuid when telemetry is disabled (StartSpan's no-op tracer never produces
// a valid span context) so every log line still carries a correlation id.
func traceID(ctx context.Context) string {
	if id := telemetry.TraceID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
