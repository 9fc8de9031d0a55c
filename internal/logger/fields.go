package logger

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so that log
// aggregation and querying stays stable across the order engine, the
// validator pipeline, and the messaging layer.
const (
	// ========================================================================
	// Correlation
	// ========================================================================
	KeyTraceID = "trace_id" // correlation id assigned at ingress

	// ========================================================================
	// AGV identity
	// ========================================================================
	KeyAGVID = "agv_id" // agv_id of the handle producing the line

	// ========================================================================
	// Order / action scoping
	// ========================================================================
	KeyOrderID       = "order_id"        // orderId
	KeyOrderUpdateID = "order_update_id" // orderUpdateId
	KeyActionID      = "action_id"       // actionId
	KeyActionType    = "action_type"     // actionType
	KeyActionStatus  = "action_status"   // ActionState.status
	KeyNodeID        = "node_id"         // nodeId
	KeySequenceID    = "sequence_id"     // sequenceId
	KeyBlockingType  = "blocking_type"   // NONE / SOFT / HARD

	// ========================================================================
	// Errors
	// ========================================================================
	KeyErrorType  = "error_type"  // errorType (e.g. OrderError, ActionError)
	KeyErrorLevel = "error_level" // WARNING / FATAL

	// ========================================================================
	// Timing / urgency
	// ========================================================================
	KeyUrgency    = "urgency"     // requested UpdateUrgency
	KeyDurationMs = "duration_ms" // operation duration in milliseconds
)
