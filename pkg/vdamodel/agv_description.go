package vdamodel

// Battery carries battery information reported in state and used for
// registration-time description.
type Battery struct {
	BatteryVoltage   float64  `mapstructure:"battery_voltage" validate:"required"`
	BatteryCharge    float64  `mapstructure:"battery_charge"`
	BatteryHealth    *float64 `mapstructure:"battery_health,omitempty"`
	Charging         bool     `mapstructure:"charging"`
	Reach            *float64 `mapstructure:"reach,omitempty"`
}

// DrivingMode is the AGV's navigation style.
type DrivingMode string

const (
	DrivingModeAutomated DrivingMode = "AUTOMATED"
	DrivingModeSemi      DrivingMode = "SEMI"
	DrivingModeManual    DrivingMode = "MANUAL"
)

// Kinematic describes the AGV's steering kinematic.
type Kinematic string

const (
	KinematicDiff  Kinematic = "DIFF"
	KinematicOmni  Kinematic = "OMNI"
	KinematicThreeWheel Kinematic = "THREEWHEEL"
)

// Navigation mode of the AGV, part of AGVDescription.
type Navigation struct {
	DrivingMode     DrivingMode `mapstructure:"driving_mode" validate:"required,oneof=AUTOMATED SEMI MANUAL"`
	Kinematic       Kinematic   `mapstructure:"kinematic" validate:"required"`
	MaxVelocity     float64     `mapstructure:"max_velocity" validate:"gt=0"`
	MaxAcceleration float64     `mapstructure:"max_acceleration" validate:"gt=0"`
	MaxDeceleration float64     `mapstructure:"max_deceleration" validate:"gt=0"`
	MinTurningRadius *float64   `mapstructure:"min_turning_radius,omitempty"`
}

// AGVDescription is the registration-time configuration of one AGV.
//
// SupportedActions is nil when action validation should be skipped
// entirely ("do not validate actions"); an empty, non-nil set means no
// AGV-specific actions are supported at all (the built-in control actions
// from pkg/validation.ControlActionDeclarations are still always declared).
type AGVDescription struct {
	AGVID            string               `mapstructure:"agv_id" validate:"required"`
	Manufacturer     string               `mapstructure:"manufacturer" validate:"required"`
	SerialNumber     string               `mapstructure:"serial_number" validate:"required"`
	Description      string               `mapstructure:"description"`
	Battery          Battery              `mapstructure:"battery"`
	Navigation       Navigation           `mapstructure:"navigation"`
	Weight           float64              `mapstructure:"weight" validate:"gte=0"`
	SupportedActions *[]ActionDeclaration `mapstructure:"-"`
}

// ActionValidationEnabled reports whether action declaration validation
// should run at all. A nil SupportedActions means "do not validate
// actions" per §4.4; a non-nil, possibly empty, slice means validate
// against exactly those AGV-specific declarations (plus the built-in
// control actions, which are always declared).
func (d AGVDescription) ActionValidationEnabled() bool {
	return d.SupportedActions != nil
}
