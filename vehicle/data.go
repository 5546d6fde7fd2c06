package vehicle

import "fmt"

// TurnSignal is the state of the turn indicators.
type TurnSignal uint8

const (
	TurnOff TurnSignal = iota
	TurnLeft
	TurnRight
	TurnHazard
)

func (s TurnSignal) String() string {
	switch s {
	case TurnOff:
		return "off"
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	case TurnHazard:
		return "hazard"
	}
	return fmt.Sprintf("TurnSignal(%d)", uint8(s))
}

// Data is the live vehicle telemetry.
type Data struct {
	// ThrottleActive reports whether throttle input is passed on to the
	// motor controller. The motor of an EV is always on.
	ThrottleActive bool
	EngineRPM      int32
	// BatteryCharge is the state of charge in percent.
	BatteryCharge  int32
	TurnSignal     TurnSignal
	FullBeamActive bool
}

// NewData returns the telemetry a vehicle reports right after start-up.
func NewData() Data {
	return Data{
		ThrottleActive: true,
		EngineRPM:      2000,
		BatteryCharge:  100,
		TurnSignal:     TurnOff,
		FullBeamActive: false,
	}
}

// DrivingSpeed returns the vehicle speed in km/h: wheel revolutions per
// minute times the drive wheel diameter, scaled from m/min.
func DrivingSpeed(cfg Config, d Data) float32 {
	wheelRPM := float32(d.EngineRPM) * cfg.GearRatio
	meterPerMin := wheelRPM * cfg.DriveWheelDiameter
	return meterPerMin * 60 / 1000
}

// SpeedSample is the driving speed at one motor speed.
type SpeedSample struct {
	RPM int32
	KMH float32
}

// SpeedTable evaluates DrivingSpeed for each rpm, keeping the rest of the
// telemetry at its start-up values.
func SpeedTable(cfg Config, rpms []int32) []SpeedSample {
	d := NewData()
	out := make([]SpeedSample, 0, len(rpms))
	for _, rpm := range rpms {
		d.EngineRPM = rpm
		out = append(out, SpeedSample{RPM: rpm, KMH: DrivingSpeed(cfg, d)})
	}
	return out
}

// DefaultRPMs are the motor speeds logged at start-up.
var DefaultRPMs = []int32{2000, 3000, 4000, 5000, 6000}
