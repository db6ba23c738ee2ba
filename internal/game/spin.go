// internal/game/spin.go
//
// Fan spin integration. The session only publishes an ActuatorTarget;
// hosts advance the displayed speed with Step at their own cadence.

package game

import "math"

const (
	// StoppedSpeedCap bounds the spin of a solved (stopped) fan.
	StoppedSpeedCap = 50.0
	// restThreshold snaps very slow spins to a standstill.
	restThreshold = 0.1
)

// TargetSpeed is the signed speed the fan should settle at.
func (t ActuatorTarget) TargetSpeed() float64 {
	if t.Stopped || !t.On {
		return 0
	}
	return t.Pace * t.Direction.Sign()
}

// Step advances the fan speed by dt seconds toward target.
// It is pure; callers choose the cadence.
func Step(speed float64, target ActuatorTarget, dt float64) float64 {
	if target.Stopped {
		speed = math.Min(speed, StoppedSpeedCap)
	}
	f := math.Max(0, math.Min(1, dt))
	speed += (target.TargetSpeed() - speed) * f
	if math.Abs(speed) <= restThreshold {
		return 0
	}
	return speed
}
