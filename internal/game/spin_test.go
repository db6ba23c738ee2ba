package game

import (
	"math"
	"testing"
)

func TestStepConvergesToTarget(t *testing.T) {
	target := ActuatorTarget{Direction: DirectionCounterClockwise, On: true, Pace: 10}
	speed := 0.0
	for i := 0; i < 500; i++ {
		speed = Step(speed, target, 1.0/60)
	}
	if math.Abs(speed-(-10)) > 0.01 {
		t.Errorf("speed = %v, want about -10", speed)
	}
}

func TestStepOffWindsDownAndSnaps(t *testing.T) {
	target := ActuatorTarget{Direction: DirectionClockwise, On: false, Pace: 10}
	speed := 10.0
	for i := 0; i < 2000 && speed != 0; i++ {
		speed = Step(speed, target, 1.0/30)
	}
	if speed != 0 {
		t.Errorf("speed = %v, want exactly 0", speed)
	}
}

func TestStepStoppedCapsSpeed(t *testing.T) {
	target := ActuatorTarget{Direction: DirectionClockwise, Pace: 200, Stopped: true}
	if got := Step(180, target, 0); got != StoppedSpeedCap {
		t.Errorf("Step(180, stopped, 0) = %v, want %v", got, StoppedSpeedCap)
	}
	if got := Step(30, target, 0.5); got != 15 {
		t.Errorf("Step(30, stopped, 0.5) = %v, want 15", got)
	}
}

func TestStepClampsFactor(t *testing.T) {
	target := ActuatorTarget{Direction: DirectionClockwise, On: true, Pace: 15}
	if got := Step(0, target, 5); got != 15 {
		t.Errorf("Step with dt>1 = %v, want 15", got)
	}
	if got := Step(3, target, -1); got != 3 {
		t.Errorf("Step with dt<0 = %v, want 3", got)
	}
}

func TestTargetSpeed(t *testing.T) {
	cases := []struct {
		target ActuatorTarget
		want   float64
	}{
		{ActuatorTarget{Direction: DirectionClockwise, On: true, Pace: 10}, 10},
		{ActuatorTarget{Direction: DirectionCounterClockwise, On: true, Pace: 15}, -15},
		{ActuatorTarget{Direction: DirectionNone, On: true, Pace: 10}, 0},
		{ActuatorTarget{Direction: DirectionClockwise, On: false, Pace: 10}, 0},
		{ActuatorTarget{Direction: DirectionClockwise, On: true, Pace: 10, Stopped: true}, 0},
	}
	for _, tc := range cases {
		if got := tc.target.TargetSpeed(); got != tc.want {
			t.Errorf("TargetSpeed(%+v) = %v, want %v", tc.target, got, tc.want)
		}
	}
}
