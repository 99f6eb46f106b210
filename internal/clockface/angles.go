// Package clockface poses the hands of one analog clock face from a wall-clock
// reading.
//
// Angles are radians measured from 12 o'clock. Hands turn clockwise, which in a
// right-handed XY plane viewed from +Z is the negative direction, so every angle
// produced here is ≤ 0 for positive inputs.
package clockface

import (
	"math"
	"time"
)

const (
	radPerSecond        = math.Pi / 30   // 6° per second
	radPerMinute        = math.Pi / 30   // 6° per minute
	radPerMinuteCreep   = math.Pi / 1800 // 0.1° of minute hand per second
	radPerHour          = math.Pi / 6    // 30° per hour
	radPerHourCreepMins = math.Pi / 360  // 0.5° of hour hand per minute
)

// WallTime is a decomposed time of day.
type WallTime struct {
	Hours   float64
	Minutes float64
	Seconds float64
}

// FromTime decomposes t in its own location. With smooth set, seconds carry the
// sub-second fraction so the second hand sweeps instead of ticking.
func FromTime(t time.Time, smooth bool) WallTime {
	s := float64(t.Second())
	if smooth {
		s += float64(t.Nanosecond()) / 1e9
	}
	return WallTime{
		Hours:   float64(t.Hour()),
		Minutes: float64(t.Minute()),
		Seconds: s,
	}
}

// SecondAngle returns the second-hand angle.
func SecondAngle(seconds float64) float64 {
	return -radPerSecond * seconds
}

// MinuteAngle returns the minute-hand angle including creep from the seconds,
// so the hand never jumps at a minute boundary.
func MinuteAngle(minutes, seconds float64) float64 {
	return -radPerMinute*minutes - radPerMinuteCreep*seconds
}

// HourAngle returns the hour-hand angle for a face tzOffsetHours behind the
// sampled time, including creep from the minutes.
//
// hours - tzOffsetHours is used raw and never reduced modulo 12; the rotation
// is periodic in 2π so the drawn pose is the same either way.
func HourAngle(hours, minutes, tzOffsetHours float64) float64 {
	return -radPerHour*(hours-tzOffsetHours) - radPerHourCreepMins*minutes
}

// Angles holds the three hand angles of one face for one instant.
type Angles struct {
	Second float64 `json:"second"`
	Minute float64 `json:"minute"`
	Hour   float64 `json:"hour"`
}

// ComputeAngles evaluates all three hand angles.
func ComputeAngles(now WallTime, tzOffsetHours float64) Angles {
	return Angles{
		Second: SecondAngle(now.Seconds),
		Minute: MinuteAngle(now.Minutes, now.Seconds),
		Hour:   HourAngle(now.Hours, now.Minutes, tzOffsetHours),
	}
}
