// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// UnityQ16 is a gain of 1.0 in Q16.16.
const UnityQ16 = 65536

// Saturate16 clamps v into the int16 range.
func Saturate16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// AddSaturate16 adds two samples, clamping the result.
func AddSaturate16(a, b int16) int16 {
	return Saturate16(int32(a) + int32(b))
}

// MulQ16 scales s by a Q16.16 gain and saturates.
func MulQ16(s int16, gain int32) int16 {
	v := (int64(s) * int64(gain)) >> 16
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// GainQ16 converts a linear gain to Q16.16, clamped to ±32767.
func GainQ16(level float32) int32 {
	switch {
	case level > 32767:
		level = 32767
	case level < -32767:
		level = -32767
	}
	return int32(level * UnityQ16)
}

// Float32ToInt16 converts a sample in [-1, 1] to int16, clamping outside
// values.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return int16(x * 32767)
}
