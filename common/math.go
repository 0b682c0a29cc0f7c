package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Shade scales a colour channel by k in [0,1].
func Shade(c uint8, k float64) uint8 {
	return uint8(Clamp(float64(c)*k, 0, 255))
}
