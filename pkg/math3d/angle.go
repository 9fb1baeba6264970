package math3d

import "math"

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapDegrees wraps an angle into [0, 360).
// Negative inputs wrap upward, so -10 becomes 350.
func WrapDegrees(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -tiny + 360 rounds to 360; math.Mod(-0, 360) is -0.
	if r >= 360 || r == 0 {
		return 0
	}
	return r
}

// WrapDegrees3 wraps every component of v into [0, 360).
func WrapDegrees3(v Vec3) Vec3 {
	return Vec3{WrapDegrees(v.X), WrapDegrees(v.Y), WrapDegrees(v.Z)}
}
