package docdeck

import "math"

// Unit conversion helpers.
// Slides are positioned in EMU (1 inch = 914400 EMU, 1 point = 12700 EMU);
// pages are laid out in PDF points (72 per inch).

const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000

	pointsPerInch = 72.0
	cmPerInch     = 2.54

	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(math.Round(n * emuPerInch))
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(math.Round(n * emuPerPoint))
}

// Centimeter converts centimeters to EMU.
func Centimeter(n float64) int64 {
	return clampEMU(math.Round(n * emuPerCentimeter))
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// InchToPoint converts inches to points.
func InchToPoint(in float64) float64 {
	return in * pointsPerInch
}

// CentimeterToPoint converts centimeters to points.
func CentimeterToPoint(cm float64) float64 {
	return cm / cmPerInch * pointsPerInch
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
