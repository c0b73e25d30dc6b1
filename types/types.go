package types

import "math"

// Readings is one cycle of panel inputs, as carried from a feed source to
// the render loop. A NaN field means the source had no valid sample for
// that channel.
type Readings struct {
	Temp  float32 // °C
	Humid float32 // %RH
	Soil  float32 // % volumetric
	Pump  float32 // % output
}

// Undefined returns a Readings with every channel undefined.
func Undefined() Readings {
	nan := float32(math.NaN())
	return Readings{Temp: nan, Humid: nan, Soil: nan, Pump: nan}
}
