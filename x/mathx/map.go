package mathx

// MapI32 maps x in [inMin,inMax] to [outMin,outMax] with 64-bit intermediates
// and truncating division. Clamps to the out range if input is outside.
func MapI32(x, inMin, inMax, outMin, outMax int32) int32 {
	if inMax == inMin {
		return outMin
	}
	// Clamp input first to keep the multiply in range.
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := int64(x-inMin) * int64(outMax-outMin)
	den := int64(inMax - inMin)
	return int32(int64(outMin) + num/den)
}
