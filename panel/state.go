package panel

// valueState tags what a channel last rendered. The zero value is
// stateNeverDrawn, so a fresh Renderer repaints every channel on the first
// update without any sentinel numbers.
type valueState uint8

const (
	stateNeverDrawn valueState = iota
	stateDefined
	stateUndefined
)

// channel tracks the last-rendered state for one quantity.
type channel struct {
	state valueState
	value float32
}

// changed reports whether rendering v now would differ from what is on
// screen: always until first drawn, whenever either side is undefined, and
// otherwise when the delta exceeds the channel's threshold.
func (c *channel) changed(v, threshold float32) bool {
	if c.state != stateDefined || isNaN(v) {
		return true
	}
	return absDiff(v, c.value) > threshold
}

// observe records v as the last-rendered value (undefined included), so the
// next comparison runs against what is actually on screen.
func (c *channel) observe(v float32) {
	if isNaN(v) {
		c.state = stateUndefined
		return
	}
	c.state = stateDefined
	c.value = v
}

// neverDrawn reports whether the channel has not been rendered yet.
func (c *channel) neverDrawn() bool { return c.state == stateNeverDrawn }

// isNaN avoids pulling float64 math onto the MCU path.
func isNaN(v float32) bool { return v != v }

func absDiff(a, b float32) float32 {
	if a >= b {
		return a - b
	}
	return b - a
}
