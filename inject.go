package letterbox

// InjectPointer queues a synthetic pointer position in display coordinates
// (origin top-left, +Y down). The next PointerLogicalPosition call consumes
// it instead of reading the real cursor. Positions are consumed in order,
// one per call.
func (c *Compositor) InjectPointer(x, y float64) {
	c.injectQueue = append(c.injectQueue, Vec2{x, y})
}

// pointerPosition pops one injected position, or reads the real cursor when
// none is queued.
func (c *Compositor) pointerPosition() Vec2 {
	if len(c.injectQueue) > 0 {
		p := c.injectQueue[0]
		copy(c.injectQueue, c.injectQueue[1:])
		c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]
		return p
	}
	x, y := c.cursor()
	return Vec2{float64(x), float64(y)}
}
