package letterbox

import (
	"log/slog"
	"time"
)

// presentStats holds the placement and timing of one Present.
// Only populated when debug mode is on.
type presentStats struct {
	window    Vec2
	drawSize  Vec2
	offset    Vec2
	scale     float64
	antialias bool
	elapsed   time.Duration
}

// debugLog writes present stats to the logger at debug level.
func (c *Compositor) debugLog(stats presentStats) {
	if !c.debug {
		return
	}
	Logger().Debug("present",
		slog.Group("window", "w", stats.window.X, "h", stats.window.Y),
		slog.Group("draw", "w", stats.drawSize.X, "h", stats.drawSize.Y),
		slog.Group("offset", "x", stats.offset.X, "y", stats.offset.Y),
		slog.Float64("scale", stats.scale),
		slog.Bool("antialias", stats.antialias),
		slog.Duration("elapsed", stats.elapsed),
	)
}
